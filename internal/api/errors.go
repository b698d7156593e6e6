package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"voteroom/internal/types"
)

// Error is the single failure type the pipeline surfaces: every non-2xx
// response that was not recovered by the refresh cycle becomes one of
// these. Callers branch on Status: 401 means signed out, 4xx a
// validation/business error, 5xx something transient.
type Error struct {
	Message string
	Status  int
	// Detail carries the structured {error} body when the server sent one.
	Detail *types.ErrorBody
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// AsError unwraps err into *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == status
}

// newError builds an Error from a response status and raw body. A body
// that is not valid JSON, or has an empty error field, yields the plain
// "HTTP <status>" message with no detail.
func newError(status int, body []byte) *Error {
	var detail types.ErrorBody
	if err := json.Unmarshal(body, &detail); err == nil && detail.Error != "" {
		return &Error{Message: detail.Error, Status: status, Detail: &detail}
	}
	return &Error{Message: fmt.Sprintf("HTTP %d", status), Status: status}
}
