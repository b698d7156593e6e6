package realtime

import (
	"net/url"
	"strings"

	"voteroom/internal/constants"
)

// BuildURL derives the websocket endpoint for a room from the service
// origin. The scheme mirrors the origin's transport security (https =>
// wss); the token goes in the query string because the websocket
// handshake cannot carry custom headers from a browser, and the server
// keeps that contract for every client.
func BuildURL(origin, roomID, token string) string {
	wsURL := origin
	if strings.HasPrefix(wsURL, "https://") {
		wsURL = "wss://" + strings.TrimPrefix(wsURL, "https://")
	} else {
		wsURL = "ws://" + strings.TrimPrefix(wsURL, "http://")
	}

	return wsURL + constants.ResourceRoot + "/rooms/" + roomID + "/ws?token=" + url.QueryEscape(token)
}
