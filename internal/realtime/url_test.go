package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		origin string
		roomID string
		token  string
		want   string
	}{
		{
			name:   "plain http",
			origin: "http://localhost:8080",
			roomID: "r1",
			token:  "tok1",
			want:   "ws://localhost:8080/api/v1/rooms/r1/ws?token=tok1",
		},
		{
			name:   "https becomes wss",
			origin: "https://vote.example.com",
			roomID: "r1",
			token:  "tok1",
			want:   "wss://vote.example.com/api/v1/rooms/r1/ws?token=tok1",
		},
		{
			name:   "token is query-escaped",
			origin: "http://localhost:8080",
			roomID: "r1",
			token:  "a+b/c",
			want:   "ws://localhost:8080/api/v1/rooms/r1/ws?token=a%2Bb%2Fc",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildURL(tc.origin, tc.roomID, tc.token))
		})
	}
}
