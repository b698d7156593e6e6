package types

import "encoding/json"

// EventType identifies a realtime room event pushed by the server.
type EventType string

const (
	EventConnected        EventType = "connected"
	EventRoomUpdated      EventType = "room.updated"
	EventParticipantAdded EventType = "participant.added"
	EventParticipantLeft  EventType = "participant.left"
	EventGameAdded        EventType = "game.added"
	EventGameDeleted      EventType = "game.deleted"
	EventVoteAdded        EventType = "vote.added"
	EventVoteDeleted      EventType = "vote.deleted"
	EventResultsUpdated   EventType = "results.updated"
)

// Event is a room-scoped push notification. Payload stays raw until the
// consumer decodes it with the typed payload struct for the event type.
type Event struct {
	Type    EventType       `json:"type"`
	RoomID  string          `json:"room_id"`
	Payload json.RawMessage `json:"payload"`
	Ts      int64           `json:"ts"`
}

// DecodePayload unmarshals the raw payload into v.
func (e *Event) DecodePayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

type ConnectedPayload struct {
	UserID string `json:"user_id"`
}

type RoomUpdatedPayload struct {
	Name string `json:"name"`
}

type ParticipantPayload struct {
	UserID string `json:"user_id"`
}

type GamePayload struct {
	GameID string `json:"game_id"`
	Title  string `json:"title,omitempty"`
}

type VotePayload struct {
	VoteID string `json:"vote_id"`
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
}

type ResultsPayload struct {
	GameID string `json:"game_id"`
}
