package api

import (
	"context"

	"voteroom/internal/types"
)

func (c *Client) InviteParticipant(ctx context.Context, roomID, name string) error {
	return c.Post(ctx, "/rooms/"+roomID+"/participants", types.InviteParticipantRequest{Name: name}, nil)
}

func (c *Client) Participants(ctx context.Context, roomID string) (*types.ParticipantsResponse, error) {
	var out types.ParticipantsResponse
	if err := c.Get(ctx, "/rooms/"+roomID+"/participants", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LeaveRoom removes the calling user from the room's participant list.
func (c *Client) LeaveRoom(ctx context.Context, roomID string) error {
	return c.Delete(ctx, "/rooms/"+roomID+"/participants")
}
