package api

import (
	"context"

	"voteroom/internal/types"
)

func (c *Client) CreateRoom(ctx context.Context, name string) (*types.Room, error) {
	var out types.Room
	if err := c.Post(ctx, "/rooms", types.CreateRoomRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Rooms(ctx context.Context) ([]types.Room, error) {
	var out types.RoomsResponse
	if err := c.Get(ctx, "/rooms", &out); err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

func (c *Client) Room(ctx context.Context, roomID string) (*types.Room, error) {
	var out types.Room
	if err := c.Get(ctx, "/rooms/"+roomID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RenameRoom(ctx context.Context, roomID, name string) (*types.Room, error) {
	var out types.Room
	if err := c.Put(ctx, "/rooms/"+roomID, types.UpdateRoomRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRoom(ctx context.Context, roomID string) error {
	return c.Delete(ctx, "/rooms/"+roomID)
}
