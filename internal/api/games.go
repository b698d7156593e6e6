package api

import (
	"context"

	"voteroom/internal/types"
)

func (c *Client) AddGame(ctx context.Context, roomID, title string) (*types.Game, error) {
	var out types.Game
	if err := c.Post(ctx, "/rooms/"+roomID+"/games", types.CreateGameRequest{Title: title}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Games(ctx context.Context, roomID string) ([]types.Game, error) {
	var out []types.Game
	if err := c.Get(ctx, "/rooms/"+roomID+"/games", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteGame(ctx context.Context, roomID, gameID string) error {
	return c.Delete(ctx, "/rooms/"+roomID+"/games/"+gameID)
}
