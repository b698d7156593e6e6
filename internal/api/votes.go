package api

import (
	"context"

	"voteroom/internal/types"
)

func (c *Client) AddVote(ctx context.Context, roomID, gameID string) (*types.Vote, error) {
	var out types.Vote
	if err := c.Post(ctx, "/rooms/"+roomID+"/votes", types.AddVoteRequest{GameID: gameID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Votes(ctx context.Context, roomID string) ([]types.Vote, error) {
	var out types.VotesResponse
	if err := c.Get(ctx, "/rooms/"+roomID+"/votes", &out); err != nil {
		return nil, err
	}
	return out.Votes, nil
}

func (c *Client) DeleteVote(ctx context.Context, roomID, voteID string) error {
	return c.Delete(ctx, "/rooms/"+roomID+"/votes/"+voteID)
}
