package api

import (
	"context"
	"net/url"

	"voteroom/internal/types"
)

func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var out types.User
	if err := c.Get(ctx, "/user", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserByID(ctx context.Context, userID string) (*types.User, error) {
	var out types.User
	if err := c.Get(ctx, "/user/"+userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserByName(ctx context.Context, name string) (*types.User, error) {
	var out types.User
	if err := c.Get(ctx, "/user/name/"+url.PathEscape(name), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, req types.UpdateUserRequest) (*types.User, error) {
	var out types.User
	if err := c.Put(ctx, "/user", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
