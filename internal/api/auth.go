package api

import (
	"context"

	"voteroom/internal/constants"
	"voteroom/internal/types"
)

// SignUp registers a new account and stores the returned access token.
func (c *Client) SignUp(ctx context.Context, name, password string) (*types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.AuthPost(ctx, constants.EndpointSignUp, types.SignUpRequest{Name: name, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	c.store.Set(out.AccessToken)
	return &out, nil
}

// SignIn authenticates and stores the returned access token.
func (c *Client) SignIn(ctx context.Context, name, password string) (*types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.AuthPost(ctx, constants.EndpointSignIn, types.SignInRequest{Name: name, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	c.store.Set(out.AccessToken)
	return &out, nil
}

// Refresh forces a refresh through the regular pipeline and stores the
// new token. Unlike the internal refresh sub-protocol this surfaces the
// server's error to the caller.
func (c *Client) Refresh(ctx context.Context) (*types.AuthResponse, error) {
	var out types.AuthResponse
	if err := c.AuthPost(ctx, constants.EndpointRefresh, nil, &out); err != nil {
		return nil, err
	}
	c.store.Set(out.AccessToken)
	return &out, nil
}

// Logout revokes the server-side session and clears the stored token.
// The token is cleared even when the server call fails: a client that
// asked to log out should not keep sending a bearer token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.AuthPost(ctx, constants.EndpointLogout, nil, nil)
	c.store.Clear()
	return err
}
