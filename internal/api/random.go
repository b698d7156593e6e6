package api

import "context"

// RandomGame asks the server to pick a random game from the room's
// current votes. The result is the chosen game id.
func (c *Client) RandomGame(ctx context.Context, roomID string) (string, error) {
	var out string
	if err := c.Get(ctx, "/rooms/"+roomID+"/random", &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) LastRandom(ctx context.Context, roomID string) (string, error) {
	var out string
	if err := c.Get(ctx, "/rooms/"+roomID+"/random/last", &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) RandomHistory(ctx context.Context, roomID string) ([]string, error) {
	var out []string
	if err := c.Get(ctx, "/rooms/"+roomID+"/random/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}
