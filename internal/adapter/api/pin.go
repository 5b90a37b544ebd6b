package api

import (
	"context"
	"net/http"
)

// PinClient implements ports.PinAPI against the /users/pin resource.
type PinClient struct {
	c *Client
}

func NewPinClient(c *Client) *PinClient {
	return &PinClient{c: c}
}

type pinBody struct {
	PIN string `json:"pin"`
}

func (p *PinClient) Set(ctx context.Context, pin string) error {
	return p.c.do(ctx, http.MethodPost, "/users/pin", pinBody{PIN: pin}, nil, "Failed to set PIN")
}

func (p *PinClient) Verify(ctx context.Context, pin string) error {
	return p.c.do(ctx, http.MethodPost, "/users/pin/verify", pinBody{PIN: pin}, nil, "Incorrect transaction PIN")
}
