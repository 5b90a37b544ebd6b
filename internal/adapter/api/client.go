package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sfa-bank-client/config"
	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// bearerTransport injects the bearer token and standard headers into
// every outgoing request. No token means no Authorization header.
type bearerTransport struct {
	tokens ports.TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return t.base.RoundTrip(req)
}

// Client is the shared HTTP core behind the per-resource gateway clients.
type Client struct {
	baseURL string
	hc      *http.Client
	log     zerolog.Logger
}

// NewClient creates the API gateway client. Every request runs under the
// configured timeout.
func NewClient(cfg config.APIConfig, tokens ports.TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &bearerTransport{
				tokens: tokens,
				base:   http.DefaultTransport,
			},
		},
		log: log,
	}
}

// envelope is the optional response wrapper the server may apply.
// Bodies without the wrapper are used as-is.
type envelope struct {
	Data             json.RawMessage `json:"data"`
	Success          *bool           `json:"success"`
	Message          string          `json:"message"`
	Error            string          `json:"error"`
	RequiresPinSetup bool            `json:"requiresPinSetup"`
}

// do executes one request and decodes the (unwrapped) response body into
// out. fallback is the per-action error message used when a failed
// response carries no server message.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.Internal(fmt.Errorf("marshal request: %w", err))
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperror.Internal(fmt.Errorf("build request: %w", err))
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return apperror.Network(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Network(fmt.Errorf("read response: %w", err))
	}

	// The wrapper is optional; a non-object body simply leaves env empty.
	var env envelope
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		// Older server versions signal a missing PIN with wording only.
		if env.RequiresPinSetup ||
			(resp.StatusCode == http.StatusForbidden && strings.Contains(msg, "PIN")) {
			return apperror.ErrPinNotConfigured()
		}
		if msg == "" {
			msg = fallback
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("message", msg).Msg("server rejected request")
		return apperror.Server(resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}

	payload := raw
	if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		payload = env.Data
	}
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperror.Internal(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// oneOrMany decodes a payload the server may return as either a single
// object or an array of objects.
func oneOrMany[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var many []T
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return nil, err
		}
		return many, nil
	}
	var one T
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}
