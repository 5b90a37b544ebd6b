package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sfa-bank-client/config"
	"sfa-bank-client/pkg/apperror"
	"sfa-bank-client/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens is a TokenSource returning a fixed token.
type staticTokens struct {
	token string
}

func (s staticTokens) Token() string { return s.token }

func newTestClient(t *testing.T, token string, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}
	return NewClient(cfg, staticTokens{token: token}, logger.NewWithWriter("error", nil))
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	})

	c := newTestClient(t, "tok-123", handler)
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/accounts", nil, nil, "failed"))

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	sawHeader := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	})

	c := newTestClient(t, "", handler)
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/accounts", nil, nil, "failed"))

	assert.Empty(t, gotAuth)
	assert.False(t, sawHeader)
}

func TestClient_UnwrapsDataEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"id": "a1", "balance": 250000}, "success": true}`))
	})

	c := newTestClient(t, "tok", handler)
	var out wireAccount
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/accounts/a1", nil, &out, "failed"))

	assert.Equal(t, "a1", out.ID)
	assert.True(t, decimal.NewFromInt(250000).Equal(out.Balance))
}

func TestClient_UsesBareBodyWithoutEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "a2", "balance": 99.5}`))
	})

	c := newTestClient(t, "tok", handler)
	var out wireAccount
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/accounts/a2", nil, &out, "failed"))

	assert.Equal(t, "a2", out.ID)
	assert.True(t, decimal.NewFromFloat(99.5).Equal(out.Balance))
}

func TestClient_ServerMessageOnError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"success": false, "message": "Insufficient balance"}`))
	})

	c := newTestClient(t, "tok", handler)
	err := c.do(context.Background(), http.MethodPost, "/transfers", map[string]string{}, nil, "Transfer failed. Please try again.")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "API_002", appErr.Code)
	assert.Equal(t, http.StatusPaymentRequired, appErr.HTTPStatus)
	assert.Equal(t, "Insufficient balance", appErr.Message)
}

func TestClient_FallbackMessageWhenServerSilent(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := newTestClient(t, "tok", handler)
	err := c.do(context.Background(), http.MethodPost, "/transfers", map[string]string{}, nil, "Transfer failed. Please try again.")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Transfer failed. Please try again.", appErr.Message)
}

func TestClient_RequiresPinSetup(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success": false, "requiresPinSetup": true, "message": "PIN not set"}`))
	})

	c := newTestClient(t, "tok", handler)
	err := c.do(context.Background(), http.MethodPost, "/transfers", map[string]string{}, nil, "failed")
	require.Error(t, err)
	assert.True(t, apperror.PinSetupRequired(err))
}

func TestClient_RequiresPinSetupByWording(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success": false, "message": "Transaction PIN has not been set up"}`))
	})

	c := newTestClient(t, "tok", handler)
	err := c.do(context.Background(), http.MethodPost, "/transfers", map[string]string{}, nil, "failed")
	require.Error(t, err)
	assert.True(t, apperror.PinSetupRequired(err))
}

func TestClient_NetworkError(t *testing.T) {
	cfg := config.APIConfig{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond}
	c := NewClient(cfg, staticTokens{}, logger.NewWithWriter("error", nil))

	err := c.do(context.Background(), http.MethodGet, "/accounts", nil, nil, "failed")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "API_001", appErr.Code)
}

func TestOneOrMany(t *testing.T) {
	many, err := oneOrMany[wireAccount]([]byte(`[{"id":"a"},{"id":"b"}]`))
	require.NoError(t, err)
	require.Len(t, many, 2)

	one, err := oneOrMany[wireAccount]([]byte(`{"id":"a"}`))
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "a", one[0].ID)

	none, err := oneOrMany[wireAccount]([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, none)

	empty, err := oneOrMany[wireAccount](nil)
	require.NoError(t, err)
	assert.Nil(t, empty)
}
