package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginServer(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, LoginPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		var creds Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.NotEmpty(t, creds.Username)
		assert.NotEmpty(t, creds.Password)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(baseURL, Options{})
	require.NoError(t, err)
	return c
}

func TestLoginSuccessReturnsTokenUnchanged(t *testing.T) {
	var calls int32
	srv := loginServer(t, http.StatusOK, `{"token":"abc123","user":"admin"}`, &calls)

	token, err := newClient(t, srv.URL).Login(context.Background(), Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.EqualValues(t, 1, calls)
}

func TestLoginValidation(t *testing.T) {
	cases := []struct {
		name  string
		creds Credentials
		want  []string
	}{
		{"empty username", Credentials{Password: "secret"}, []string{"username"}},
		{"empty password", Credentials{Username: "admin"}, []string{"password"}},
		{"both empty", Credentials{}, []string{"username", "password"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			srv := loginServer(t, http.StatusOK, `{"token":"x"}`, &calls)

			_, err := newClient(t, srv.URL).Login(context.Background(), tc.creds)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.want, verr.Fields)
			assert.EqualValues(t, 0, calls)
		})
	}
}

func TestLoginRejected(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server message", http.StatusUnauthorized, `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"no error field", http.StatusUnauthorized, `{"detail":"nope"}`, DefaultFailureMessage},
		{"empty error field", http.StatusBadRequest, `{"error":""}`, DefaultFailureMessage},
		{"server error", http.StatusInternalServerError, `{"error":"token error"}`, "token error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			srv := loginServer(t, tc.status, tc.body, &calls)

			_, err := newClient(t, srv.URL).Login(context.Background(), Credentials{Username: "admin", Password: "wrong"})
			var aerr *AuthenticationError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, tc.status, aerr.Status)
			assert.Equal(t, tc.want, aerr.Message)
		})
	}
}

func TestLoginTransportFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"html success", http.StatusOK, `<html>ok</html>`},
		{"missing token", http.StatusOK, `{"access_token":"abc"}`},
		{"token not a string", http.StatusOK, `{"token":42}`},
		{"empty token", http.StatusOK, `{"token":""}`},
		{"html failure", http.StatusBadGateway, `<h1>Bad Gateway</h1>`},
		{"error not a string", http.StatusUnauthorized, `{"error":["bad"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			srv := loginServer(t, tc.status, tc.body, &calls)

			token, err := newClient(t, srv.URL).Login(context.Background(), Credentials{Username: "admin", Password: "secret"})
			var terr *TransportError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, "decode response", terr.Op)
			assert.Empty(t, token)
		})
	}
}

func TestLoginUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := newClient(t, base).Login(context.Background(), Credentials{Username: "admin", Password: "secret"})
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "send request", terr.Op)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestLoginHonoursContext(t *testing.T) {
	var calls int32
	srv := loginServer(t, http.StatusOK, `{"token":"abc123"}`, &calls)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, srv.URL).Login(ctx, Credentials{Username: "admin", Password: "secret"})
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New("", Options{})
	assert.Error(t, err)
	_, err = New("127.0.0.1:8000", Options{})
	assert.Error(t, err)

	c, err := New("http://127.0.0.1:8000/", Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000/api/login/", c.Endpoint())
}
