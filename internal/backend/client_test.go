package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hay-kot/roomprobe/internal/core/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.Handler, opts ...Option) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.BaseURL = srv.URL

	client, err := New(srv.URL+"/", opts...)
	require.NoError(t, err)
	return NewAPI(client, &cfg)
}

func TestLogin_PostsCredentials(t *testing.T) {
	var got Credentials
	var contentType string

	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login/", r.URL.Path)
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"access":"tok"}`))
	}))

	resp, err := api.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.NoError(t, resp.Err())
	assert.Equal(t, Credentials{Username: "alice", Password: "s3cret"}, got)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"access":"tok"}`, string(resp.Body))
}

func TestAuthorize_SetsBearerOnLaterCalls(t *testing.T) {
	var auth string
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := api.Rooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auth)

	api.Authorize("abc")
	_, err = api.SupportRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", auth)
}

func TestMessages_RendersPath(t *testing.T) {
	var path string
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := api.Messages(context.Background(), "room 5")
	require.NoError(t, err)
	assert.Equal(t, "/api/rooms/room%205/messages/", path)
}

func TestResponse_StatusError(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"no"}`))
	}))

	resp, err := api.Rooms(context.Background())
	require.NoError(t, err, "non-200 is not a transport error")
	assert.False(t, resp.OK())

	var statusErr *StatusError
	require.True(t, errors.As(resp.Err(), &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, `{"detail":"no"}`, statusErr.Body)
	assert.Contains(t, statusErr.Error(), "GET /api/rooms/")
}

func TestResponse_JSON(t *testing.T) {
	resp := &Response{Method: http.MethodGet, Path: "/x", StatusCode: 200, Body: []byte(`{"data":[1]}`)}
	v, err := resp.JSON()
	require.NoError(t, err)
	assert.IsType(t, map[string]any{}, v)

	resp.Body = []byte(`not json`)
	_, err = resp.JSON()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /x")
}

func TestClient_KeepsCookies(t *testing.T) {
	var sawCookie bool
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/login/" {
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "xyz", Path: "/"})
			_, _ = w.Write([]byte(`{}`))
			return
		}
		if c, err := r.Cookie("sessionid"); err == nil && c.Value == "xyz" {
			sawCookie = true
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := api.Login(context.Background(), Credentials{})
	require.NoError(t, err)
	_, err = api.Rooms(context.Background())
	require.NoError(t, err)

	assert.True(t, sawCookie)
}

func TestClient_HeaderAndTimeout(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	var requestID string
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		if r.URL.Path == "/api/rooms/" {
			select {
			case <-block:
			case <-r.Context().Done():
			}
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}), WithHeader("X-Request-ID", "run-1"), WithTimeout(50*time.Millisecond))

	_, err := api.SupportRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", requestID)

	_, err = api.Rooms(context.Background())
	require.Error(t, err)
}
