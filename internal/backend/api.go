package backend

import (
	"context"
	"fmt"

	"github.com/hay-kot/roomprobe/internal/core/config"
)

// Credentials are forwarded verbatim to the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// API maps the backend's endpoints onto a Client.
type API struct {
	client    *Client
	endpoints config.Endpoints
	messages  func(roomID string) (string, error)
}

// NewAPI binds cfg's endpoints to client.
func NewAPI(client *Client, cfg *config.Config) *API {
	return &API{
		client:    client,
		endpoints: cfg.Endpoints,
		messages:  cfg.MessagesPath,
	}
}

// Login posts the credentials to the login endpoint.
func (a *API) Login(ctx context.Context, creds Credentials) (*Response, error) {
	return a.client.PostJSON(ctx, a.endpoints.Login, creds)
}

// Authorize attaches the bearer token to all later calls.
func (a *API) Authorize(token string) {
	a.client.SetBearer(token)
}

// SupportRooms fetches the primary room listing.
func (a *API) SupportRooms(ctx context.Context) (*Response, error) {
	return a.client.Get(ctx, a.endpoints.SupportRooms)
}

// Rooms fetches the general room listing, also used for active chats.
func (a *API) Rooms(ctx context.Context) (*Response, error) {
	return a.client.Get(ctx, a.endpoints.Rooms)
}

// Messages fetches the message history of a room.
func (a *API) Messages(ctx context.Context, roomID string) (*Response, error) {
	path, err := a.messages(roomID)
	if err != nil {
		return nil, fmt.Errorf("messages path: %w", err)
	}
	return a.client.Get(ctx, path)
}
