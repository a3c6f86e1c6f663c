package client

import (
	"context"
	"net/url"

	"github.com/donaldgifford/network-link-manager/internal/api/handlers"
	"github.com/donaldgifford/network-link-manager/internal/ingest"
)

func sessionPath(id string) string {
	return "/api/v1/sessions/" + url.PathEscape(id)
}

// CreateSession starts a new session.
func (c *Client) CreateSession(ctx context.Context) (*handlers.SessionBody, error) {
	var s handlers.SessionBody
	if err := c.post(ctx, "/api/v1/sessions", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession ends a session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.del(ctx, sessionPath(id), nil)
}

// SetReference stores u as the session's reference dataset.
func (c *Client) SetReference(ctx context.Context, id string, u *ingest.Upload) (*handlers.ReferenceBody, error) {
	var ref handlers.ReferenceBody
	if err := c.put(ctx, sessionPath(id)+"/reference", u, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// GetReference describes the session's reference dataset.
func (c *Client) GetReference(ctx context.Context, id string) (*handlers.ReferenceBody, error) {
	var ref handlers.ReferenceBody
	if err := c.get(ctx, sessionPath(id)+"/reference", &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// ClearReference removes the session's reference dataset.
func (c *Client) ClearReference(ctx context.Context, id string) error {
	return c.del(ctx, sessionPath(id)+"/reference", nil)
}
