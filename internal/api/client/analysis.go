package client

import (
	"context"

	"github.com/donaldgifford/network-link-manager/internal/ingest"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

type linksRequest struct {
	Main      *ingest.Upload `json:"main,omitempty"`
	Reference *ingest.Upload `json:"reference,omitempty"`
}

type datasetRequest struct {
	Dataset *ingest.Upload `json:"dataset,omitempty"`
}

// AnalyzeLinks compares main against reference. A nil reference uses the
// one stored in the session.
func (c *Client) AnalyzeLinks(ctx context.Context, id string, main, reference *ingest.Upload) (*domain.LinkAnalysis, error) {
	var out domain.LinkAnalysis
	req := linksRequest{Main: main, Reference: reference}
	if err := c.post(ctx, sessionPath(id)+"/links", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindDuplicatePorts flags reused ports in u, or in the session reference
// when u is nil.
func (c *Client) FindDuplicatePorts(ctx context.Context, id string, u *ingest.Upload) (*domain.DuplicatePortReport, error) {
	var out domain.DuplicatePortReport
	if err := c.post(ctx, sessionPath(id)+"/duplicate-ports", datasetRequest{Dataset: u}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveDuplicateLinks collapses duplicate links in u, or in the session
// reference when u is nil.
func (c *Client) RemoveDuplicateLinks(ctx context.Context, id string, u *ingest.Upload) (*domain.DuplicateLinkReport, error) {
	var out domain.DuplicateLinkReport
	if err := c.post(ctx, sessionPath(id)+"/duplicate-links", datasetRequest{Dataset: u}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
