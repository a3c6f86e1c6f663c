package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/network-link-manager/internal/engine"
	"github.com/donaldgifford/network-link-manager/internal/ingest"
	"github.com/donaldgifford/network-link-manager/internal/session"
	"github.com/donaldgifford/network-link-manager/pkg/columns"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// Analyzer runs link analyses over uploads.
type Analyzer interface {
	AnalyzeLinks(ctx context.Context, main, reference *ingest.Upload) (*domain.LinkAnalysis, error)
	FindDuplicatePorts(ctx context.Context, u *ingest.Upload) (*domain.DuplicatePortReport, error)
	RemoveDuplicateLinks(ctx context.Context, u *ingest.Upload) (*domain.DuplicateLinkReport, error)
}

// AnalysisHandler runs analyses in the context of a session.
type AnalysisHandler struct {
	analyzer Analyzer
	sessions *session.Store
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(a Analyzer, s *session.Store) *AnalysisHandler {
	return &AnalysisHandler{analyzer: a, sessions: s}
}

// --- Input/Output types ---

// LinksInput is the request for a link analysis.
type LinksInput struct {
	Session string `path:"session" doc:"Session id"`
	Body    struct {
		Main      *ingest.Upload `json:"main,omitempty" required:"false" doc:"Dataset to analyze"`
		Reference *ingest.Upload `json:"reference,omitempty" required:"false" doc:"Reference dataset; stored in the session when given, otherwise the stored one is used"`
	}
}

// LinksOutput is the response for a link analysis.
type LinksOutput struct {
	Body *domain.LinkAnalysis
}

// DatasetInput is the request for single-dataset analyses.
type DatasetInput struct {
	Session string `path:"session" doc:"Session id"`
	Body    struct {
		Dataset *ingest.Upload `json:"dataset,omitempty" required:"false" doc:"Dataset to analyze; the session reference is used when omitted"`
	}
}

// DuplicatePortsOutput is the response for duplicate port detection.
type DuplicatePortsOutput struct {
	Body *domain.DuplicatePortReport
}

// DuplicateLinksOutput is the response for duplicate link removal.
type DuplicateLinksOutput struct {
	Body *domain.DuplicateLinkReport
}

// --- Handlers ---

// Links compares the main dataset against the reference.
func (h *AnalysisHandler) Links(ctx context.Context, input *LinksInput) (*LinksOutput, error) {
	w, err := lookup(h.sessions, input.Session)
	if err != nil {
		return nil, err
	}

	ref := input.Body.Reference
	if ref == nil {
		ref = storedReference(w)
	}

	result, err := h.analyzer.AnalyzeLinks(engine.WithSession(ctx, w.ID()), input.Body.Main, ref)
	if err != nil {
		return nil, analysisError(err)
	}

	if input.Body.Reference != nil {
		w.SetReference(input.Body.Reference, time.Now())
	}
	return &LinksOutput{Body: result}, nil
}

// DuplicatePorts flags device+port reuse.
func (h *AnalysisHandler) DuplicatePorts(ctx context.Context, input *DatasetInput) (*DuplicatePortsOutput, error) {
	w, err := lookup(h.sessions, input.Session)
	if err != nil {
		return nil, err
	}

	result, err := h.analyzer.FindDuplicatePorts(engine.WithSession(ctx, w.ID()), datasetOrReference(input, w))
	if err != nil {
		return nil, analysisError(err)
	}
	return &DuplicatePortsOutput{Body: result}, nil
}

// DuplicateLinks collapses links recorded more than once.
func (h *AnalysisHandler) DuplicateLinks(ctx context.Context, input *DatasetInput) (*DuplicateLinksOutput, error) {
	w, err := lookup(h.sessions, input.Session)
	if err != nil {
		return nil, err
	}

	result, err := h.analyzer.RemoveDuplicateLinks(engine.WithSession(ctx, w.ID()), datasetOrReference(input, w))
	if err != nil {
		return nil, analysisError(err)
	}
	return &DuplicateLinksOutput{Body: result}, nil
}

func storedReference(w *session.Workspace) *ingest.Upload {
	u, _, ok := w.Reference()
	if !ok {
		return nil
	}
	return &u
}

func datasetOrReference(input *DatasetInput, w *session.Workspace) *ingest.Upload {
	if input.Body.Dataset != nil {
		return input.Body.Dataset
	}
	return storedReference(w)
}

// analysisError maps engine errors onto HTTP statuses.
func analysisError(err error) error {
	var (
		limitErr  *ingest.LimitError
		parseErr  *ingest.ParseError
		schemaErr *columns.SchemaError
	)

	switch {
	case errors.Is(err, engine.ErrMissingInput):
		return huma.Error400BadRequest(err.Error())
	case errors.As(err, &limitErr):
		return huma.Error413RequestEntityTooLarge(err.Error())
	case errors.As(err, &parseErr), errors.As(err, &schemaErr):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable("analysis canceled: " + err.Error())
	default:
		return huma.Error500InternalServerError("analysis failed: " + err.Error())
	}
}

// RegisterAnalysisRoutes registers analysis endpoints with the Huma API.
func RegisterAnalysisRoutes(api huma.API, h *AnalysisHandler, maxBodyBytes int64) {
	errs := []int{
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusRequestEntityTooLarge,
		http.StatusUnprocessableEntity,
	}

	huma.Register(api, huma.Operation{
		OperationID: "analyze-links",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{session}/links",
		Summary:     "Compare links against a reference",
		Description: "Reports which links of the main dataset are missing from the reference, " +
			"proposes preferred ports for missing links, and flags port corrections " +
			"for links recorded more than once.",
		Tags:         []string{"analysis"},
		MaxBodyBytes: maxBodyBytes,
		Errors:       errs,
	}, h.Links)

	huma.Register(api, huma.Operation{
		OperationID:  "find-duplicate-ports",
		Method:       http.MethodPost,
		Path:         "/api/v1/sessions/{session}/duplicate-ports",
		Summary:      "Find reused ports",
		Description:  "Flags rows whose device and port are used by more than one link on the same side.",
		Tags:         []string{"analysis"},
		MaxBodyBytes: maxBodyBytes,
		Errors:       errs,
	}, h.DuplicatePorts)

	huma.Register(api, huma.Operation{
		OperationID: "remove-duplicate-links",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{session}/duplicate-links",
		Summary:     "Remove duplicate links",
		Description: "Keeps one row per link, preferring ethernet then aggregate ports, " +
			"and reports the rows that would be removed.",
		Tags:         []string{"analysis"},
		MaxBodyBytes: maxBodyBytes,
		Errors:       errs,
	}, h.DuplicateLinks)
}
