package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/network-link-manager/internal/ingest"
	"github.com/donaldgifford/network-link-manager/internal/session"
)

// SessionsHandler manages session workspaces and their reference upload.
type SessionsHandler struct {
	sessions *session.Store
}

// NewSessionsHandler creates a new SessionsHandler.
func NewSessionsHandler(s *session.Store) *SessionsHandler {
	return &SessionsHandler{sessions: s}
}

// --- Input/Output types ---

// SessionBody describes a session.
type SessionBody struct {
	ID        string    `json:"id" doc:"Session id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// CreateSessionOutput is the response for creating a session.
type CreateSessionOutput struct {
	Body SessionBody
}

// SessionPathInput identifies a session.
type SessionPathInput struct {
	Session string `path:"session" doc:"Session id"`
}

// ReferenceBody describes the stored reference upload.
type ReferenceBody struct {
	Name      string    `json:"name" doc:"Reference file name" example:"reference.xlsx"`
	Format    string    `json:"format" doc:"Detected format" example:"xlsx"`
	Sheet     string    `json:"sheet,omitempty" doc:"Worksheet name, xlsx only"`
	Bytes     int       `json:"bytes" doc:"Payload size in bytes"`
	UpdatedAt time.Time `json:"updated_at" doc:"When the reference was stored"`
}

// ReferenceOutput is the response for reference reads and writes.
type ReferenceOutput struct {
	Body ReferenceBody
}

// SetReferenceInput is the request for storing a reference upload.
type SetReferenceInput struct {
	Session string `path:"session" doc:"Session id"`
	Body    ingest.Upload
}

// --- Handlers ---

// CreateSession starts a new, empty session.
func (h *SessionsHandler) CreateSession(_ context.Context, _ *struct{}) (*CreateSessionOutput, error) {
	w := h.sessions.Create()
	return &CreateSessionOutput{Body: SessionBody{ID: w.ID(), CreatedAt: w.CreatedAt()}}, nil
}

// DeleteSession ends a session and drops its reference.
func (h *SessionsHandler) DeleteSession(_ context.Context, input *SessionPathInput) (*struct{}, error) {
	if !h.sessions.Delete(input.Session) {
		return nil, huma.Error404NotFound(session.ErrNotFound.Error())
	}
	return nil, nil
}

// SetReference stores the reference upload for later analyses.
func (h *SessionsHandler) SetReference(_ context.Context, input *SetReferenceInput) (*ReferenceOutput, error) {
	w, err := lookup(h.sessions, input.Session)
	if err != nil {
		return nil, err
	}

	format, err := ingest.DetectFormat(&input.Body)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(
			(&ingest.ParseError{Name: input.Body.Name, Err: err}).Error(),
		)
	}

	u := input.Body
	u.Format = format
	w.SetReference(&u, time.Now())

	return h.reference(w)
}

// GetReference describes the stored reference upload.
func (h *SessionsHandler) GetReference(_ context.Context, input *SessionPathInput) (*ReferenceOutput, error) {
	w, err := lookup(h.sessions, input.Session)
	if err != nil {
		return nil, err
	}
	return h.reference(w)
}

// ClearReference removes the stored reference upload.
func (h *SessionsHandler) ClearReference(_ context.Context, input *SessionPathInput) (*struct{}, error) {
	w, err := lookup(h.sessions, input.Session)
	if err != nil {
		return nil, err
	}
	if !w.ClearReference() {
		return nil, huma.Error404NotFound("no reference set")
	}
	return nil, nil
}

func (*SessionsHandler) reference(w *session.Workspace) (*ReferenceOutput, error) {
	u, at, ok := w.Reference()
	if !ok {
		return nil, huma.Error404NotFound("no reference set")
	}
	return &ReferenceOutput{Body: ReferenceBody{
		Name:      u.Name,
		Format:    u.Format,
		Sheet:     u.Sheet,
		Bytes:     u.Size(),
		UpdatedAt: at,
	}}, nil
}

// lookup resolves a session id, mapping unknown or expired ids to 404.
func lookup(s *session.Store, id string) (*session.Workspace, error) {
	w, err := s.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, huma.Error404NotFound(err.Error())
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("loading session: " + err.Error())
	}
	return w, nil
}

// RegisterSessionRoutes registers session endpoints with the Huma API.
func RegisterSessionRoutes(api huma.API, h *SessionsHandler, maxBodyBytes int64) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-session",
		Method:        http.MethodPost,
		Path:          "/api/v1/sessions",
		Summary:       "Create a session",
		Description:   "Starts a session that can hold a reference dataset between analyses.",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateSession)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-session",
		Method:        http.MethodDelete,
		Path:          "/api/v1/sessions/{session}",
		Summary:       "Delete a session",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.DeleteSession)

	huma.Register(api, huma.Operation{
		OperationID:  "set-reference",
		Method:       http.MethodPut,
		Path:         "/api/v1/sessions/{session}/reference",
		Summary:      "Store the reference dataset",
		Description:  "Stores a CSV or XLSX upload as the session's reference dataset, replacing any previous one.",
		Tags:         []string{"sessions"},
		MaxBodyBytes: maxBodyBytes,
		Errors:       []int{http.StatusNotFound, http.StatusRequestEntityTooLarge, http.StatusUnprocessableEntity},
	}, h.SetReference)

	huma.Register(api, huma.Operation{
		OperationID: "get-reference",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{session}/reference",
		Summary:     "Describe the reference dataset",
		Tags:        []string{"sessions"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetReference)

	huma.Register(api, huma.Operation{
		OperationID:   "clear-reference",
		Method:        http.MethodDelete,
		Path:          "/api/v1/sessions/{session}/reference",
		Summary:       "Clear the reference dataset",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.ClearReference)
}
