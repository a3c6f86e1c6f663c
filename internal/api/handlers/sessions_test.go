package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/network-link-manager/internal/api/handlers"
	"github.com/donaldgifford/network-link-manager/internal/session"
)

func newSessionAPI(t *testing.T) (humatest.TestAPI, *session.Store) {
	t.Helper()
	sessions := newSessions(t)
	_, api := humatest.New(t)
	handlers.RegisterSessionRoutes(api, handlers.NewSessionsHandler(sessions), testMaxBody)
	return api, sessions
}

func TestCreateSession(t *testing.T) {
	t.Parallel()

	api, sessions := newSessionAPI(t)

	resp := api.Post("/api/v1/sessions")
	require.Equal(t, http.StatusCreated, resp.Code)

	var body handlers.SessionBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)

	_, err := sessions.Get(body.ID)
	assert.NoError(t, err)
}

func TestDeleteSession(t *testing.T) {
	t.Parallel()

	api, sessions := newSessionAPI(t)
	w := sessions.Create()

	resp := api.Delete("/api/v1/sessions/" + w.ID())
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, 0, sessions.Len())

	resp = api.Delete("/api/v1/sessions/" + w.ID())
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReferenceLifecycle(t *testing.T) {
	t.Parallel()

	api, sessions := newSessionAPI(t)
	w := sessions.Create()
	path := "/api/v1/sessions/" + w.ID() + "/reference"

	resp := api.Get(path)
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "no reference set")

	resp = api.Put(path, upload("ref.csv", "Source,Source Port,Destination,Destination Port\n"))
	require.Equal(t, http.StatusOK, resp.Code)

	var ref handlers.ReferenceBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &ref))
	assert.Equal(t, "ref.csv", ref.Name)
	assert.Equal(t, "csv", ref.Format)
	assert.Equal(t, 48, ref.Bytes)

	resp = api.Get(path)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"ref.csv"`)

	resp = api.Delete(path)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.Delete(path)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSetReference_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		session    string
		body       any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unknown session",
			session:    "missing",
			body:       upload("ref.csv", "a,b\n"),
			wantStatus: http.StatusNotFound,
			wantBody:   "session not found",
		},
		{
			name:       "legacy xls rejected",
			body:       upload("ref.xls", "whatever"),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "ref.xls",
		},
		{
			name:       "empty content rejected",
			body:       upload("ref.csv", ""),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "upload is empty",
		},
		{
			name:       "name is required",
			body:       map[string]any{"content": []byte("a,b\n")},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api, sessions := newSessionAPI(t)
			id := tt.session
			if id == "" {
				id = sessions.Create().ID()
			}

			resp := api.Put("/api/v1/sessions/"+id+"/reference", tt.body)
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}
