package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/network-link-manager/internal/ingest"
	"github.com/donaldgifford/network-link-manager/internal/session"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

const testMaxBody = 1 << 20

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) AnalyzeLinks(ctx context.Context, main, reference *ingest.Upload) (*domain.LinkAnalysis, error) {
	args := m.Called(ctx, main, reference)
	if v := args.Get(0); v != nil {
		return v.(*domain.LinkAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalyzer) FindDuplicatePorts(ctx context.Context, u *ingest.Upload) (*domain.DuplicatePortReport, error) {
	args := m.Called(ctx, u)
	if v := args.Get(0); v != nil {
		return v.(*domain.DuplicatePortReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalyzer) RemoveDuplicateLinks(ctx context.Context, u *ingest.Upload) (*domain.DuplicateLinkReport, error) {
	args := m.Called(ctx, u)
	if v := args.Get(0); v != nil {
		return v.(*domain.DuplicateLinkReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func newSessions(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.NewStore(16, time.Hour)
	require.NoError(t, err)
	return s
}

func upload(name, body string) map[string]any {
	// []byte fields travel as base64; huma decodes them via encoding/json.
	return map[string]any{"name": name, "content": []byte(body)}
}

func uploadNamed(name string) any {
	return mock.MatchedBy(func(u *ingest.Upload) bool {
		return u != nil && u.Name == name
	})
}
