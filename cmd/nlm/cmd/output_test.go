package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/network-link-manager/internal/api/handlers"
	"github.com/donaldgifford/network-link-manager/internal/report"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

func TestPrintSheets(t *testing.T) {
	t.Parallel()

	sheets := report.DuplicateLinkSheets(&domain.DuplicateLinkReport{
		Summary: []domain.DuplicateSummaryRow{{
			LinkName:    "R1 to R2",
			LinkIDs:     "L1, L2",
			Source:      "R1",
			SourcePort:  "Eth1/1",
			Destination: "R2",
			ToBeRemoved: "L2",
		}},
	})

	var buf bytes.Buffer
	require.NoError(t, printSheets(&buf, sheets))

	out := buf.String()
	assert.Contains(t, out, "Duplicate Links Summary (1)")
	assert.Contains(t, out, "LINK NAME")
	assert.Contains(t, out, "R1 to R2")
	assert.Contains(t, out, "Cleaned Links (0)\nNo rows.")
}

func TestPrintReference(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printReference(&buf, &handlers.ReferenceBody{
		Name:      "ref.xlsx",
		Format:    "xlsx",
		Sheet:     "Links",
		Bytes:     2048,
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}))

	out := buf.String()
	assert.Contains(t, out, "ref.xlsx")
	assert.Contains(t, out, "Links")
	assert.Contains(t, out, "2048 bytes")
	assert.Contains(t, out, "2026-01-02 03:04:05")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "Eth1/1", max: 10, want: "Eth1/1"},
		{name: "exact", in: "abcde", max: 5, want: "abcde"},
		{name: "long", in: strings.Repeat("x", 12), max: 10, want: "xxxxxxx..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}
}
