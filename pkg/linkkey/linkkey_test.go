package linkkey_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/network-link-manager/pkg/linkkey"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

func TestMatchToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		device string
		want   string
	}{
		{name: "no underscore", device: "R1", want: "R1"},
		{name: "one underscore keeps suffix", device: "SITE_R1", want: "R1"},
		{name: "two underscores keep last two", device: "A_B_R1", want: "B_R1"},
		{name: "three underscores keep last two", device: "A_B_C_R1", want: "C_R1"},
		{name: "A_B is not A_B_C", device: "A_B", want: "B"},
		{name: "A_B_C", device: "A_B_C", want: "B_C"},
		{name: "trailing underscore", device: "R1_", want: ""},
		{name: "empty", device: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, linkkey.MatchToken(tt.device))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		destination string
		want        domain.LinkKey
	}{
		{name: "already ordered", source: "R1", destination: "R2", want: domain.LinkKey{"R1", "R2"}},
		{name: "reversed", source: "R2", destination: "R1", want: domain.LinkKey{"R1", "R2"}},
		{name: "site prefixes stripped", source: "DHK_R2", destination: "CTG_R1", want: domain.LinkKey{"R1", "R2"}},
		{name: "whitespace trimmed", source: "  R1 ", destination: "\tR2", want: domain.LinkKey{"R1", "R2"}},
		{name: "multi segment", source: "BD_DHK_CORE1", destination: "AGG1", want: domain.LinkKey{"AGG1", "DHK_CORE1"}},
		{name: "self link", source: "R1", destination: "R1", want: domain.LinkKey{"R1", "R1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, linkkey.Normalize(tt.source, tt.destination))
		})
	}
}

func TestOf(t *testing.T) {
	t.Parallel()

	r := domain.LinkRecord{Source: "X_R9", Destination: "R3"}
	assert.Equal(t, domain.LinkKey{"R3", "R9"}, linkkey.Of(&r))
	assert.Equal(t, "('R3', 'R9')", linkkey.Of(&r).String())
}

func TestNormalize_Properties(t *testing.T) {
	t.Parallel()

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 500
	properties := gopter.NewProperties(params)

	deviceName := gen.OneGenOf(
		gen.AnyString(),
		gen.AlphaString(),
		gen.SliceOfN(4, gen.AlphaString()).Map(func(parts []string) string {
			out := ""
			for i, p := range parts {
				if i > 0 {
					out += "_"
				}
				out += p
			}
			return out
		}),
	)

	properties.Property("normalize is symmetric", prop.ForAll(
		func(a, b string) bool {
			return linkkey.Normalize(a, b) == linkkey.Normalize(b, a)
		},
		deviceName, deviceName,
	))

	properties.Property("key is sorted", prop.ForAll(
		func(a, b string) bool {
			k := linkkey.Normalize(a, b)
			return k[0] <= k[1]
		},
		deviceName, deviceName,
	))

	properties.TestingRun(t)
}
