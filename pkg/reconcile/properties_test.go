package reconcile_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/donaldgifford/network-link-manager/pkg/linkkey"
	"github.com/donaldgifford/network-link-manager/pkg/reconcile"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

var (
	propDevices = []string{"R1", "SITE_R1", "R2", "A_B_R3"}
	propPorts   = []string{"Eth1/1", "ae2", "Gi0/3", ""}
)

// genDataset builds datasets from a small device and port pool so that
// link keys and port keys collide often.
func genDataset() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 255)).Map(func(codes []int) domain.Dataset {
		ds := make(domain.Dataset, 0, len(codes))
		for i, n := range codes {
			ds = append(ds, domain.LinkRecord{
				LinkID:          "Row " + string(rune('A'+i%26)),
				Source:          propDevices[n%4],
				Destination:     propDevices[(n/4)%4],
				SourcePort:      propPorts[(n/16)%4],
				DestinationPort: propPorts[(n/64)%4],
			})
		}
		return ds
	})
}

func TestReconcile_Properties(t *testing.T) {
	t.Parallel()

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("cleaned and duplicates partition the input", prop.ForAll(
		func(ds domain.Dataset) bool {
			cleaned, duplicates := reconcile.ResolveDuplicates(ds)
			return len(cleaned)+len(duplicates) == len(ds)
		},
		genDataset(),
	))

	properties.Property("cleaned has one row per link key", prop.ForAll(
		func(ds domain.Dataset) bool {
			cleaned, _ := reconcile.ResolveDuplicates(ds)
			want := make(map[domain.LinkKey]struct{})
			for i := range ds {
				want[linkkey.Of(&ds[i])] = struct{}{}
			}
			seen := make(map[domain.LinkKey]struct{})
			for i := range cleaned {
				k := linkkey.Of(&cleaned[i])
				if _, dup := seen[k]; dup {
					return false
				}
				seen[k] = struct{}{}
			}
			return len(seen) == len(want)
		},
		genDataset(),
	))

	properties.Property("every key analyzed once, missing iff absent from reference", prop.ForAll(
		func(a, b domain.Dataset) bool {
			ref := make(map[string]struct{})
			for i := range b {
				ref[linkkey.Of(&b[i]).String()] = struct{}{}
			}
			keys := make(map[string]struct{})
			for i := range a {
				keys[linkkey.Of(&a[i]).String()] = struct{}{}
			}

			analysis, missing := reconcile.MatchLinks(a, b)
			if len(analysis) != len(keys) {
				return false
			}

			seen := make(map[string]struct{})
			wantMissing := 0
			for _, row := range analysis {
				if _, dup := seen[row.NormalizedLink]; dup {
					return false
				}
				seen[row.NormalizedLink] = struct{}{}

				_, inRef := ref[row.NormalizedLink]
				if inRef != (row.MatchStatus == domain.StatusFound) {
					return false
				}
				if !inRef {
					wantMissing++
				}
			}
			return len(missing) == wantMissing
		},
		genDataset(), genDataset(),
	))

	properties.TestingRun(t)
}
