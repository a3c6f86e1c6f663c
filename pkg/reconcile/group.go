// Package reconcile implements the link reconciliation passes: cross-dataset
// matching, port corrections, duplicate port detection and directional
// duplicate resolution. Every function is pure and never mutates its input.
package reconcile

import (
	"sort"

	"github.com/donaldgifford/network-link-manager/pkg/linkkey"
	"github.com/donaldgifford/network-link-manager/pkg/scorer"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// linkGroup is every row index of a dataset sharing one link key, in
// original order.
type linkGroup struct {
	key  domain.LinkKey
	rows []int
}

// groupLinks partitions ds by link key. Groups are returned in key order.
func groupLinks(ds domain.Dataset) []linkGroup {
	index := make(map[domain.LinkKey]int)
	var groups []linkGroup

	for i := range ds {
		k := linkkey.Of(&ds[i])
		g, ok := index[k]
		if !ok {
			g = len(groups)
			index[k] = g
			groups = append(groups, linkGroup{key: k})
		}
		groups[g].rows = append(groups[g].rows, i)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].key.Less(groups[j].key)
	})
	return groups
}

// sortByKey returns a copy of ds stably sorted by link key.
func sortByKey(ds domain.Dataset) domain.Dataset {
	out := make(domain.Dataset, len(ds))
	copy(out, ds)
	sort.SliceStable(out, func(i, j int) bool {
		return linkkey.Of(&out[i]).Less(linkkey.Of(&out[j]))
	})
	return out
}

// keptRow returns the index in rows of the highest total priority record.
// Ties keep the earliest row.
func keptRow(ds domain.Dataset, rows []int) int {
	best, bestScore := rows[0], scorer.TotalPriority(&ds[rows[0]])
	for _, i := range rows[1:] {
		if s := scorer.TotalPriority(&ds[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}
