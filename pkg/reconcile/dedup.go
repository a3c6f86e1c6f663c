package reconcile

import (
	"strings"

	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// ResolveDuplicates keeps one record per link key and returns the rest as
// duplicates. Within a key the record with the highest total port priority
// wins; ties go to the earliest row. Both partitions keep original order and
// together contain every input row exactly once.
func ResolveDuplicates(ds domain.Dataset) (cleaned, duplicates domain.Dataset) {
	kept := keptSet(ds)

	cleaned = make(domain.Dataset, 0, len(kept))
	duplicates = make(domain.Dataset, 0, len(ds)-len(kept))
	for i := range ds {
		if _, ok := kept[i]; ok {
			cleaned = append(cleaned, ds[i])
		} else {
			duplicates = append(duplicates, ds[i])
		}
	}
	return cleaned, duplicates
}

// DuplicateSummary returns one row per link recorded more than once, in key
// order. Device and port columns show the kept record.
func DuplicateSummary(ds domain.Dataset) []domain.DuplicateSummaryRow {
	out := make([]domain.DuplicateSummaryRow, 0)
	for _, g := range groupLinks(ds) {
		if len(g.rows) < 2 {
			continue
		}

		k := &ds[keptRow(ds, g.rows)]
		ids := make([]string, 0, len(g.rows))
		var removed []string
		for _, i := range g.rows {
			ids = append(ids, ds[i].LinkID)
			if ds[i].LinkID != k.LinkID {
				removed = append(removed, ds[i].LinkID)
			}
		}

		toBeRemoved := domain.NoneRemoved
		if len(removed) > 0 {
			toBeRemoved = strings.Join(removed, ", ")
		}

		out = append(out, domain.DuplicateSummaryRow{
			LinkName:        k.Name(),
			LinkIDs:         strings.Join(ids, ", "),
			Source:          k.Source,
			SourcePort:      k.SourcePort,
			Destination:     k.Destination,
			DestinationPort: k.DestinationPort,
			ToBeRemoved:     toBeRemoved,
		})
	}
	return out
}

// DuplicateDetails lists every row of every link recorded more than once,
// in original order, marked as kept or removed.
func DuplicateDetails(ds domain.Dataset) []domain.DuplicateDetailRow {
	kept := keptSet(ds)
	multi := make(map[int]struct{})
	for _, g := range groupLinks(ds) {
		if len(g.rows) < 2 {
			continue
		}
		for _, i := range g.rows {
			multi[i] = struct{}{}
		}
	}

	out := make([]domain.DuplicateDetailRow, 0, len(multi))
	for i := range ds {
		if _, ok := multi[i]; !ok {
			continue
		}
		status := domain.StatusRemoved
		if _, ok := kept[i]; ok {
			status = domain.StatusKept
		}
		r := &ds[i]
		out = append(out, domain.DuplicateDetailRow{
			LinkName:        r.Name(),
			LinkID:          r.LinkID,
			Source:          r.Source,
			SourcePort:      r.SourcePort,
			Destination:     r.Destination,
			DestinationPort: r.DestinationPort,
			Status:          status,
		})
	}
	return out
}

// RemoveDuplicates runs the resolver and builds the full report.
func RemoveDuplicates(ds domain.Dataset) *domain.DuplicateLinkReport {
	cleaned, duplicates := ResolveDuplicates(ds)
	summary := DuplicateSummary(ds)
	return &domain.DuplicateLinkReport{
		OriginalRows: len(ds),
		UniqueLinks:  len(cleaned),
		Groups:       len(summary),
		Summary:      summary,
		Details:      DuplicateDetails(ds),
		Cleaned:      cleaned,
		Duplicates:   duplicates,
	}
}

func keptSet(ds domain.Dataset) map[int]struct{} {
	groups := groupLinks(ds)
	kept := make(map[int]struct{}, len(groups))
	for _, g := range groups {
		kept[keptRow(ds, g.rows)] = struct{}{}
	}
	return kept
}
