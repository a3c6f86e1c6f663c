package reconcile

import (
	"github.com/donaldgifford/network-link-manager/pkg/linkkey"
	"github.com/donaldgifford/network-link-manager/pkg/scorer"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// MatchLinks compares the subject dataset a against the reference dataset b.
//
// One analysis row is produced per distinct link key of a, in key order,
// using the first row of the key (in original order) as representative. A
// key is Found when b contains it and Missing otherwise. Missing rows carry
// the preferred ports resolved over a instead of the representative's own.
func MatchLinks(a, b domain.Dataset) ([]domain.AnalysisRow, []domain.MissingRow) {
	reference := make(map[domain.LinkKey]struct{}, len(b))
	for i := range b {
		reference[linkkey.Of(&b[i])] = struct{}{}
	}

	sorted := sortByKey(a)
	groups := groupLinks(sorted)

	analysis := make([]domain.AnalysisRow, 0, len(groups))
	missing := make([]domain.MissingRow, 0)

	for _, g := range groups {
		rep := &sorted[g.rows[0]]
		_, found := reference[g.key]

		status := domain.StatusFound
		if !found {
			status = domain.StatusMissing
		}

		analysis = append(analysis, domain.AnalysisRow{
			LinkName:                rep.Name(),
			Source:                  rep.Source,
			OriginalSourcePort:      rep.SourcePort,
			Destination:             rep.Destination,
			OriginalDestinationPort: rep.DestinationPort,
			MatchStatus:             status,
			NormalizedLink:          g.key.String(),
		})

		if found {
			continue
		}

		srcPort, dstPort, _ := scorer.PreferredPorts(sorted, rep.Source, rep.Destination)
		missing = append(missing, domain.MissingRow{
			LinkName:                 rep.Name(),
			Source:                   rep.Source,
			CorrectedSourcePort:      domain.RenderPort(srcPort),
			Destination:              rep.Destination,
			CorrectedDestinationPort: domain.RenderPort(dstPort),
			NormalizedLink:           g.key.String(),
		})
	}

	return analysis, missing
}

// Analyze runs the matcher and the port correction pass over a against b.
func Analyze(a, b domain.Dataset) *domain.LinkAnalysis {
	analysis, missing := MatchLinks(a, b)
	return &domain.LinkAnalysis{
		Analysis:    analysis,
		Missing:     missing,
		Corrections: PortCorrections(a),
		TotalLinks:  len(analysis),
	}
}
