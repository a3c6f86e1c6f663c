package reconcile

import (
	"github.com/donaldgifford/network-link-manager/pkg/scorer"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// PortCorrections proposes port fixes for links recorded more than once in
// ds. The corrected pair is resolved against the whole dataset using the
// group representative's device names; every group row whose trimmed ports
// differ from it yields a correction. Absent ports compare as N/A.
func PortCorrections(ds domain.Dataset) []domain.CorrectionRow {
	sorted := sortByKey(ds)
	out := make([]domain.CorrectionRow, 0)

	for _, g := range groupLinks(sorted) {
		if len(g.rows) < 2 {
			continue
		}

		rep := &sorted[g.rows[0]]
		srcPort, dstPort, _ := scorer.PreferredPorts(sorted, rep.Source, rep.Destination)
		corrSrc := domain.RenderPort(srcPort)
		corrDst := domain.RenderPort(dstPort)
		applied := scorer.IsPreferred(corrSrc) || scorer.IsPreferred(corrDst)

		for _, i := range g.rows {
			r := &sorted[i]
			origSrc := domain.RenderPort(r.SourcePort)
			origDst := domain.RenderPort(r.DestinationPort)
			if origSrc == corrSrc && origDst == corrDst {
				continue
			}

			out = append(out, domain.CorrectionRow{
				LinkName:                 rep.Name(),
				Source:                   rep.Source,
				OriginalSourcePort:       origSrc,
				CorrectedSourcePort:      corrSrc,
				Destination:              rep.Destination,
				OriginalDestinationPort:  origDst,
				CorrectedDestinationPort: corrDst,
				PortPriorityApplied:      applied,
				Issue:                    domain.IssuePortMismatch,
			})
		}
	}

	return out
}
