package reconcile

import (
	"sort"
	"strings"

	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// DuplicatePorts flags rows whose device+port is reused on the same side
// elsewhere in ds. Source and destination sides are counted independently.
// Only flagged rows are returned, in original order.
func DuplicatePorts(ds domain.Dataset) []domain.DuplicatePortRow {
	srcCounts := make(map[string]int, len(ds))
	dstCounts := make(map[string]int, len(ds))
	for i := range ds {
		srcCounts[portKey(ds[i].Source, ds[i].SourcePort)]++
		dstCounts[portKey(ds[i].Destination, ds[i].DestinationPort)]++
	}

	out := make([]domain.DuplicatePortRow, 0)
	for i := range ds {
		r := ds[i]
		srcDup := srcCounts[portKey(r.Source, r.SourcePort)] > 1
		dstDup := dstCounts[portKey(r.Destination, r.DestinationPort)] > 1
		if !srcDup && !dstDup {
			continue
		}
		out = append(out, domain.DuplicatePortRow{
			LinkRecord:               r,
			SourcePortDuplicate:      srcDup,
			DestinationPortDuplicate: dstDup,
		})
	}
	return out
}

// GroupDuplicatePorts collects flagged rows into one group per reused
// device+port, keyed on trimmed values. Source groups come first, then
// destination groups, each ordered by device then port.
func GroupDuplicatePorts(rows []domain.DuplicatePortRow) []domain.PortUsageGroup {
	groups := groupSide(rows, domain.SideSource)
	return append(groups, groupSide(rows, domain.SideDestination)...)
}

func groupSide(rows []domain.DuplicatePortRow, side domain.PortSide) []domain.PortUsageGroup {
	type devicePort struct{ device, port string }

	index := make(map[devicePort]int)
	var groups []domain.PortUsageGroup

	for _, r := range rows {
		var dp devicePort
		switch side {
		case domain.SideSource:
			if !r.SourcePortDuplicate {
				continue
			}
			dp = devicePort{strings.TrimSpace(r.Source), strings.TrimSpace(r.SourcePort)}
		case domain.SideDestination:
			if !r.DestinationPortDuplicate {
				continue
			}
			dp = devicePort{strings.TrimSpace(r.Destination), strings.TrimSpace(r.DestinationPort)}
		}

		g, ok := index[dp]
		if !ok {
			g = len(groups)
			index[dp] = g
			groups = append(groups, domain.PortUsageGroup{Side: side, Device: dp.device, Port: dp.port})
		}
		groups[g].Records = append(groups[g].Records, r.LinkRecord)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Device != groups[j].Device {
			return groups[i].Device < groups[j].Device
		}
		return groups[i].Port < groups[j].Port
	})
	return groups
}

// DetectDuplicatePorts returns the flagged rows together with their groups.
func DetectDuplicatePorts(ds domain.Dataset) *domain.DuplicatePortReport {
	rows := DuplicatePorts(ds)
	return &domain.DuplicatePortReport{
		Rows:   rows,
		Groups: GroupDuplicatePorts(rows),
	}
}

// portKey is the composite device+port identity, both values trimmed.
func portKey(device, port string) string {
	return strings.TrimSpace(device) + "_" + strings.TrimSpace(port)
}
