// Package scorer ranks interface ports by class preference and picks the
// preferred ports for a link.
package scorer

import (
	"strings"

	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// Port priority scores. Higher is more preferred.
const (
	PriorityAbsent    = 0
	PriorityOther     = 1
	PriorityAggregate = 2
	PriorityEthernet  = 3
)

const (
	prefixEthernet  = "eth"
	prefixAggregate = "ae"
)

// PortPriority scores a port: eth-prefixed 3, ae-prefixed 2, any other
// value 1, absent 0. Matching is case-insensitive.
func PortPriority(port string) int {
	if strings.TrimSpace(port) == "" {
		return PriorityAbsent
	}

	p := strings.ToLower(port)
	switch {
	case strings.HasPrefix(p, prefixEthernet):
		return PriorityEthernet
	case strings.HasPrefix(p, prefixAggregate):
		return PriorityAggregate
	default:
		return PriorityOther
	}
}

// TotalPriority is the sum of both endpoint port scores.
func TotalPriority(r *domain.LinkRecord) int {
	return PortPriority(r.SourcePort) + PortPriority(r.DestinationPort)
}

// IsPreferred reports whether a port is ethernet or aggregate class.
func IsPreferred(port string) bool {
	p := strings.ToLower(port)
	return strings.HasPrefix(p, prefixEthernet) || strings.HasPrefix(p, prefixAggregate)
}

// PreferredPorts selects the canonical source and destination port for the
// link between x and y.
//
// Rows are matched on exact device names, first as (x, y) and, only if none
// match, as (y, x). Each port column is then resolved independently: the
// first eth port, else the first ae port, else the first matched row's
// value. ok is false when no row matches in either direction.
func PreferredPorts(ds domain.Dataset, x, y string) (sourcePort, destinationPort string, ok bool) {
	matched := filterPair(ds, x, y)
	if len(matched) == 0 {
		matched = filterPair(ds, y, x)
	}
	if len(matched) == 0 {
		return "", "", false
	}

	sourcePort = pick(matched, func(r *domain.LinkRecord) string { return r.SourcePort })
	destinationPort = pick(matched, func(r *domain.LinkRecord) string { return r.DestinationPort })
	return sourcePort, destinationPort, true
}

func filterPair(ds domain.Dataset, source, destination string) []*domain.LinkRecord {
	var out []*domain.LinkRecord
	for i := range ds {
		if ds[i].Source == source && ds[i].Destination == destination {
			out = append(out, &ds[i])
		}
	}
	return out
}

func pick(rows []*domain.LinkRecord, port func(*domain.LinkRecord) string) string {
	for _, prefix := range []string{prefixEthernet, prefixAggregate} {
		for _, r := range rows {
			if strings.HasPrefix(strings.ToLower(port(r)), prefix) {
				return port(r)
			}
		}
	}
	return port(rows[0])
}
