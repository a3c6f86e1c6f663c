// Package linkkey derives the order-independent identity of a link from its
// two endpoint device names.
package linkkey

import (
	"strings"

	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// MatchToken returns the comparable part of a device name.
//
//	"R1"       -> "R1"
//	"SITE_R1"  -> "R1"
//	"A_B_R1"   -> "B_R1"
//	"A_B_C_R1" -> "C_R1"
//
// A single underscore keeps only the text after it, while two or more keep
// the last two segments. Existing inventories depend on this split, so it
// must not be unified.
func MatchToken(device string) string {
	parts := strings.Split(device, "_")
	switch {
	case len(parts) == 2:
		return parts[1]
	case len(parts) > 2:
		return strings.Join(parts[len(parts)-2:], "_")
	default:
		return device
	}
}

// Normalize returns the link key for a source/destination pair. It is
// symmetric: Normalize(a, b) == Normalize(b, a).
func Normalize(source, destination string) domain.LinkKey {
	a := MatchToken(strings.TrimSpace(source))
	b := MatchToken(strings.TrimSpace(destination))
	if b < a {
		a, b = b, a
	}
	return domain.LinkKey{a, b}
}

// Of returns the link key of a record.
func Of(r *domain.LinkRecord) domain.LinkKey {
	return Normalize(r.Source, r.Destination)
}
