// Package domain defines the core business types for the network link manager.
package domain

import (
	"fmt"
	"strings"
)

// Canonical column names.
const (
	ColumnSource          = "Source"
	ColumnSourcePort      = "Source Port"
	ColumnDestination     = "Destination"
	ColumnDestinationPort = "Destination Port"
	ColumnLinkID          = "Link ID"
)

// RequiredColumns lists the columns every dataset must expose after
// header canonicalization, in reporting order.
var RequiredColumns = []string{
	ColumnSource,
	ColumnSourcePort,
	ColumnDestination,
	ColumnDestinationPort,
}

// Match status values.
const (
	StatusFound   = "Found"
	StatusMissing = "Missing"
)

// Report sentinels and labels.
const (
	NotAvailable      = "N/A"
	IssuePortMismatch = "Port Mismatch"
	NoneRemoved       = "None"
	StatusKept        = "Original (would be kept)"
	StatusRemoved     = "Duplicate (would be removed)"
)

// Table is raw tabular input: a header row followed by data rows.
// Blank cells are empty strings.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value at row r for the named column, or "" when the
// column or cell does not exist.
func (t *Table) Cell(r int, column string) string {
	for i, h := range t.Headers {
		if h != column {
			continue
		}
		if i < len(t.Rows[r]) {
			return t.Rows[r][i]
		}
		return ""
	}
	return ""
}

// HasColumn reports whether the table has a header equal to column.
func (t *Table) HasColumn(column string) bool {
	for _, h := range t.Headers {
		if h == column {
			return true
		}
	}
	return false
}

// LinkRecord is a single device-to-device connection. A port that is empty
// after trimming is absent.
type LinkRecord struct {
	LinkID          string `json:"link_id"`
	Source          string `json:"source"`
	SourcePort      string `json:"source_port"`
	Destination     string `json:"destination"`
	DestinationPort string `json:"destination_port"`
}

// Name returns the display name "<source> to <destination>".
func (r *LinkRecord) Name() string {
	return LinkName(r.Source, r.Destination)
}

// LinkName formats a link display name.
func LinkName(source, destination string) string {
	return source + " to " + destination
}

// Dataset is an ordered sequence of link records. Order is significant for
// tie-breaks.
type Dataset []LinkRecord

// LinkKey is the order-independent identity of a link: the two endpoint
// match tokens, sorted.
type LinkKey [2]string

// Less orders keys lexicographically by first then second token.
func (k LinkKey) Less(o LinkKey) bool {
	if k[0] != o[0] {
		return k[0] < o[0]
	}
	return k[1] < o[1]
}

// String renders the key as a tuple, e.g. ('R1', 'R2').
func (k LinkKey) String() string {
	return fmt.Sprintf("('%s', '%s')", k[0], k[1])
}

// RenderPort returns the trimmed port, or N/A when absent.
func RenderPort(port string) string {
	p := strings.TrimSpace(port)
	if p == "" {
		return NotAvailable
	}
	return p
}

// AnalysisRow is one row of the Main Analysis report.
type AnalysisRow struct {
	LinkName                string `json:"link_name"`
	Source                  string `json:"source"`
	OriginalSourcePort      string `json:"original_source_port"`
	Destination             string `json:"destination"`
	OriginalDestinationPort string `json:"original_destination_port"`
	MatchStatus             string `json:"match_status"`
	NormalizedLink          string `json:"normalized_link"`
}

// MissingRow is one row of the Missing Links report.
type MissingRow struct {
	LinkName                 string `json:"link_name"`
	Source                   string `json:"source"`
	CorrectedSourcePort      string `json:"corrected_source_port"`
	Destination              string `json:"destination"`
	CorrectedDestinationPort string `json:"corrected_destination_port"`
	NormalizedLink           string `json:"normalized_link"`
}

// CorrectionRow is one row of the Port Corrections report.
type CorrectionRow struct {
	LinkName                 string `json:"link_name"`
	Source                   string `json:"source"`
	OriginalSourcePort       string `json:"original_source_port"`
	CorrectedSourcePort      string `json:"corrected_source_port"`
	Destination              string `json:"destination"`
	OriginalDestinationPort  string `json:"original_destination_port"`
	CorrectedDestinationPort string `json:"corrected_destination_port"`
	PortPriorityApplied      bool   `json:"port_priority_applied"`
	Issue                    string `json:"issue"`
}

// DuplicatePortRow is a record flagged for source- or destination-side
// port reuse.
type DuplicatePortRow struct {
	LinkRecord
	SourcePortDuplicate      bool `json:"source_port_duplicate"`
	DestinationPortDuplicate bool `json:"destination_port_duplicate"`
}

// PortSide identifies which end of a link a port belongs to.
type PortSide string

// Port side constants.
const (
	SideSource      PortSide = "source"
	SideDestination PortSide = "destination"
)

// PortUsageGroup collects every record that uses one device+port on the
// same side.
type PortUsageGroup struct {
	Side    PortSide     `json:"side"`
	Device  string       `json:"device"`
	Port    string       `json:"port"`
	Records []LinkRecord `json:"records"`
}

// DuplicateSummaryRow is one row of the Duplicate Links Summary report.
type DuplicateSummaryRow struct {
	LinkName        string `json:"link_name"`
	LinkIDs         string `json:"link_ids"`
	Source          string `json:"source"`
	SourcePort      string `json:"source_port"`
	Destination     string `json:"destination"`
	DestinationPort string `json:"destination_port"`
	ToBeRemoved     string `json:"to_be_removed"`
}

// DuplicateDetailRow is one row of the detailed duplicate view.
type DuplicateDetailRow struct {
	LinkName        string `json:"link_name"`
	LinkID          string `json:"link_id"`
	Source          string `json:"source"`
	SourcePort      string `json:"source_port"`
	Destination     string `json:"destination"`
	DestinationPort string `json:"destination_port"`
	Status          string `json:"status"`
}

// LinkAnalysis is the result of comparing a main dataset against a
// reference dataset.
type LinkAnalysis struct {
	Analysis    []AnalysisRow   `json:"analysis"`
	Missing     []MissingRow    `json:"missing"`
	Corrections []CorrectionRow `json:"corrections"`
	TotalLinks  int             `json:"total_links"`
}

// DuplicatePortReport is the result of duplicate port detection.
type DuplicatePortReport struct {
	Rows   []DuplicatePortRow `json:"rows"`
	Groups []PortUsageGroup   `json:"groups"`
}

// DuplicateLinkReport is the result of directional duplicate removal.
type DuplicateLinkReport struct {
	OriginalRows int                   `json:"original_rows"`
	UniqueLinks  int                   `json:"unique_links"`
	Groups       int                   `json:"groups"`
	Summary      []DuplicateSummaryRow `json:"summary"`
	Details      []DuplicateDetailRow  `json:"details"`
	Cleaned      Dataset               `json:"cleaned"`
	Duplicates   Dataset               `json:"duplicates"`
}
