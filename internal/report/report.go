// Package report renders analysis results as tabular sheets and writes them
// as CSV, XLSX or JSON.
package report

import (
	"strings"

	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// Sheet is one rendered report table. Name doubles as the file stem.
type Sheet struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]string
}

// Report file stems.
const (
	MainAnalysis          = "main_analysis"
	MissingLinks          = "missing_links"
	PortCorrections       = "port_corrections"
	DuplicatePorts        = "duplicate_ports"
	DuplicateLinksSummary = "duplicate_links_summary"
	DetailedDuplicates    = "detailed_duplicates"
	CleanedLinks          = "cleaned_links"
)

var linkColumns = []string{
	domain.ColumnLinkID,
	domain.ColumnSource,
	domain.ColumnSourcePort,
	domain.ColumnDestination,
	domain.ColumnDestinationPort,
}

// AnalysisSheets renders the main analysis, missing links and port
// corrections tables.
func AnalysisSheets(a *domain.LinkAnalysis) []Sheet {
	analysis := Sheet{
		Name:  MainAnalysis,
		Title: "Main Analysis",
		Headers: []string{
			"Link Name", "Source", "Original Source Port", "Destination",
			"Original Destination Port", "Match Status", "Normalized Link",
		},
	}
	for _, r := range a.Analysis {
		analysis.Rows = append(analysis.Rows, []string{
			r.LinkName, r.Source, r.OriginalSourcePort, r.Destination,
			r.OriginalDestinationPort, r.MatchStatus, r.NormalizedLink,
		})
	}

	missing := Sheet{
		Name:  MissingLinks,
		Title: "Missing Links",
		Headers: []string{
			"Link Name", "Source", "Corrected Source Port", "Destination",
			"Corrected Destination Port", "Normalized Link",
		},
	}
	for _, r := range a.Missing {
		missing.Rows = append(missing.Rows, []string{
			r.LinkName, r.Source, r.CorrectedSourcePort, r.Destination,
			r.CorrectedDestinationPort, r.NormalizedLink,
		})
	}

	corrections := Sheet{
		Name:  PortCorrections,
		Title: "Port Corrections",
		Headers: []string{
			"Link Name", "Source", "Original Source Port", "Corrected Source Port",
			"Destination", "Original Destination Port", "Corrected Destination Port",
			"Port Priority Applied", "Issue",
		},
	}
	for _, r := range a.Corrections {
		corrections.Rows = append(corrections.Rows, []string{
			r.LinkName, r.Source, r.OriginalSourcePort, r.CorrectedSourcePort,
			r.Destination, r.OriginalDestinationPort, r.CorrectedDestinationPort,
			formatBool(r.PortPriorityApplied), r.Issue,
		})
	}

	return []Sheet{analysis, missing, corrections}
}

// DuplicatePortSheets renders the flagged duplicate port rows.
func DuplicatePortSheets(r *domain.DuplicatePortReport) []Sheet {
	s := Sheet{
		Name:    DuplicatePorts,
		Title:   "Duplicate Ports",
		Headers: append(append([]string{}, linkColumns...), "Source Port Duplicate", "Destination Port Duplicate"),
	}
	for i := range r.Rows {
		row := &r.Rows[i]
		s.Rows = append(s.Rows, append(linkCells(&row.LinkRecord),
			formatBool(row.SourcePortDuplicate),
			formatBool(row.DestinationPortDuplicate),
		))
	}
	return []Sheet{s}
}

// DuplicateLinkSheets renders the summary, detailed and cleaned tables.
func DuplicateLinkSheets(r *domain.DuplicateLinkReport) []Sheet {
	summary := Sheet{
		Name:  DuplicateLinksSummary,
		Title: "Duplicate Links Summary",
		Headers: []string{
			"Link Name", "Link IDs", "Source", "Source Port",
			"Destination", "Destination Port", "To Be Removed",
		},
	}
	for _, s := range r.Summary {
		summary.Rows = append(summary.Rows, []string{
			s.LinkName, s.LinkIDs, s.Source, s.SourcePort,
			s.Destination, s.DestinationPort, s.ToBeRemoved,
		})
	}

	details := Sheet{
		Name:  DetailedDuplicates,
		Title: "Detailed Duplicates",
		Headers: []string{
			"Link Name", "Link ID", "Source", "Source Port",
			"Destination", "Destination Port", "Status",
		},
	}
	for _, d := range r.Details {
		details.Rows = append(details.Rows, []string{
			d.LinkName, d.LinkID, d.Source, d.SourcePort,
			d.Destination, d.DestinationPort, d.Status,
		})
	}

	cleaned := Sheet{
		Name:    CleanedLinks,
		Title:   "Cleaned Links",
		Headers: append([]string{}, linkColumns...),
	}
	for i := range r.Cleaned {
		cleaned.Rows = append(cleaned.Rows, linkCells(&r.Cleaned[i]))
	}

	return []Sheet{summary, details, cleaned}
}

func linkCells(r *domain.LinkRecord) []string {
	return []string{r.LinkID, r.Source, r.SourcePort, r.Destination, r.DestinationPort}
}

// formatBool renders booleans the way spreadsheet users expect them.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Stem returns a file-safe lower-case stem for an operation name.
func Stem(operation string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(operation)), "-", "_")
}
