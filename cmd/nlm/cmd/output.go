package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/donaldgifford/network-link-manager/internal/api/handlers"
	"github.com/donaldgifford/network-link-manager/internal/report"
)

const maxCellWidth = 40

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// printSheets renders each report sheet as a titled table. Empty sheets
// print a one-line notice instead.
func printSheets(w io.Writer, sheets []report.Sheet) error {
	for i := range sheets {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := printSheet(w, &sheets[i]); err != nil {
			return err
		}
	}
	return nil
}

func printSheet(w io.Writer, s *report.Sheet) error {
	tw := newTabWriter(w)
	tw.writef("%s (%d)\n", s.Title, len(s.Rows))
	if len(s.Rows) == 0 {
		tw.writef("No rows.\n")
		return tw.finish()
	}

	headers := make([]string, len(s.Headers))
	for i, h := range s.Headers {
		headers[i] = strings.ToUpper(h)
	}
	tw.writef("%s\n", strings.Join(headers, "\t"))

	for _, row := range s.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = truncate(c, maxCellWidth)
		}
		tw.writef("%s\n", strings.Join(cells, "\t"))
	}
	return tw.finish()
}

func printReference(w io.Writer, r *handlers.ReferenceBody) error {
	tw := newTabWriter(w)
	tw.writef("Name:\t%s\n", r.Name)
	tw.writef("Format:\t%s\n", r.Format)
	if r.Sheet != "" {
		tw.writef("Sheet:\t%s\n", r.Sheet)
	}
	tw.writef("Size:\t%d bytes\n", r.Bytes)
	tw.writef("Updated:\t%s\n", r.UpdatedAt.Format(time.DateTime))
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
