// Package notify defines the notification interface and implementations
// for analysis summary delivery.
package notify

import "context"

// Count is one named figure of an analysis summary.
type Count struct {
	Name  string
	Value int
}

// Summary describes a finished analysis run.
type Summary struct {
	Operation string
	Session   string
	Dataset   string
	Rows      int
	Counts    []Count
}

// Findings is the sum of all counts. A run with zero findings is clean.
func (s *Summary) Findings() int {
	total := 0
	for _, c := range s.Counts {
		total += c.Value
	}
	return total
}

// Notifier sends analysis summaries.
type Notifier interface {
	SendSummary(ctx context.Context, summary *Summary) error
}
