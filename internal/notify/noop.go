package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded summaries. It is
// used when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards summaries with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendSummary logs and discards a summary.
func (n *NoOpNotifier) SendSummary(_ context.Context, summary *Summary) error {
	n.log.Debug("notification discarded (no backend configured)",
		"operation", summary.Operation,
		"dataset", summary.Dataset,
		"findings", summary.Findings(),
	)
	return nil
}
