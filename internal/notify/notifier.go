// Package notify delivers best-effort alerts about crawl results.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier is a fire-and-forget message sink. Callers log delivery
// errors; they never propagate into pipeline outcomes.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes alerts to the log. It backs deployments without
// Telegram credentials so alert content still lands somewhere visible.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the alert text.
func (n *LogNotifier) Notify(_ context.Context, text string) error {
	n.logger.Info("notification", zap.String("text", text))
	return nil
}
