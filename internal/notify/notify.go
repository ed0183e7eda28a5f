// Package notify delivers applicant-facing messages.
package notify

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Notifier delivers a message about an application to its applicant.
type Notifier interface {
	NotifyApplicationStatusUpdate(ctx context.Context, applicationID int64, message string) error
}

// LogNotifier writes every message to a zap logger instead of delivering it.
type LogNotifier struct {
	log *zap.SugaredLogger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyApplicationStatusUpdate implements Notifier.
func (n *LogNotifier) NotifyApplicationStatusUpdate(_ context.Context, applicationID int64, message string) error {
	n.log.Infow("application notification",
		"application_id", applicationID,
		"message", message,
	)
	return nil
}

// Fanout sends each message to every wrapped notifier. Delivery continues
// past failures; the failures are joined into the returned error.
type Fanout []Notifier

// NotifyApplicationStatusUpdate implements Notifier.
func (f Fanout) NotifyApplicationStatusUpdate(ctx context.Context, applicationID int64, message string) error {
	var errs []error
	for _, n := range f {
		if err := n.NotifyApplicationStatusUpdate(ctx, applicationID, message); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
