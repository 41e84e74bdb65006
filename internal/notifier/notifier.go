package notifier

import (
	"context"
	"fmt"
)

// Notifier delivers a run summary to the configured recipients.
type Notifier interface {
	SendNotification(ctx context.Context, subject, body string) error
}

// NotificationError indicates the summary could not be delivered.
type NotificationError struct {
	Transport string
	Err       error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("failed to send notification via %s: %v", e.Transport, e.Err)
}

// Unwrap returns the underlying error.
func (e *NotificationError) Unwrap() error {
	return e.Err
}
