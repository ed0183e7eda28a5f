package db

import (
	"context"
	"fmt"
	"time"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
)

// Notification is a message queued for an applicant.
type Notification struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}

// NotifyApplicationStatusUpdate stores message in the notification outbox.
// Delivery to the applicant happens outside this service.
func (db *DB) NotifyApplicationStatusUpdate(ctx context.Context, applicationID int64, message string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO application_notifications (application_id, message) VALUES ($1, $2)`,
		applicationID, message,
	)
	if err != nil {
		return apperr.Unexpected(err, fmt.Sprintf("failed to queue notification for application %d", applicationID))
	}
	return nil
}

// ListNotifications returns the queued messages of an application, oldest first
func (db *DB) ListNotifications(ctx context.Context, applicationID int64) ([]Notification, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, application_id, message, created_at
		 FROM application_notifications
		 WHERE application_id = $1
		 ORDER BY created_at ASC, id ASC`,
		applicationID,
	)
	if err != nil {
		return nil, apperr.Unexpected(err, "failed to list notifications")
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.ApplicationID, &n.Message, &n.CreatedAt); err != nil {
			return nil, apperr.Unexpected(err, "failed to scan notification")
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
