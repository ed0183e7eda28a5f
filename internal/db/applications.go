package db

import (
	"context"
	"fmt"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

// applicationRow is the flat result of the application query. Student
// columns are nil when the application has no linked student.
type applicationRow struct {
	ID             int64
	StudentID      *int64
	JobID          int64
	Status         string
	JobDescription string
	StudentName    *string
	StudentEmail   *string
	Skills         *string
	Education      *string
}

func (r applicationRow) toApplication() *types.Application {
	app := &types.Application{
		ID:             r.ID,
		JobID:          r.JobID,
		Status:         types.ApplicationStatus(r.Status),
		JobDescription: r.JobDescription,
	}
	if r.StudentID == nil {
		return app
	}
	app.StudentID = *r.StudentID
	app.Student = &types.Student{
		ID:        *r.StudentID,
		Name:      deref(r.StudentName),
		Email:     deref(r.StudentEmail),
		Skills:    deref(r.Skills),
		Education: deref(r.Education),
	}
	return app
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetApplication loads an application with its job description and
// student profile. Unknown ids yield a NotFound error.
func (db *DB) GetApplication(ctx context.Context, id int64) (*types.Application, error) {
	var r applicationRow
	err := db.pool.QueryRow(ctx,
		`SELECT a.id, a.student_id, a.job_id, a.status, j.description,
		        u.name, u.email, s.skills, s.education
		 FROM applications a
		 JOIN job_posts j ON j.id = a.job_id
		 LEFT JOIN students s ON s.id = a.student_id
		 LEFT JOIN users u ON u.id = s.user_id
		 WHERE a.id = $1`,
		id,
	).Scan(&r.ID, &r.StudentID, &r.JobID, &r.Status, &r.JobDescription,
		&r.StudentName, &r.StudentEmail, &r.Skills, &r.Education)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("application", id)
		}
		return nil, apperr.Unexpected(err, fmt.Sprintf("failed to get application %d", id))
	}
	return r.toApplication(), nil
}

// SetApplicationStatus writes the denormalized status of an application.
func (db *DB) SetApplicationStatus(ctx context.Context, id int64, status types.ApplicationStatus) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return apperr.Unexpected(err, "failed to update application status")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("application", id)
	}
	return nil
}

// ApplicationInput is the data needed to register an application.
type ApplicationInput struct {
	StudentID *int64
	JobID     int64
}

// CreateApplication inserts an application in the applied status and returns its id.
func (db *DB) CreateApplication(ctx context.Context, in ApplicationInput) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (student_id, job_id, status)
		 VALUES ($1, $2, 'applied')
		 RETURNING id`,
		in.StudentID, in.JobID,
	).Scan(&id)
	if err != nil {
		return 0, apperr.Unexpected(err, "failed to create application")
	}
	return id, nil
}
