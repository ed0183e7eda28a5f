package db

import (
	"context"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

// GetUserByEmail resolves a user by email, ignoring case. Unknown emails
// yield a NotFound error.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	var u types.User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email FROM users WHERE LOWER(email) = LOWER($1)`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("user", email)
		}
		return nil, apperr.Unexpected(err, "failed to get user by email")
	}
	return &u, nil
}

// CreateUser inserts a user and returns its id
func (db *DB) CreateUser(ctx context.Context, name, email string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
		name, email,
	).Scan(&id)
	if err != nil {
		return 0, apperr.Unexpected(err, "failed to create user")
	}
	return id, nil
}

// CreateStudent inserts a student profile for userID and returns its id
func (db *DB) CreateStudent(ctx context.Context, userID int64, skills, education string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO students (user_id, skills, education) VALUES ($1, $2, $3) RETURNING id`,
		userID, skills, education,
	).Scan(&id)
	if err != nil {
		return 0, apperr.Unexpected(err, "failed to create student")
	}
	return id, nil
}

// CreateJobPost inserts a job post and returns its id
func (db *DB) CreateJobPost(ctx context.Context, title, description string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_posts (title, description) VALUES ($1, $2) RETURNING id`,
		title, description,
	).Scan(&id)
	if err != nil {
		return 0, apperr.Unexpected(err, "failed to create job post")
	}
	return id, nil
}
