//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if _, err := db.Migrate(ctx, nil); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

type fixture struct {
	userEmail     string
	applicationID int64
}

func seed(t *testing.T, db *DB, description string) fixture {
	t.Helper()
	ctx := context.Background()

	email := "student-" + uuid.NewString() + "@example.com"
	userID, err := db.CreateUser(ctx, "Integration Student", email)
	require.NoError(t, err)
	studentID, err := db.CreateStudent(ctx, userID, "Java, SQL", "BSc")
	require.NoError(t, err)
	jobID, err := db.CreateJobPost(ctx, "Backend Engineer", description)
	require.NoError(t, err)
	appID, err := db.CreateApplication(ctx, ApplicationInput{StudentID: &studentID, JobID: jobID})
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.pool.Exec(ctx, `DELETE FROM job_posts WHERE id = $1`, jobID)
		_, _ = db.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, studentID)
		_, _ = db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	})
	return fixture{userEmail: email, applicationID: appID}
}

func TestIntegration_MigrateIsIdempotent(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	applied, err := db.Migrate(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestIntegration_Applications(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	f := seed(t, db, "Java services")

	app, err := db.GetApplication(ctx, f.applicationID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApplied, app.Status)
	assert.Equal(t, "Java services", app.JobDescription)
	require.NotNil(t, app.Student)
	assert.Equal(t, f.userEmail, app.Student.Email)

	require.NoError(t, db.SetApplicationStatus(ctx, f.applicationID, types.StatusShortlisted))
	app, err = db.GetApplication(ctx, f.applicationID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusShortlisted, app.Status)

	_, err = db.GetApplication(ctx, -1)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(db.SetApplicationStatus(ctx, -1, types.StatusRejected)))
}

func TestIntegration_Users(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	f := seed(t, db, "")

	u, err := db.GetUserByEmail(ctx, f.userEmail)
	require.NoError(t, err)
	assert.Equal(t, "Integration Student", u.Name)

	_, err = db.GetUserByEmail(ctx, "missing-"+uuid.NewString()+"@example.com")
	assert.True(t, apperr.IsNotFound(err))
}

func TestIntegration_Notifications(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	f := seed(t, db, "")

	require.NoError(t, db.NotifyApplicationStatusUpdate(ctx, f.applicationID, "first"))
	require.NoError(t, db.NotifyApplicationStatusUpdate(ctx, f.applicationID, "second"))

	list, err := db.ListNotifications(ctx, f.applicationID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Message)
	assert.Equal(t, "second", list[1].Message)
}

func TestDriverFailuresAreUnexpected(t *testing.T) {
	db := getTestDB(t)
	db.Close()
	ctx := context.Background()

	_, err := db.GetApplication(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnexpected, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "failed to get application 1")

	_, err = db.GetUserByEmail(ctx, "nobody@example.com")
	require.Error(t, err)
	assert.False(t, apperr.IsNotFound(err))

	err = db.SetApplicationStatus(ctx, 1, types.StatusRejected)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnexpected, apperr.KindOf(err))
}
