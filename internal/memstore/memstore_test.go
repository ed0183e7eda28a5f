package memstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

const seedJSON = `{
  "applications": [
    {"id": 2, "student_id": 20, "job_id": 7, "job_description": "Go developer",
     "student": {"id": 20, "name": "Ann", "email": "ann@student.io", "skills": "Go", "education": "BSc"}},
    {"id": 1, "student_id": 10, "job_id": 7}
  ],
  "users": [{"id": 1, "name": "Bob", "email": "Bob@X.com"}]
}`

func TestLoad(t *testing.T) {
	s := New()
	require.NoError(t, s.Load(strings.NewReader(seedJSON)))

	assert.Equal(t, []int64{1, 2}, s.ApplicationIDs())

	app, err := s.GetApplication(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApplied, app.Status, "status defaults to applied")
	assert.True(t, app.HasApplicant())

	app1, err := s.GetApplication(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, app1.Student)
}

func TestLoad_Errors(t *testing.T) {
	assert.Error(t, New().Load(strings.NewReader("{")))
	assert.Error(t, New().Load(strings.NewReader(`{"applications":[{"id":0}]}`)))
	assert.Error(t, New().Load(strings.NewReader(`{"users":[{"name":"x"}]}`)))
}

func TestGetApplication_ReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.AddApplication(types.Application{ID: 1, Student: &types.Student{Name: "Ann"}}))

	app, err := s.GetApplication(context.Background(), 1)
	require.NoError(t, err)
	app.Student.Name = "changed"

	again, err := s.GetApplication(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.Student.Name)
}

func TestSetApplicationStatus(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddApplication(types.Application{ID: 1}))

	require.NoError(t, s.SetApplicationStatus(ctx, 1, types.StatusSelected))
	app, err := s.GetApplication(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSelected, app.Status)

	assert.True(t, apperr.IsNotFound(s.SetApplicationStatus(ctx, 9, types.StatusRejected)))
	_, err = s.GetApplication(ctx, 9)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetUserByEmail_IgnoresCase(t *testing.T) {
	s := New()
	require.NoError(t, s.Load(strings.NewReader(seedJSON)))

	u, err := s.GetUserByEmail(context.Background(), " bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)

	_, err = s.GetUserByEmail(context.Background(), "eve@x.com")
	assert.True(t, apperr.IsNotFound(err))
}

func TestNotifications(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.NotifyApplicationStatusUpdate(ctx, 1, "first"))
	require.NoError(t, s.NotifyApplicationStatusUpdate(ctx, 2, "other"))
	require.NoError(t, s.NotifyApplicationStatusUpdate(ctx, 1, "second"))

	got := s.Notifications(1)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, "second", got[1].Message)
	assert.Empty(t, s.Notifications(3))
}
