//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleInterviewRequest_Validation(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	valid := func() ScheduleInterviewRequest {
		return ScheduleInterviewRequest{
			ApplicationID:    1,
			Type:             "HR_INTERVIEW",
			ScheduledTime:    start,
			EndTime:          start.Add(30 * time.Minute),
			InterviewerEmail: "bob@x.com",
			InterviewerName:  "Bob",
			MeetingLink:      "https://meet.example.com/abc",
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *ScheduleInterviewRequest)
		wantErr bool
		errMsg  string
	}{
		{name: "valid request", mutate: func(_ *ScheduleInterviewRequest) {}},
		{name: "no meeting link", mutate: func(r *ScheduleInterviewRequest) { r.MeetingLink = "" }},
		{
			name:    "missing application",
			mutate:  func(r *ScheduleInterviewRequest) { r.ApplicationID = 0 },
			wantErr: true,
			errMsg:  "ApplicationID",
		},
		{
			name:    "unknown type",
			mutate:  func(r *ScheduleInterviewRequest) { r.Type = "COFFEE_CHAT" },
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name:    "end before start",
			mutate:  func(r *ScheduleInterviewRequest) { r.EndTime = start.Add(-time.Minute) },
			wantErr: true,
			errMsg:  "gtfield",
		},
		{
			name:    "end equals start",
			mutate:  func(r *ScheduleInterviewRequest) { r.EndTime = start },
			wantErr: true,
			errMsg:  "gtfield",
		},
		{
			name:    "invalid email",
			mutate:  func(r *ScheduleInterviewRequest) { r.InterviewerEmail = "bob" },
			wantErr: true,
			errMsg:  "email",
		},
		{
			name:    "invalid meeting link",
			mutate:  func(r *ScheduleInterviewRequest) { r.MeetingLink = "not a url" },
			wantErr: true,
			errMsg:  "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransitionRequest_Validation(t *testing.T) {
	req := TransitionRequest{ApplicationID: 3, Action: "MOVE_TO_NEXT_STAGE"}
	assert.NoError(t, req.Validate())

	req.Action = "PROMOTE"
	assert.Error(t, req.Validate())

	req = TransitionRequest{Action: "REJECT"}
	assert.Error(t, req.Validate())
}

func TestBulkWorkflowRequest_Validation(t *testing.T) {
	req := BulkWorkflowRequest{ApplicationIDs: []int64{1, 2, 3}, Action: "REJECT"}
	assert.NoError(t, req.Validate())

	req.ApplicationIDs = nil
	assert.Error(t, req.Validate())

	req.ApplicationIDs = []int64{1, -2}
	assert.Error(t, req.Validate())
}

func TestRescheduleInterviewRequest_Validation(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	req := RescheduleInterviewRequest{NewScheduledTime: start, NewEndTime: start.Add(time.Hour), Reason: "conflict"}
	assert.NoError(t, req.Validate())

	req.NewEndTime = start
	assert.Error(t, req.Validate())
}

func TestCompleteInterviewRequest_Validation(t *testing.T) {
	score := 85
	req := CompleteInterviewRequest{Score: &score, Feedback: "strong"}
	assert.NoError(t, req.Validate())

	req.Score = nil
	assert.NoError(t, req.Validate())

	tooHigh := 101
	req.Score = &tooHigh
	assert.Error(t, req.Validate())
}

func TestApplication_HasApplicant(t *testing.T) {
	var nilApp *Application
	assert.False(t, nilApp.HasApplicant())
	assert.False(t, (&Application{ID: 1}).HasApplicant())
	assert.False(t, (&Application{ID: 1, Student: &Student{ID: 2}}).HasApplicant())
	assert.True(t, (&Application{ID: 1, Student: &Student{ID: 2, Email: "s@x.com"}}).HasApplicant())
}
