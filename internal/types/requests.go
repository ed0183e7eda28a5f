package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TransitionRequest asks for a single workflow action on one application.
type TransitionRequest struct {
	ApplicationID int64  `json:"application_id" validate:"required,gt=0"`
	Action        string `json:"action" validate:"required,oneof=APPROVE REJECT MOVE_TO_NEXT_STAGE PUT_ON_HOLD REQUEST_ADDITIONAL_INFO"`
	Comments      string `json:"comments,omitempty"`
}

// BulkWorkflowRequest applies one workflow action to many applications.
type BulkWorkflowRequest struct {
	ApplicationIDs []int64 `json:"application_ids" validate:"required,min=1,dive,gt=0"`
	Action         string  `json:"action" validate:"required,oneof=APPROVE REJECT MOVE_TO_NEXT_STAGE PUT_ON_HOLD REQUEST_ADDITIONAL_INFO"`
	Comments       string  `json:"comments,omitempty"`
}

// ScheduleInterviewRequest books a new interview.
type ScheduleInterviewRequest struct {
	ApplicationID    int64     `json:"application_id" validate:"required,gt=0"`
	Type             string    `json:"type" validate:"required,oneof=PHONE_SCREENING TECHNICAL_INTERVIEW HR_INTERVIEW PANEL_INTERVIEW FINAL_INTERVIEW"`
	ScheduledTime    time.Time `json:"scheduled_time" validate:"required"`
	EndTime          time.Time `json:"end_time" validate:"required,gtfield=ScheduledTime"`
	InterviewerEmail string    `json:"interviewer_email" validate:"required,email"`
	InterviewerName  string    `json:"interviewer_name,omitempty"`
	Location         string    `json:"location,omitempty"`
	MeetingLink      string    `json:"meeting_link,omitempty" validate:"omitempty,url"`
}

// RescheduleInterviewRequest moves an interview to a new time window.
type RescheduleInterviewRequest struct {
	NewScheduledTime time.Time `json:"new_scheduled_time" validate:"required"`
	NewEndTime       time.Time `json:"new_end_time" validate:"required,gtfield=NewScheduledTime"`
	Reason           string    `json:"reason,omitempty"`
}

// CompleteInterviewRequest records the outcome of an interview.
type CompleteInterviewRequest struct {
	Score    *int   `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
	Feedback string `json:"feedback,omitempty"`
}

// Validate validates the TransitionRequest using the validator.
func (r *TransitionRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the BulkWorkflowRequest using the validator.
func (r *BulkWorkflowRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ScheduleInterviewRequest using the validator.
func (r *ScheduleInterviewRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RescheduleInterviewRequest using the validator.
func (r *RescheduleInterviewRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CompleteInterviewRequest using the validator.
func (r *CompleteInterviewRequest) Validate() error {
	return validate.Struct(r)
}
