package scheduling

import (
	"strings"
	"time"
)

// Type is the kind of interview.
type Type string

const (
	TypePhoneScreening     Type = "PHONE_SCREENING"
	TypeTechnicalInterview Type = "TECHNICAL_INTERVIEW"
	TypeHRInterview        Type = "HR_INTERVIEW"
	TypePanelInterview     Type = "PANEL_INTERVIEW"
	TypeFinalInterview     Type = "FINAL_INTERVIEW"
)

// AllTypes lists every interview type.
var AllTypes = []Type{
	TypePhoneScreening,
	TypeTechnicalInterview,
	TypeHRInterview,
	TypePanelInterview,
	TypeFinalInterview,
}

var typeDisplayNames = map[Type]string{
	TypePhoneScreening:     "Phone Screening",
	TypeTechnicalInterview: "Technical Interview",
	TypeHRInterview:        "HR Interview",
	TypePanelInterview:     "Panel Interview",
	TypeFinalInterview:     "Final Interview",
}

// ParseType converts a string into a Type.
func ParseType(s string) (Type, bool) {
	t := Type(s)
	_, ok := typeDisplayNames[t]
	return t, ok
}

// DisplayName returns the human readable type name.
func (t Type) DisplayName() string {
	if name, ok := typeDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// phrase renders the type for applicant messages, e.g. "HR INTERVIEW".
func (t Type) phrase() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// Status is the lifecycle status of an interview. Status changes are not
// checked against a transition table.
type Status string

const (
	StatusScheduled   Status = "SCHEDULED"
	StatusConfirmed   Status = "CONFIRMED"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusCompleted   Status = "COMPLETED"
	StatusCancelled   Status = "CANCELLED"
	StatusRescheduled Status = "RESCHEDULED"
	StatusNoShow      Status = "NO_SHOW"
)

// AllStatuses lists every interview status.
var AllStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusRescheduled,
	StatusNoShow,
}

// Interview is one scheduled meeting between an applicant and an interviewer.
type Interview struct {
	ID               int64     `json:"id"`
	ApplicationID    int64     `json:"application_id"`
	Type             Type      `json:"type"`
	ScheduledTime    time.Time `json:"scheduled_time"`
	EndTime          time.Time `json:"end_time"`
	InterviewerEmail string    `json:"interviewer_email"`
	InterviewerName  string    `json:"interviewer_name"`
	Location         string    `json:"location,omitempty"`
	MeetingLink      string    `json:"meeting_link,omitempty"`
	Status           Status    `json:"status"`
	Notes            string    `json:"notes,omitempty"`
	Score            *int      `json:"score,omitempty"`
	Feedback         string    `json:"feedback,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Interval returns the half-open time range [ScheduledTime, EndTime).
func (iv *Interview) Interval() Interval {
	return Interval{Start: iv.ScheduledTime, End: iv.EndTime}
}

// blocks reports whether the interview occupies its interviewer's calendar.
func (iv *Interview) blocks() bool {
	return iv.Status != StatusCancelled
}

func (iv *Interview) appendNote(note string) {
	if iv.Notes == "" {
		iv.Notes = note
		return
	}
	iv.Notes += "\n" + note
}

func (iv *Interview) clone() *Interview {
	cp := *iv
	if iv.Score != nil {
		score := *iv.Score
		cp.Score = &score
	}
	return &cp
}
