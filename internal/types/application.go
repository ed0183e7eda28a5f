// Package types provides the records shared between the hiring core and its collaborators.
package types

// ApplicationStatus is the denormalized status code stored on an application.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusSelected    ApplicationStatus = "selected"
	StatusRejected    ApplicationStatus = "rejected"
)

// Student is the applicant profile attached to an application.
type Student struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Skills    string `json:"skills,omitempty"`
	Education string `json:"education,omitempty"`
}

// Application is a student's submission to a job posting as seen by the
// Application Store.
type Application struct {
	ID             int64             `json:"id"`
	StudentID      int64             `json:"student_id"`
	JobID          int64             `json:"job_id"`
	Status         ApplicationStatus `json:"status"`
	JobDescription string            `json:"job_description,omitempty"`
	// Student is nil when the application has no linked student profile.
	Student *Student `json:"student,omitempty"`
}

// HasApplicant reports whether the application can be notified.
func (a *Application) HasApplicant() bool {
	return a != nil && a.Student != nil && a.Student.Email != ""
}

// User is an entry of the user directory, used to resolve interviewers.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
