// Package scheduling books interviews on interviewer calendars.
//
// Each interviewer owns a calendar guarded by its own lock. Booking and
// rescheduling check for overlaps and write under that lock, so two
// requests for the same interviewer can never both claim one time range.
// Cancelled interviews stay on the calendar but no longer block it.
package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

const (
	systemActor = "SYSTEM"

	// isoLocal matches the timestamp layout used in notes and audit details.
	isoLocal = "2006-01-02T15:04:05"
	// friendly is the timestamp layout used in applicant messages.
	friendly = "Jan 02, 2006 at 15:04"

	highScore = 70
	lowScore  = 50
)

// ApplicationLookup resolves applications.
type ApplicationLookup interface {
	GetApplication(ctx context.Context, id int64) (*types.Application, error)
}

// UserDirectory resolves interviewers by email.
type UserDirectory interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// Notifier delivers applicant-facing messages.
type Notifier interface {
	NotifyApplicationStatusUpdate(ctx context.Context, applicationID int64, message string) error
}

// Logger is the audit sink.
type Logger interface {
	LogAction(actor, action, details string)
	LogError(message string, err error)
	Info(message string, keysAndValues ...any)
}

// Booking describes an interview to schedule.
type Booking struct {
	ApplicationID    int64
	Type             Type
	Start            time.Time
	End              time.Time
	InterviewerEmail string
	InterviewerName  string
	Location         string
	MeetingLink      string
}

// Statistics summarizes every interview held by the scheduler.
type Statistics struct {
	TotalInterviews    int            `json:"total_interviews"`
	StatusBreakdown    map[Status]int `json:"status_breakdown"`
	TypeBreakdown      map[Type]int   `json:"type_breakdown"`
	ActiveInterviewers int            `json:"active_interviewers"`
}

// Scheduler books, moves, cancels and completes interviews.
type Scheduler struct {
	store    *Store
	apps     ApplicationLookup
	users    UserDirectory
	notifier Notifier
	log      Logger
	now      func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the clock used for timestamps and Upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a Scheduler over store.
func NewScheduler(store *Store, apps ApplicationLookup, users UserDirectory, notifier Notifier, log Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:    store,
		apps:     apps,
		users:    users,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule books a new interview. It fails with NotFound when the
// application or the interviewer is unknown and with a business rule
// violation when the time range is empty or overlaps another active
// interview of the same interviewer.
func (s *Scheduler) Schedule(ctx context.Context, b Booking) (*Interview, error) {
	iv, err := s.book(ctx, b)
	if err != nil {
		s.log.LogError("Failed to schedule interview", err)
		return nil, err
	}
	return iv, nil
}

func (s *Scheduler) book(ctx context.Context, b Booking) (*Interview, error) {
	if !(Interval{Start: b.Start, End: b.End}).Valid() {
		return nil, apperr.BusinessRule("interview end time must be after its start time")
	}

	app, err := s.apps.GetApplication(ctx, b.ApplicationID)
	if err != nil {
		return nil, err
	}
	interviewer, err := s.users.GetUserByEmail(ctx, b.InterviewerEmail)
	if err != nil {
		return nil, err
	}
	s.log.Info(fmt.Sprintf("Interviewer validated: %s (%s)", interviewer.Name, b.InterviewerEmail))

	name := b.InterviewerName
	if name == "" {
		name = interviewer.Name
	}
	now := s.now()
	booked, ok := s.store.insert(&Interview{
		ApplicationID:    b.ApplicationID,
		Type:             b.Type,
		ScheduledTime:    b.Start,
		EndTime:          b.End,
		InterviewerEmail: b.InterviewerEmail,
		InterviewerName:  name,
		Location:         b.Location,
		MeetingLink:      b.MeetingLink,
		Status:           StatusScheduled,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if !ok {
		return nil, apperr.BusinessRule("interviewer has a scheduling conflict at the requested time")
	}

	s.log.LogAction(systemActor, "INTERVIEW_SCHEDULED",
		fmt.Sprintf("Interview scheduled - Application: %d, Type: %s, Time: %s",
			booked.ApplicationID, booked.Type, booked.ScheduledTime.Format(isoLocal)))

	location := booked.Location
	if location == "" {
		location = "Virtual"
	}
	s.notify(ctx, app, "Failed to send interview notifications",
		fmt.Sprintf("Interview Scheduled: You have been scheduled for a %s interview on %s with %s. Location: %s",
			booked.Type.phrase(), booked.ScheduledTime.Format(friendly), booked.InterviewerName, location))

	return booked, nil
}

// Reschedule moves an interview to a new time range. On a conflict the
// interview is left unchanged.
func (s *Scheduler) Reschedule(ctx context.Context, id int64, newStart, newEnd time.Time, reason string) (*Interview, error) {
	iv, oldStart, err := s.reschedule(id, newStart, newEnd, reason)
	if err != nil {
		s.log.LogError("Failed to reschedule interview", err)
		return nil, err
	}

	s.log.LogAction(systemActor, "INTERVIEW_RESCHEDULED",
		fmt.Sprintf("Interview %d rescheduled from %s to %s - Reason: %s",
			id, oldStart.Format(isoLocal), newStart.Format(isoLocal), reason))

	s.notifyForApplication(ctx, iv.ApplicationID, "Failed to send reschedule notifications",
		fmt.Sprintf("Interview Rescheduled: Your %s interview has been rescheduled to %s. Reason: %s",
			iv.Type.phrase(), iv.ScheduledTime.Format(friendly), reason))

	return iv, nil
}

func (s *Scheduler) reschedule(id int64, newStart, newEnd time.Time, reason string) (*Interview, time.Time, error) {
	slot := Interval{Start: newStart, End: newEnd}
	if !slot.Valid() {
		return nil, time.Time{}, apperr.BusinessRule("interview end time must be after its start time")
	}

	var oldStart time.Time
	iv, ok, err := s.store.mutate(id, func(iv *Interview, sc *schedule) error {
		if sc.conflicts(slot, iv.ID) {
			return apperr.BusinessRule("interviewer has a scheduling conflict at the new requested time")
		}
		oldStart = iv.ScheduledTime
		iv.ScheduledTime = newStart
		iv.EndTime = newEnd
		iv.Status = StatusRescheduled
		iv.appendNote(fmt.Sprintf("Rescheduled from %s - Reason: %s", oldStart.Format(isoLocal), reason))
		iv.UpdatedAt = s.now()
		return nil
	})
	if !ok {
		return nil, time.Time{}, apperr.NotFound("interview", id)
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	return iv, oldStart, nil
}

// Cancel marks an interview cancelled, which frees its time range.
func (s *Scheduler) Cancel(ctx context.Context, id int64, reason string) error {
	iv, ok, _ := s.store.mutate(id, func(iv *Interview, _ *schedule) error {
		iv.Status = StatusCancelled
		iv.appendNote("Cancelled - Reason: " + reason)
		iv.UpdatedAt = s.now()
		return nil
	})
	if !ok {
		err := apperr.NotFound("interview", id)
		s.log.LogError("Failed to cancel interview", err)
		return err
	}

	s.log.LogAction(systemActor, "INTERVIEW_CANCELLED",
		fmt.Sprintf("Interview %d cancelled - Reason: %s", id, reason))

	s.notifyForApplication(ctx, iv.ApplicationID, "Failed to send cancellation notifications",
		fmt.Sprintf("Interview Cancelled: Your %s interview scheduled for %s has been cancelled. Reason: %s",
			iv.Type.phrase(), iv.ScheduledTime.Format(friendly), reason))
	return nil
}

// Complete records the outcome of an interview. The application's workflow
// is not advanced; the score is only reported to the log.
func (s *Scheduler) Complete(_ context.Context, id int64, score *int, feedback string) (*Interview, error) {
	iv, ok, _ := s.store.mutate(id, func(iv *Interview, _ *schedule) error {
		iv.Status = StatusCompleted
		if score != nil {
			v := *score
			iv.Score = &v
		} else {
			iv.Score = nil
		}
		iv.Feedback = feedback
		iv.UpdatedAt = s.now()
		return nil
	})
	if !ok {
		err := apperr.NotFound("interview", id)
		s.log.LogError("Failed to complete interview", err)
		return nil, err
	}

	scoreText := "none"
	if score != nil {
		scoreText = fmt.Sprint(*score)
	}
	s.log.LogAction(systemActor, "INTERVIEW_COMPLETED",
		fmt.Sprintf("Interview %d completed - Score: %s", id, scoreText))

	switch {
	case score == nil:
	case *score >= highScore:
		s.log.Info("Interview completed with high score, application ready for next stage",
			"interview_id", id, "application_id", iv.ApplicationID)
	case *score < lowScore:
		s.log.Info("Interview completed with low score, application may be rejected",
			"interview_id", id, "application_id", iv.ApplicationID)
	}
	return iv, nil
}

// ForApplication returns the application's interviews in booking order.
func (s *Scheduler) ForApplication(applicationID int64) []*Interview {
	return s.store.forApplication(applicationID)
}

// ForInterviewer returns the interviewer's interviews in booking order.
func (s *Scheduler) ForInterviewer(email string) []*Interview {
	return s.store.forInterviewer(email)
}

// Upcoming returns the interviewer's future interviews that are scheduled
// or confirmed, earliest first.
func (s *Scheduler) Upcoming(email string) []*Interview {
	now := s.now()
	out := []*Interview{}
	for _, iv := range s.store.forInterviewer(email) {
		if !iv.ScheduledTime.After(now) {
			continue
		}
		if iv.Status != StatusScheduled && iv.Status != StatusConfirmed {
			continue
		}
		out = append(out, iv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	return out
}

// Statistics counts interviews by status and type.
func (s *Scheduler) Statistics() Statistics {
	interviews, interviewers := s.store.all()
	stats := Statistics{
		TotalInterviews:    len(interviews),
		StatusBreakdown:    make(map[Status]int),
		TypeBreakdown:      make(map[Type]int),
		ActiveInterviewers: interviewers,
	}
	for _, iv := range interviews {
		stats.StatusBreakdown[iv.Status]++
		stats.TypeBreakdown[iv.Type]++
	}
	return stats
}

func (s *Scheduler) notifyForApplication(ctx context.Context, applicationID int64, failure, message string) {
	app, err := s.apps.GetApplication(ctx, applicationID)
	if err != nil {
		s.log.LogError(failure, err)
		return
	}
	s.notify(ctx, app, failure, message)
}

func (s *Scheduler) notify(ctx context.Context, app *types.Application, failure, message string) {
	if !app.HasApplicant() {
		return
	}
	if err := s.notifier.NotifyApplicationStatusUpdate(ctx, app.ID, message); err != nil {
		s.log.LogError(failure, err)
	}
}
