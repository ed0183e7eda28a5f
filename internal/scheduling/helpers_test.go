package scheduling

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

type fakeApplications map[int64]*types.Application

func (f fakeApplications) GetApplication(_ context.Context, id int64) (*types.Application, error) {
	app, ok := f[id]
	if !ok {
		return nil, apperr.NotFound("application", id)
	}
	return app, nil
}

type fakeUsers map[string]*types.User

func (f fakeUsers) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	u, ok := f[email]
	if !ok {
		return nil, apperr.NotFound("user", email)
	}
	return u, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) NotifyApplicationStatusUpdate(_ context.Context, _ int64, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeNotifier) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

type recordingLogger struct {
	mu      sync.Mutex
	actions []string
	errors  []string
	infos   []string
}

func (l *recordingLogger) LogAction(actor, action, details string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = append(l.actions, action+" "+details)
}

func (l *recordingLogger) LogError(message string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf("%s: %v", message, err))
}

func (l *recordingLogger) Info(message string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, message)
}

func (l *recordingLogger) hasInfo(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.infos {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

const bob = "bob@x.com"

// day is the reference date; at builds times on it.
var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type testScheduler struct {
	*Scheduler
	notifier *fakeNotifier
	log      *recordingLogger
}

func newTestScheduler(now time.Time) *testScheduler {
	apps := fakeApplications{
		1: {ID: 1, StudentID: 11, JobID: 5, Student: &types.Student{ID: 11, Email: "ann@student.io"}},
		2: {ID: 2, StudentID: 12, JobID: 5, Student: &types.Student{ID: 12, Email: "ben@student.io"}},
		3: {ID: 3, StudentID: 13, JobID: 5},
	}
	users := fakeUsers{
		bob:         {ID: 1, Name: "Bob", Email: bob},
		"eve@x.com": {ID: 2, Name: "Eve", Email: "eve@x.com"},
	}
	n := &fakeNotifier{}
	l := &recordingLogger{}
	s := NewScheduler(NewStore(), apps, users, n, l, WithClock(func() time.Time { return now }))
	return &testScheduler{Scheduler: s, notifier: n, log: l}
}

func booking(applicationID int64, email string, start, end time.Time) Booking {
	return Booking{
		ApplicationID:    applicationID,
		Type:             TypeTechnicalInterview,
		Start:            start,
		End:              end,
		InterviewerEmail: email,
	}
}
