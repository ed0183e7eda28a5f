package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

type fakeApplications struct {
	mu        sync.Mutex
	apps      map[int64]*types.Application
	statuses  map[int64][]types.ApplicationStatus
	statusErr error
}

func newFakeApplications(apps ...*types.Application) *fakeApplications {
	f := &fakeApplications{
		apps:     make(map[int64]*types.Application),
		statuses: make(map[int64][]types.ApplicationStatus),
	}
	for _, app := range apps {
		f.apps[app.ID] = app
	}
	return f
}

func (f *fakeApplications) GetApplication(_ context.Context, id int64) (*types.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, apperr.NotFound("application", id)
	}
	cp := *app
	return &cp, nil
}

func (f *fakeApplications) SetApplicationStatus(_ context.Context, id int64, status types.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statuses[id] = append(f.statuses[id], status)
	if app, ok := f.apps[id]; ok {
		app.Status = status
	}
	return nil
}

func (f *fakeApplications) statusHistory(id int64) []types.ApplicationStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.ApplicationStatus(nil), f.statuses[id]...)
}

type notification struct {
	applicationID int64
	message       string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
	err  error
}

func (f *fakeNotifier) NotifyApplicationStatusUpdate(_ context.Context, applicationID int64, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, notification{applicationID: applicationID, message: message})
	return nil
}

func (f *fakeNotifier) messages() []notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notification(nil), f.sent...)
}

type loggedAction struct {
	actor, action, details string
}

type recordingLogger struct {
	mu      sync.Mutex
	actions []loggedAction
	errors  []string
}

func (l *recordingLogger) LogAction(actor, action, details string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = append(l.actions, loggedAction{actor: actor, action: action, details: details})
}

func (l *recordingLogger) LogError(message string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, message+": "+err.Error())
}

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

var errStoreDown = errors.New("store unavailable")

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// qualifiedApplication passes the automatic initial review.
func qualifiedApplication(id int64) *types.Application {
	return &types.Application{
		ID:             id,
		StudentID:      100 + id,
		JobID:          7,
		Status:         types.StatusApplied,
		JobDescription: "Backend engineer working with Java and SQL",
		Student: &types.Student{
			ID:        100 + id,
			Name:      "Student",
			Email:     "student@example.com",
			Skills:    "Java, Spring Boot, PostgreSQL",
			Education: "BSc Computer Science",
		},
	}
}

// incompleteApplication fails the automatic initial review.
func incompleteApplication(id int64) *types.Application {
	app := qualifiedApplication(id)
	app.Student.Education = "  "
	return app
}

type testEngine struct {
	*Engine
	apps     *fakeApplications
	notifier *fakeNotifier
	log      *recordingLogger
}

func newTestEngine(apps ...*types.Application) *testEngine {
	fa := newFakeApplications(apps...)
	fn := &fakeNotifier{}
	fl := &recordingLogger{}
	e := NewEngine(NewStore(), fa, fn, fl, WithClock(func() time.Time { return fixedNow }))
	return &testEngine{Engine: e, apps: fa, notifier: fn, log: fl}
}
