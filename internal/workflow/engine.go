// Package workflow tracks each job application through the review pipeline.
//
// An application enters the pipeline through Engine.Initiate, which places it
// in INITIAL_REVIEW and immediately runs an automatic review. From there every
// move goes through Engine.MoveToState, which rejects transitions absent from
// the transition table and records each accepted one in an append-only log.
package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

// ApplicationStore resolves applications and receives the denormalized status.
type ApplicationStore interface {
	GetApplication(ctx context.Context, id int64) (*types.Application, error)
	SetApplicationStatus(ctx context.Context, id int64, status types.ApplicationStatus) error
}

// Notifier delivers applicant-facing messages.
type Notifier interface {
	NotifyApplicationStatusUpdate(ctx context.Context, applicationID int64, message string) error
}

// Logger is the audit sink.
type Logger interface {
	LogAction(actor, action, details string)
	LogError(message string, err error)
}

// Engine validates and records workflow transitions.
type Engine struct {
	store           *Store
	apps            ApplicationStore
	notifier        Notifier
	log             Logger
	now             func() time.Time
	bulkConcurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used to timestamp transitions.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithBulkConcurrency sets how many bulk items are processed at once.
// Values below 1 mean sequential processing.
func WithBulkConcurrency(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.bulkConcurrency = n
	}
}

// NewEngine creates an Engine over store.
func NewEngine(store *Store, apps ApplicationStore, notifier Notifier, log Logger, opts ...Option) *Engine {
	e := &Engine{
		store:           store,
		apps:            apps,
		notifier:        notifier,
		log:             log,
		now:             time.Now,
		bulkConcurrency: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initiate starts the workflow for an application and runs the automatic
// initial review, which moves it to TECHNICAL_SCREENING or ON_HOLD.
func (e *Engine) Initiate(ctx context.Context, applicationID int64) error {
	app, err := e.apps.GetApplication(ctx, applicationID)
	if err != nil {
		e.log.LogError(fmt.Sprintf("Failed to initiate workflow for application: %d", applicationID), err)
		return err
	}
	if app == nil {
		return apperr.NotFound("application", applicationID)
	}

	if _, created := e.store.create(applicationID, StateInitialReview); !created {
		return apperr.BusinessRule("workflow already initiated for application: %d", applicationID)
	}

	e.log.LogAction(systemActor, "WORKFLOW_INITIATED",
		fmt.Sprintf("Application workflow initiated for application ID: %d (Job: %d, Student: %d)",
			applicationID, app.JobID, app.StudentID))

	outcome := initialReview(app)
	if err := e.MoveToState(ctx, applicationID, outcome.target, outcome.action, systemActor, outcome.comment); err != nil {
		e.log.LogError(fmt.Sprintf("Failed to perform initial review for application: %d", applicationID), err)
	}
	return nil
}

// MoveToState moves an application to newState if the transition table
// allows it, records the transition, writes the mapped status back to the
// Application Store and notifies the applicant. Write-back and notification
// failures are logged, not returned.
func (e *Engine) MoveToState(ctx context.Context, applicationID int64, newState State, action Action, actor, comment string) error {
	rec := e.store.get(applicationID)
	if rec == nil {
		return apperr.BusinessRule("no workflow found for application: %d", applicationID)
	}

	rec.mu.Lock()
	from := rec.state
	if !IsValidTransition(from, newState) {
		rec.mu.Unlock()
		return apperr.BusinessRule("invalid workflow transition from %s to %s", from, newState)
	}
	rec.state = newState
	rec.history = append(rec.history, Transition{
		ApplicationID: applicationID,
		FromState:     from,
		ToState:       newState,
		Action:        action,
		PerformedBy:   actor,
		Comments:      comment,
		Timestamp:     e.now(),
	})
	// Written under the record lock so the stored status follows transition order.
	if err := e.apps.SetApplicationStatus(ctx, applicationID, newState.ApplicationStatus()); err != nil {
		e.log.LogError("Failed to update application status in store", err)
	}
	rec.mu.Unlock()

	e.log.LogAction(actor, "WORKFLOW_TRANSITION",
		fmt.Sprintf("Application %d moved from %s to %s", applicationID, from, newState))

	e.notifyApplicant(ctx, applicationID, newState)
	return nil
}

// Transition applies action to the application's current state.
func (e *Engine) Transition(ctx context.Context, applicationID int64, action Action, actor, comment string) (State, error) {
	current, ok := e.CurrentState(applicationID)
	if !ok {
		return "", apperr.BusinessRule("no workflow found for application: %d", applicationID)
	}
	next, ok := DetermineNextState(current, action)
	if !ok {
		return "", apperr.BusinessRule("action %s is not available in state %s", action, current)
	}
	if err := e.MoveToState(ctx, applicationID, next, action, actor, comment); err != nil {
		return "", err
	}
	return next, nil
}

// CurrentState returns the application's current state; ok is false when no
// workflow exists.
func (e *Engine) CurrentState(applicationID int64) (State, bool) {
	rec := e.store.get(applicationID)
	if rec == nil {
		return "", false
	}
	return rec.current(), true
}

// History returns every transition of the application in append order.
func (e *Engine) History(applicationID int64) []Transition {
	rec := e.store.get(applicationID)
	if rec == nil {
		return []Transition{}
	}
	return rec.transitions()
}

// Statistics counts applications per current state. Every state is present.
func (e *Engine) Statistics() map[State]int {
	stats := make(map[State]int, len(AllStates))
	for _, s := range AllStates {
		stats[s] = 0
	}
	for _, rec := range e.store.snapshot() {
		stats[rec.current()]++
	}
	return stats
}

// BulkItemFailure describes one id that could not be processed.
type BulkItemFailure struct {
	ApplicationID int64  `json:"application_id"`
	Reason        string `json:"reason"`
}

// BulkResult summarizes a bulk run.
type BulkResult struct {
	BatchID   string            `json:"batch_id"`
	Succeeded []int64           `json:"succeeded"`
	Failed    []BulkItemFailure `json:"failed"`
}

// BulkProcess applies action to every id independently. A failing id is
// logged and recorded in the result; it never stops the remaining ids.
func (e *Engine) BulkProcess(ctx context.Context, applicationIDs []int64, action Action, actor, comment string) BulkResult {
	result := BulkResult{
		BatchID:   uuid.NewString(),
		Succeeded: []int64{},
		Failed:    []BulkItemFailure{},
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(e.bulkConcurrency)

	for _, id := range applicationIDs {
		g.Go(func() error {
			err := e.processBulkItem(ctx, id, action, actor, comment)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				e.log.LogError(fmt.Sprintf("Failed to process application in bulk: %d (batch %s)", id, result.BatchID), err)
				result.Failed = append(result.Failed, BulkItemFailure{ApplicationID: id, Reason: err.Error()})
				return nil
			}
			result.Succeeded = append(result.Succeeded, id)
			return nil
		})
	}
	_ = g.Wait()

	e.log.LogAction(actor, "BULK_WORKFLOW_PROCESS",
		fmt.Sprintf("Batch %s processed %d applications with action %s: %d succeeded, %d failed",
			result.BatchID, len(applicationIDs), action, len(result.Succeeded), len(result.Failed)))

	return result
}

func (e *Engine) processBulkItem(ctx context.Context, applicationID int64, action Action, actor, comment string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := e.Transition(ctx, applicationID, action, actor, comment)
	return err
}

func (e *Engine) notifyApplicant(ctx context.Context, applicationID int64, state State) {
	app, err := e.apps.GetApplication(ctx, applicationID)
	if err != nil {
		e.log.LogError("Failed to send workflow notifications", err)
		return
	}
	if !app.HasApplicant() {
		return
	}
	if err := e.notifier.NotifyApplicationStatusUpdate(ctx, applicationID, state.ApplicantMessage()); err != nil {
		e.log.LogError("Failed to send workflow notifications", err)
	}
}
