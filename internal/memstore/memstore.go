// Package memstore is an in-process Application Store, User Directory and
// notification outbox. The service uses it when no database is configured.
package memstore

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

// Notification is a message queued for an applicant.
type Notification struct {
	ApplicationID int64     `json:"application_id"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}

// Seed is the file format accepted by Load.
type Seed struct {
	Applications []types.Application `json:"applications"`
	Users        []types.User        `json:"users"`
}

// Store holds applications, users and queued notifications in memory.
type Store struct {
	mu            sync.RWMutex
	applications  map[int64]*types.Application
	users         map[string]*types.User // lowercased email -> user
	notifications []Notification
	now           func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		applications: make(map[int64]*types.Application),
		users:        make(map[string]*types.User),
		now:          time.Now,
	}
}

// Load decodes a JSON seed from r and adds its records.
func (s *Store) Load(r io.Reader) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return errors.Wrap(err, "failed to decode seed data")
	}
	for _, app := range seed.Applications {
		if err := s.AddApplication(app); err != nil {
			return err
		}
	}
	for _, u := range seed.Users {
		if err := s.AddUser(u); err != nil {
			return err
		}
	}
	return nil
}

// AddApplication adds or replaces an application.
func (s *Store) AddApplication(app types.Application) error {
	if app.ID <= 0 {
		return errors.Newf("application id must be positive, got %d", app.ID)
	}
	if app.Status == "" {
		app.Status = types.StatusApplied
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[app.ID] = cloneApplication(&app)
	return nil
}

// AddUser adds or replaces a user, keyed by email.
func (s *Store) AddUser(u types.User) error {
	key := emailKey(u.Email)
	if key == "" {
		return errors.New("user email is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[key] = &u
	return nil
}

// GetApplication returns a copy of the application.
func (s *Store) GetApplication(_ context.Context, id int64) (*types.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.applications[id]
	if !ok {
		return nil, apperr.NotFound("application", id)
	}
	return cloneApplication(app), nil
}

// SetApplicationStatus overwrites the denormalized status of an application.
func (s *Store) SetApplicationStatus(_ context.Context, id int64, status types.ApplicationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.applications[id]
	if !ok {
		return apperr.NotFound("application", id)
	}
	app.Status = status
	return nil
}

// GetUserByEmail looks up a user, ignoring case.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[emailKey(email)]
	if !ok {
		return nil, apperr.NotFound("user", email)
	}
	out := *u
	return &out, nil
}

// NotifyApplicationStatusUpdate queues message for the applicant.
func (s *Store) NotifyApplicationStatusUpdate(_ context.Context, applicationID int64, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, Notification{
		ApplicationID: applicationID,
		Message:       message,
		CreatedAt:     s.now(),
	})
	return nil
}

// Notifications returns the messages queued for an application, oldest first.
func (s *Store) Notifications(applicationID int64) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Notification{}
	for _, n := range s.notifications {
		if n.ApplicationID == applicationID {
			out = append(out, n)
		}
	}
	return out
}

// ApplicationIDs lists the stored application ids in ascending order.
func (s *Store) ApplicationIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.applications))
	for id := range s.applications {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneApplication(app *types.Application) *types.Application {
	out := *app
	if app.Student != nil {
		st := *app.Student
		out.Student = &st
	}
	return &out
}
