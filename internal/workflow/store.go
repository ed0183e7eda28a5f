package workflow

import (
	"sync"
	"time"
)

// Transition is an immutable record of one state change.
type Transition struct {
	ApplicationID int64     `json:"application_id"`
	FromState     State     `json:"from_state"`
	ToState       State     `json:"to_state"`
	Action        Action    `json:"action"`
	PerformedBy   string    `json:"performed_by"`
	Comments      string    `json:"comments,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// record holds the pipeline position of one application. mu guards state
// and history; every check-then-write on the record happens under it.
type record struct {
	mu      sync.Mutex
	state   State
	history []Transition
}

// Store owns the in-memory workflow records, one per application.
// State lives for the lifetime of the process only.
type Store struct {
	mu      sync.RWMutex
	records map[int64]*record
}

// NewStore creates an empty workflow store.
func NewStore() *Store {
	return &Store{records: make(map[int64]*record)}
}

// get returns the record for id, or nil.
func (s *Store) get(id int64) *record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

// create inserts a record for id in the given state. created is false when
// a record already exists; the existing record is returned untouched.
func (s *Store) create(id int64, initial State) (rec *record, created bool) {
	s.mu.RLock()
	existing, ok := s.records[id]
	s.mu.RUnlock()
	if ok {
		return existing, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Double-check after acquiring write lock
	if existing, ok := s.records[id]; ok {
		return existing, false
	}
	rec = &record{state: initial}
	s.records[id] = rec
	return rec, true
}

// snapshot returns the records currently held, in no particular order.
func (s *Store) snapshot() []*record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out
}

// Len returns the number of tracked applications.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (r *record) current() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *record) transitions() []Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Transition(nil), r.history...)
}
