package scheduling

import (
	"strings"
	"sync"
	"sync/atomic"
)

// schedule is one interviewer's calendar. mu guards the slice and every
// field of the interviews in it.
type schedule struct {
	mu         sync.Mutex
	interviews []*Interview
}

// conflicts reports whether slot overlaps a blocking interview other than
// excludeID. The caller must hold sc.mu.
func (sc *schedule) conflicts(slot Interval, excludeID int64) bool {
	for _, iv := range sc.interviews {
		if iv.ID == excludeID || !iv.blocks() {
			continue
		}
		if slot.Overlaps(iv.Interval()) {
			return true
		}
	}
	return false
}

// busy returns the intervals of blocking interviews.
func (sc *schedule) busy() []Interval {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	out := make([]Interval, 0, len(sc.interviews))
	for _, iv := range sc.interviews {
		if iv.blocks() {
			out = append(out, iv.Interval())
		}
	}
	return out
}

func (sc *schedule) copies() []*Interview {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	out := make([]*Interview, 0, len(sc.interviews))
	for _, iv := range sc.interviews {
		out = append(out, iv.clone())
	}
	return out
}

// Store owns the in-memory interview records, indexed by interviewer,
// application and id. State lives for the lifetime of the process only.
//
// Lock order: a schedule's mu may be held while taking Store.mu, never the
// reverse.
type Store struct {
	mu            sync.RWMutex
	schedules     map[string]*schedule
	byApplication map[int64][]*Interview
	byID          map[int64]*Interview
	seq           atomic.Int64
}

// NewStore creates an empty interview store.
func NewStore() *Store {
	return &Store{
		schedules:     make(map[string]*schedule),
		byApplication: make(map[int64][]*Interview),
		byID:          make(map[int64]*Interview),
	}
}

func interviewerKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// scheduleFor returns the interviewer's calendar, creating it if needed.
func (s *Store) scheduleFor(email string) *schedule {
	key := interviewerKey(email)

	s.mu.RLock()
	sc, ok := s.schedules[key]
	s.mu.RUnlock()
	if ok {
		return sc
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Double-check after acquiring write lock
	if sc, ok := s.schedules[key]; ok {
		return sc
	}
	sc = &schedule{}
	s.schedules[key] = sc
	return sc
}

func (s *Store) lookupSchedule(email string) *schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedules[interviewerKey(email)]
}

// insert assigns the next id to iv and adds it to every index unless it
// conflicts with the interviewer's calendar. The conflict check and the
// insert happen under the same lock.
func (s *Store) insert(iv *Interview) (*Interview, bool) {
	sc := s.scheduleFor(iv.InterviewerEmail)
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.conflicts(iv.Interval(), 0) {
		return nil, false
	}
	iv.ID = s.seq.Add(1)
	sc.interviews = append(sc.interviews, iv)

	s.mu.Lock()
	s.byID[iv.ID] = iv
	s.byApplication[iv.ApplicationID] = append(s.byApplication[iv.ApplicationID], iv)
	s.mu.Unlock()

	return iv.clone(), true
}

// mutate runs fn on the stored interview under its interviewer's lock and
// returns a copy of the result. ok is false when id is unknown. A non-nil
// error from fn is returned as is; fn must leave iv untouched in that case.
func (s *Store) mutate(id int64, fn func(iv *Interview, sc *schedule) error) (out *Interview, ok bool, err error) {
	s.mu.RLock()
	iv, ok := s.byID[id]
	var sc *schedule
	if ok {
		sc = s.schedules[interviewerKey(iv.InterviewerEmail)]
	}
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if err := fn(iv, sc); err != nil {
		return nil, true, err
	}
	return iv.clone(), true, nil
}

// forInterviewer returns copies of the interviewer's interviews in booking order.
func (s *Store) forInterviewer(email string) []*Interview {
	sc := s.lookupSchedule(email)
	if sc == nil {
		return []*Interview{}
	}
	return sc.copies()
}

// forApplication returns copies of the application's interviews in booking order.
func (s *Store) forApplication(applicationID int64) []*Interview {
	s.mu.RLock()
	refs := append([]*Interview(nil), s.byApplication[applicationID]...)
	scs := make([]*schedule, len(refs))
	for i, iv := range refs {
		scs[i] = s.schedules[interviewerKey(iv.InterviewerEmail)]
	}
	s.mu.RUnlock()

	out := make([]*Interview, 0, len(refs))
	for i, iv := range refs {
		scs[i].mu.Lock()
		out = append(out, iv.clone())
		scs[i].mu.Unlock()
	}
	return out
}

// all returns copies of every interview, grouped by interviewer, together
// with the number of interviewers holding at least one interview.
func (s *Store) all() (interviews []*Interview, interviewers int) {
	s.mu.RLock()
	scs := make([]*schedule, 0, len(s.schedules))
	for _, sc := range s.schedules {
		scs = append(scs, sc)
	}
	s.mu.RUnlock()

	for _, sc := range scs {
		copies := sc.copies()
		if len(copies) > 0 {
			interviewers++
		}
		interviews = append(interviews, copies...)
	}
	return interviews, interviewers
}
