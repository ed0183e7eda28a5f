package scheduling

import (
	"time"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
)

// SlotStep is the spacing between candidate slot starts.
const SlotStep = 30 * time.Minute

// AvailableSlots lists free windows of durationMinutes on the interviewer's
// calendar. Candidates start at rangeStart and every SlotStep after it while
// the start is before rangeEnd, so the last slot may end after rangeEnd.
// Each slot is returned as a placeholder interview with id 0 and
// application id 0.
func (s *Scheduler) AvailableSlots(email string, rangeStart, rangeEnd time.Time, durationMinutes int) ([]*Interview, error) {
	if durationMinutes <= 0 {
		return nil, apperr.BusinessRule("slot duration must be positive, got %d minutes", durationMinutes)
	}
	duration := time.Duration(durationMinutes) * time.Minute

	var busy []Interval
	if sc := s.store.lookupSchedule(email); sc != nil {
		busy = sc.busy()
	}

	slots := []*Interview{}
	for start := rangeStart; start.Before(rangeEnd); start = start.Add(SlotStep) {
		candidate := Interval{Start: start, End: start.Add(duration)}
		if overlapsAny(candidate, busy) {
			continue
		}
		slots = append(slots, &Interview{
			Type:             TypeTechnicalInterview,
			ScheduledTime:    candidate.Start,
			EndTime:          candidate.End,
			InterviewerEmail: email,
			Status:           StatusScheduled,
		})
	}
	return slots, nil
}

func overlapsAny(slot Interval, busy []Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
