package scheduling

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether Start is strictly before End.
func (a Interval) Valid() bool {
	return a.Start.Before(a.End)
}

// Overlaps reports whether a and b share any instant. Intervals that only
// touch, one ending exactly when the other starts, do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	endsBefore := !a.End.After(b.Start)   // a.End <= b.Start
	startsAfter := !a.Start.Before(b.End) // a.Start >= b.End
	return !(endsBefore || startsAfter)
}
