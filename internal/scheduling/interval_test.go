package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Start: at(10, 0), End: at(10, 30)}

	tests := []struct {
		name string
		b    Interval
		want bool
	}{
		{"identical", Interval{at(10, 0), at(10, 30)}, true},
		{"partial overlap after", Interval{at(10, 15), at(10, 45)}, true},
		{"partial overlap before", Interval{at(9, 45), at(10, 15)}, true},
		{"contains", Interval{at(9, 0), at(11, 0)}, true},
		{"contained", Interval{at(10, 10), at(10, 20)}, true},
		{"touching after", Interval{at(10, 30), at(11, 0)}, false},
		{"touching before", Interval{at(9, 30), at(10, 0)}, false},
		{"disjoint", Interval{at(12, 0), at(13, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a), "overlap is symmetric")
		})
	}
}

func TestIntervalValid(t *testing.T) {
	assert.True(t, Interval{at(9, 0), at(9, 1)}.Valid())
	assert.False(t, Interval{at(9, 0), at(9, 0)}.Valid())
	assert.False(t, Interval{at(9, 1), at(9, 0)}.Valid())
}
