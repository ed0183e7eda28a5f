package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

func TestHasMatchingSkill(t *testing.T) {
	tests := []struct {
		name        string
		skills      string
		description string
		want        bool
	}{
		{"shared keyword", "Python, Django", "We use python daily", true},
		{"case insensitive", "REACT", "React frontend", true},
		{"keyword only in skills", "Java", "Looking for a Go developer", false},
		{"keyword only in description", "Go", "Java backend", false},
		{"no vocabulary word", "Rust, Haskell", "Rust and Haskell shop", false},
		{"empty skills", "", "Java backend", false},
		{"empty description", "Java", "", false},
		// substring semantics: "javascript" contains "java"
		{"substring match", "javascript", "java", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasMatchingSkill(tt.skills, tt.description))
		})
	}
}

func TestIsProfileComplete(t *testing.T) {
	complete := &types.Student{Skills: "sql", Education: "BSc", Email: "a@b.c"}
	assert.True(t, isProfileComplete(complete))

	assert.False(t, isProfileComplete(&types.Student{Skills: " ", Education: "BSc", Email: "a@b.c"}))
	assert.False(t, isProfileComplete(&types.Student{Skills: "sql", Education: "", Email: "a@b.c"}))
	assert.False(t, isProfileComplete(&types.Student{Skills: "sql", Education: "BSc"}))
}

func TestInitialReview(t *testing.T) {
	outcome := initialReview(qualifiedApplication(1))
	assert.Equal(t, StateTechnicalScreening, outcome.target)
	assert.Equal(t, ActionMoveToNextStage, outcome.action)
	assert.Equal(t, commentPassedReview, outcome.comment)

	outcome = initialReview(incompleteApplication(2))
	assert.Equal(t, StateOnHold, outcome.target)
	assert.Equal(t, ActionPutOnHold, outcome.action)
	assert.Equal(t, commentIncomplete, outcome.comment)

	noSkillMatch := qualifiedApplication(3)
	noSkillMatch.JobDescription = "Embedded C firmware"
	assert.Equal(t, StateOnHold, initialReview(noSkillMatch).target)

	noStudent := qualifiedApplication(4)
	noStudent.Student = nil
	outcome = initialReview(noStudent)
	assert.Equal(t, StateOnHold, outcome.target)
	assert.Equal(t, commentNoStudent, outcome.comment)
}
