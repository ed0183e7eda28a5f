package workflow

import (
	"strings"

	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

// referenceSkills is the vocabulary matched between a student's skills and
// the job description during the automatic initial review.
var referenceSkills = []string{"java", "python", "javascript", "react", "spring", "sql", "html", "css"}

const (
	commentPassedReview = "Passed initial review"
	commentIncomplete   = "Incomplete profile or missing qualifications"
	commentNoStudent    = "No student profile found"
	systemActor         = "SYSTEM"
)

// reviewOutcome is the automatic decision taken right after initiation.
type reviewOutcome struct {
	target  State
	action  Action
	comment string
}

func initialReview(app *types.Application) reviewOutcome {
	if app.Student == nil {
		return reviewOutcome{target: StateOnHold, action: ActionPutOnHold, comment: commentNoStudent}
	}
	if hasMatchingSkill(app.Student.Skills, app.JobDescription) && isProfileComplete(app.Student) {
		return reviewOutcome{target: StateTechnicalScreening, action: ActionMoveToNextStage, comment: commentPassedReview}
	}
	return reviewOutcome{target: StateOnHold, action: ActionPutOnHold, comment: commentIncomplete}
}

// hasMatchingSkill reports whether at least one reference skill appears in
// both texts. Matching is a case-insensitive substring test.
func hasMatchingSkill(studentSkills, jobDescription string) bool {
	if studentSkills == "" || jobDescription == "" {
		return false
	}
	skills := strings.ToLower(studentSkills)
	description := strings.ToLower(jobDescription)
	for _, skill := range referenceSkills {
		if strings.Contains(description, skill) && strings.Contains(skills, skill) {
			return true
		}
	}
	return false
}

func isProfileComplete(s *types.Student) bool {
	return strings.TrimSpace(s.Skills) != "" &&
		strings.TrimSpace(s.Education) != "" &&
		s.Email != ""
}
