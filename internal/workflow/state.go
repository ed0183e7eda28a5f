package workflow

import (
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

// State is a stage of the hiring pipeline.
type State string

const (
	StateInitialReview      State = "INITIAL_REVIEW"
	StateTechnicalScreening State = "TECHNICAL_SCREENING"
	StateHRInterview        State = "HR_INTERVIEW"
	StateTechnicalInterview State = "TECHNICAL_INTERVIEW"
	StateFinalReview        State = "FINAL_REVIEW"
	StateApproved           State = "APPROVED"
	StateRejected           State = "REJECTED"
	StateOnHold             State = "ON_HOLD"
)

// AllStates lists every state in pipeline order.
var AllStates = []State{
	StateInitialReview,
	StateTechnicalScreening,
	StateHRInterview,
	StateTechnicalInterview,
	StateFinalReview,
	StateApproved,
	StateRejected,
	StateOnHold,
}

// Action is a reviewer decision applied to an application.
type Action string

const (
	ActionApprove               Action = "APPROVE"
	ActionReject                Action = "REJECT"
	ActionMoveToNextStage       Action = "MOVE_TO_NEXT_STAGE"
	ActionPutOnHold             Action = "PUT_ON_HOLD"
	ActionRequestAdditionalInfo Action = "REQUEST_ADDITIONAL_INFO"
)

// AllActions lists every action.
var AllActions = []Action{
	ActionApprove,
	ActionReject,
	ActionMoveToNextStage,
	ActionPutOnHold,
	ActionRequestAdditionalInfo,
}

// allowedTransitions maps a state to the states it may move to.
// States absent from the map are terminal.
var allowedTransitions = map[State][]State{
	StateInitialReview:      {StateTechnicalScreening, StateRejected, StateOnHold},
	StateTechnicalScreening: {StateHRInterview, StateRejected, StateOnHold},
	StateHRInterview:        {StateTechnicalInterview, StateRejected, StateOnHold},
	StateTechnicalInterview: {StateFinalReview, StateRejected, StateOnHold},
	StateFinalReview:        {StateApproved, StateRejected},
	StateOnHold:             {StateTechnicalScreening, StateHRInterview, StateTechnicalInterview, StateFinalReview, StateRejected},
}

// nextStage is the designated successor used by MOVE_TO_NEXT_STAGE.
var nextStage = map[State]State{
	StateInitialReview:      StateTechnicalScreening,
	StateTechnicalScreening: StateHRInterview,
	StateHRInterview:        StateTechnicalInterview,
	StateTechnicalInterview: StateFinalReview,
	StateOnHold:             StateTechnicalScreening,
}

var statusByState = map[State]types.ApplicationStatus{
	StateApproved: types.StatusSelected,
	StateRejected: types.StatusRejected,
	StateOnHold:   types.StatusApplied,
}

var availableActions = map[State][]Action{
	StateInitialReview:      {ActionMoveToNextStage, ActionReject, ActionPutOnHold},
	StateTechnicalScreening: {ActionMoveToNextStage, ActionReject, ActionPutOnHold},
	StateHRInterview:        {ActionMoveToNextStage, ActionReject, ActionPutOnHold},
	StateTechnicalInterview: {ActionMoveToNextStage, ActionReject, ActionPutOnHold},
	StateFinalReview:        {ActionApprove, ActionReject},
	StateOnHold:             {ActionMoveToNextStage, ActionReject},
}

var displayNames = map[State]string{
	StateInitialReview:      "Initial Review",
	StateTechnicalScreening: "Technical Screening",
	StateHRInterview:        "HR Interview",
	StateTechnicalInterview: "Technical Interview",
	StateFinalReview:        "Final Review",
	StateApproved:           "Approved",
	StateRejected:           "Rejected",
	StateOnHold:             "On Hold",
}

var descriptions = map[State]string{
	StateInitialReview:      "Application is being reviewed for basic requirements",
	StateTechnicalScreening: "Technical qualifications are being evaluated",
	StateHRInterview:        "HR interview scheduled or in progress",
	StateTechnicalInterview: "Technical interview scheduled or in progress",
	StateFinalReview:        "Final decision being made",
	StateApproved:           "Application has been approved",
	StateRejected:           "Application has been rejected",
	StateOnHold:             "Application is on hold pending additional information",
}

var applicantMessages = map[State]string{
	StateTechnicalScreening: "Your application is being reviewed by our technical team",
	StateHRInterview:        "Congratulations! You've been selected for an HR interview",
	StateTechnicalInterview: "You've advanced to the technical interview stage",
	StateFinalReview:        "Your application is in final review",
	StateApproved:           "Congratulations! Your application has been approved",
	StateRejected:           "Thank you for your interest. Unfortunately, we cannot proceed with your application at this time",
	StateOnHold:             "Your application is currently on hold pending additional information",
}

// ParseState converts a string into a State.
func ParseState(s string) (State, bool) {
	st := State(s)
	_, ok := displayNames[st]
	return st, ok
}

// ParseAction converts a string into an Action.
func ParseAction(s string) (Action, bool) {
	for _, a := range AllActions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// IsTerminal reports whether no transition leaves s.
func (s State) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// DisplayName returns the human readable stage name.
func (s State) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

// Description explains what happens to an application in this stage.
func (s State) Description() string {
	if d, ok := descriptions[s]; ok {
		return d
	}
	return "Current application status"
}

// ApplicantMessage is the notification text sent when an application enters s.
func (s State) ApplicantMessage() string {
	if m, ok := applicantMessages[s]; ok {
		return m
	}
	return "Your application status has been updated"
}

// ApplicationStatus maps s to the status code written back to the Application Store.
func (s State) ApplicationStatus() types.ApplicationStatus {
	if status, ok := statusByState[s]; ok {
		return status
	}
	return types.StatusShortlisted
}

// AllowedTargets returns a copy of the states reachable from s.
func (s State) AllowedTargets() []State {
	return append([]State(nil), allowedTransitions[s]...)
}

// AvailableActions returns the reviewer actions offered in s.
func (s State) AvailableActions() []Action {
	return append([]Action(nil), availableActions[s]...)
}

// IsValidTransition reports whether the table allows from -> to.
func IsValidTransition(from, to State) bool {
	for _, target := range allowedTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// DetermineNextState resolves the target state for action applied in current.
// ok is false when the action has no target from current.
func DetermineNextState(current State, action Action) (next State, ok bool) {
	switch action {
	case ActionApprove:
		if current == StateFinalReview {
			return StateApproved, true
		}
		return "", false
	case ActionReject:
		return StateRejected, true
	case ActionPutOnHold:
		return StateOnHold, true
	case ActionMoveToNextStage:
		next, ok = nextStage[current]
		return next, ok
	default:
		return "", false
	}
}

// StateInfo is one entry of the state catalogue.
type StateInfo struct {
	State          State    `json:"state"`
	DisplayName    string   `json:"display_name"`
	Description    string   `json:"description"`
	Terminal       bool     `json:"terminal"`
	AllowedTargets []State  `json:"allowed_targets"`
	Actions        []Action `json:"actions"`
}

// Catalogue describes every state in pipeline order.
func Catalogue() []StateInfo {
	out := make([]StateInfo, 0, len(AllStates))
	for _, st := range AllStates {
		out = append(out, StateInfo{
			State:          st,
			DisplayName:    st.DisplayName(),
			Description:    st.Description(),
			Terminal:       st.IsTerminal(),
			AllowedTargets: st.AllowedTargets(),
			Actions:        st.AvailableActions(),
		})
	}
	return out
}
