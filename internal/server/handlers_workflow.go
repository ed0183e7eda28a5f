package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
	"github.com/arshsnaz/zidio-job-platform/internal/workflow"
)

// WorkflowStatusResponse describes where an application stands.
type WorkflowStatusResponse struct {
	ApplicationID    int64             `json:"application_id"`
	CurrentState     workflow.State    `json:"current_state"`
	DisplayName      string            `json:"display_name"`
	Description      string            `json:"description"`
	AvailableActions []workflow.Action `json:"available_actions"`
}

// parsePathID reads a positive integer path parameter.
func parsePathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ErrValidation{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}

// decodeBody decodes and validates a JSON request body.
func decodeBody(r *http.Request, dst interface{ Validate() error }) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return dst.Validate()
}

func parseAction(raw string) (workflow.Action, error) {
	action, ok := workflow.ParseAction(raw)
	if !ok {
		return "", &ErrValidation{Field: "action", Message: "unknown action " + raw}
	}
	return action, nil
}

func (s *Server) statusResponse(applicationID int64) (WorkflowStatusResponse, error) {
	state, ok := s.workflow.CurrentState(applicationID)
	if !ok {
		return WorkflowStatusResponse{}, apperr.NotFound("workflow", applicationID)
	}
	return WorkflowStatusResponse{
		ApplicationID:    applicationID,
		CurrentState:     state,
		DisplayName:      state.DisplayName(),
		Description:      state.Description(),
		AvailableActions: state.AvailableActions(),
	}, nil
}

// handleInitiateWorkflow starts the pipeline for an application
func (s *Server) handleInitiateWorkflow(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "application_id")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if err := s.workflow.Initiate(r.Context(), id); err != nil {
		s.failure(w, r, err)
		return
	}
	resp, err := s.statusResponse(id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleTransition applies one reviewer action
func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	var req types.TransitionRequest
	if err := decodeBody(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	action, err := parseAction(req.Action)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	if _, err := s.workflow.Transition(r.Context(), req.ApplicationID, action, actor(r), req.Comments); err != nil {
		s.failure(w, r, err)
		return
	}
	resp, err := s.statusResponse(req.ApplicationID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleBulkWorkflow applies one action to many applications
func (s *Server) handleBulkWorkflow(w http.ResponseWriter, r *http.Request) {
	var req types.BulkWorkflowRequest
	if err := decodeBody(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	action, err := parseAction(req.Action)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	result := s.workflow.BulkProcess(r.Context(), req.ApplicationIDs, action, actor(r), req.Comments)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleWorkflowStatus returns the current state of an application
func (s *Server) handleWorkflowStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "application_id")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	resp, err := s.statusResponse(id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleWorkflowHistory returns the transition log of an application
func (s *Server) handleWorkflowHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "application_id")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"application_id": id,
		"history":        s.workflow.History(id),
	})
}

// handleWorkflowStatistics counts applications per state
func (s *Server) handleWorkflowStatistics(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.workflow.Statistics())
}

// handleWorkflowStates lists the state catalogue
func (s *Server) handleWorkflowStates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, workflow.Catalogue())
}

// handleNextActions lists the actions offered for an application's current state
func (s *Server) handleNextActions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("application_id"), 10, 64)
	if err != nil || id <= 0 {
		s.failure(w, r, &ErrValidation{Field: "application_id", Message: "must be a positive integer"})
		return
	}
	resp, err := s.statusResponse(id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"application_id":    id,
		"current_state":     resp.CurrentState,
		"available_actions": resp.AvailableActions,
	})
}
