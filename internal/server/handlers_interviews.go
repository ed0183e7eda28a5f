package server

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/arshsnaz/zidio-job-platform/internal/scheduling"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
)

// defaultSlotMinutes is the slot length used when the query omits duration.
const defaultSlotMinutes = 60

// InterviewTypeInfo is one entry of the interview type catalogue.
type InterviewTypeInfo struct {
	Type        scheduling.Type `json:"type"`
	DisplayName string          `json:"display_name"`
}

// parseQueryInt parses a positive integer query parameter, returning
// defaultValue when it is missing. maxValue 0 means no cap.
func parseQueryInt(q url.Values, key string, defaultValue, maxValue int) (int, error) {
	valStr := q.Get(key)
	if valStr == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		return 0, &ErrValidation{Field: key, Message: "must be a positive integer"}
	}
	if maxValue > 0 && val > maxValue {
		return maxValue, nil
	}
	return val, nil
}

// parseQueryTime reads a required RFC 3339 timestamp from the query.
func parseQueryTime(q url.Values, key string) (time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return time.Time{}, &ErrValidation{Field: key, Message: "is required"}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &ErrValidation{Field: key, Message: "must be an RFC 3339 timestamp"}
	}
	return t, nil
}

// handleScheduleInterview books an interview
func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	var req types.ScheduleInterviewRequest
	if err := decodeBody(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	typ, ok := scheduling.ParseType(req.Type)
	if !ok {
		s.failure(w, r, &ErrValidation{Field: "type", Message: "unknown interview type " + req.Type})
		return
	}

	iv, err := s.scheduler.Schedule(r.Context(), scheduling.Booking{
		ApplicationID:    req.ApplicationID,
		Type:             typ,
		Start:            req.ScheduledTime,
		End:              req.EndTime,
		InterviewerEmail: req.InterviewerEmail,
		InterviewerName:  req.InterviewerName,
		Location:         req.Location,
		MeetingLink:      req.MeetingLink,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, iv)
}

// handleRescheduleInterview moves an interview to a new time window
func (s *Server) handleRescheduleInterview(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	var req types.RescheduleInterviewRequest
	if err := decodeBody(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	iv, err := s.scheduler.Reschedule(r.Context(), id, req.NewScheduledTime, req.NewEndTime, req.Reason)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, iv)
}

// handleCancelInterview cancels an interview
func (s *Server) handleCancelInterview(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if err := s.scheduler.Cancel(r.Context(), id, r.URL.Query().Get("reason")); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"id": id, "status": scheduling.StatusCancelled})
}

// handleCompleteInterview records the outcome of an interview
func (s *Server) handleCompleteInterview(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	var req types.CompleteInterviewRequest
	if err := decodeBody(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	iv, err := s.scheduler.Complete(r.Context(), id, req.Score, req.Feedback)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, iv)
}

// handleInterviewsForApplication lists an application's interviews
func (s *Server) handleInterviewsForApplication(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "application_id")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.scheduler.ForApplication(id))
}

// handleInterviewsForInterviewer lists an interviewer's interviews
func (s *Server) handleInterviewsForInterviewer(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.scheduler.ForInterviewer(r.PathValue("email")))
}

// handleUpcomingInterviews lists an interviewer's upcoming interviews
func (s *Server) handleUpcomingInterviews(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.scheduler.Upcoming(r.PathValue("email")))
}

// handleInterviewStatistics summarizes all interviews
func (s *Server) handleInterviewStatistics(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.scheduler.Statistics())
}

// handleAvailableSlots lists free windows on an interviewer's calendar
func (s *Server) handleAvailableSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email := q.Get("interviewer_email")
	if email == "" {
		s.failure(w, r, &ErrValidation{Field: "interviewer_email", Message: "is required"})
		return
	}
	start, err := parseQueryTime(q, "start")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	end, err := parseQueryTime(q, "end")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	duration, err := parseQueryInt(q, "duration", defaultSlotMinutes, 24*60)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	slots, err := s.scheduler.AvailableSlots(email, start, end, duration)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, slots)
}

// handleInterviewTypes lists the interview types
func (s *Server) handleInterviewTypes(w http.ResponseWriter, _ *http.Request) {
	out := make([]InterviewTypeInfo, 0, len(scheduling.AllTypes))
	for _, t := range scheduling.AllTypes {
		out = append(out, InterviewTypeInfo{Type: t, DisplayName: t.DisplayName()})
	}
	s.jsonResponse(w, http.StatusOK, out)
}
