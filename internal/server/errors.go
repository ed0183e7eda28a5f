package server

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/arshsnaz/zidio-job-platform/internal/apperr"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	var ve *ErrValidation
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		return http.StatusBadRequest
	}
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindBusinessRule:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorKind is the machine readable error code sent with a failure.
func errorKind(err error, status int) string {
	if status == http.StatusBadRequest {
		return "validation_error"
	}
	return apperr.KindOf(err).String()
}

// validationMessage flattens validator field errors into one line.
func validationMessage(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err.Error()
	}
	parts := make([]string, 0, len(fields))
	for _, fe := range fields {
		parts = append(parts, fe.Field()+" failed "+fe.Tag())
	}
	return "invalid request: " + strings.Join(parts, ", ")
}

// failure writes err with the status HTTPStatus assigns to it. Internal
// errors are logged and their detail is not sent to the client.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	switch status {
	case http.StatusBadRequest:
		message = validationMessage(err)
	case http.StatusInternalServerError:
		s.log.Errorw("request failed", "request_id", requestID(r.Context()), "path", r.URL.Path, "error", err)
		message = "internal server error"
	}
	s.errorResponse(w, status, errorKind(err, status), message)
}
