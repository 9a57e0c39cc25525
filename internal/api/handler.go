// Package api exposes lessons, quiz sessions and the contact form over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/p-n-ai/knowledge-hub/internal/contact"
	"github.com/p-n-ai/knowledge-hub/internal/content"
	"github.com/p-n-ai/knowledge-hub/internal/quiz"
)

const maxBodyBytes = 64 << 10

// Handler carries the dependencies shared by all routes.
type Handler struct {
	lessons  *content.Index
	quizzes  *quiz.Service
	contacts *contact.Service
	checkers []Checker
}

// NewHandler creates a Handler. checkers feed the readiness endpoint.
func NewHandler(lessons *content.Index, quizzes *quiz.Service, contacts *contact.Service, checkers ...Checker) *Handler {
	return &Handler{
		lessons:  lessons,
		quizzes:  quizzes,
		contacts: contacts,
		checkers: checkers,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, quiz.ErrSessionNotFound):
		Error(w, http.StatusNotFound, "quiz session not found")
	case errors.Is(err, quiz.ErrInvalidInput):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, quiz.ErrWrongPhase):
		Error(w, http.StatusConflict, err.Error())
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched
// when allowEmpty is set.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode request body: %v: %w", err, quiz.ErrInvalidInput)
	}
	return nil
}
