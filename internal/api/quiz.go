package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/p-n-ai/knowledge-hub/internal/quiz"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// questionView is a question as shown to the learner, without the answer key.
type questionView struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Selected *int     `json:"selected,omitempty"`
}

type sessionView struct {
	ID string `json:"id"`
	quiz.Snapshot
	CurrentQuestion *questionView `json:"current_question,omitempty"`
}

type actionResponse struct {
	Changed bool        `json:"changed"`
	Session sessionView `json:"session"`
}

type createSessionRequest struct {
	LessonID *int   `json:"lesson_id"`
	Category string `json:"category"`
}

type answerRequest struct {
	QuestionID *int `json:"question_id"`
	Option     *int `json:"option"`
}

func (h *Handler) view(id string, snap quiz.Snapshot) sessionView {
	v := sessionView{ID: id, Snapshot: snap}
	if snap.Phase != quiz.PhaseActive {
		return v
	}
	questions := h.quizzes.Quiz().Questions
	if snap.CurrentQuestionIndex < 0 || snap.CurrentQuestionIndex >= len(questions) {
		return v
	}
	q := questions[snap.CurrentQuestionIndex]
	v.CurrentQuestion = &questionView{
		ID:       q.ID,
		Question: q.Question,
		Options:  append([]string(nil), q.Options...),
	}
	if sel, ok := snap.Answers[q.ID]; ok {
		v.CurrentQuestion.Selected = &sel
	}
	return v
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	id, snap, err := h.quizzes.Create(r.Context(), req.LessonID, req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/quiz/sessions/"+id)
	JSON(w, http.StatusCreated, h.view(id, snap))
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	snap, err := h.quizzes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, h.view(id, snap))
}

type sessionAction func(ctx context.Context, id string) (quiz.Snapshot, bool, error)

// handleAction adapts a parameterless session transition to a handler.
func (h *Handler) handleAction(action sessionAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		snap, changed, err := action(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		JSON(w, http.StatusOK, actionResponse{Changed: changed, Session: h.view(id, snap)})
	}
}

func (h *Handler) handleSelectAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var req answerRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if req.QuestionID == nil || req.Option == nil {
		Error(w, http.StatusBadRequest, "question_id and option are required")
		return
	}

	snap, changed, err := h.quizzes.SelectAnswer(r.Context(), id, *req.QuestionID, *req.Option)
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, actionResponse{Changed: changed, Session: h.view(id, snap)})
}

func (h *Handler) handleExportResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	snap, err := h.quizzes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := quiz.WriteResultsWorkbook(&buf, h.quizzes.Quiz(), snap); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="quiz-results.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
