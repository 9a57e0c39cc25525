package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/p-n-ai/knowledge-hub/internal/blocks"
	"github.com/p-n-ai/knowledge-hub/internal/content"
)

const featuredLimit = 3

type lessonSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Duration    string `json:"duration"`
	Featured    bool   `json:"featured"`
}

type lessonLink struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type lessonDetail struct {
	lessonSummary
	Blocks   []blocks.Block `json:"blocks"`
	Previous *lessonLink    `json:"previous,omitempty"`
	Next     *lessonLink    `json:"next,omitempty"`
}

func summarize(l content.Lesson) lessonSummary {
	return lessonSummary{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Level:       l.Level,
		Duration:    l.Duration,
		Featured:    l.Featured,
	}
}

func summarizeAll(ls []content.Lesson) []lessonSummary {
	out := make([]lessonSummary, 0, len(ls))
	for _, l := range ls {
		out = append(out, summarize(l))
	}
	return out
}

func link(l content.Lesson, ok bool) *lessonLink {
	if !ok {
		return nil
	}
	return &lessonLink{ID: l.ID, Title: l.Title}
}

func (h *Handler) handleListLessons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	found := h.lessons.Search(content.Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
	})
	JSON(w, http.StatusOK, map[string]any{
		"lessons": summarizeAll(found),
		"total":   len(found),
	})
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := append([]string{content.AllCategories}, h.lessons.Categories()...)
	JSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *Handler) handleFeatured(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"lessons": summarizeAll(h.lessons.Featured(featuredLimit)),
	})
}

func (h *Handler) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "lessonID"))
	if err != nil {
		Error(w, http.StatusBadRequest, "lesson id must be an integer")
		return
	}
	lesson, ok := h.lessons.Lookup(id)
	if !ok {
		Error(w, http.StatusNotFound, "lesson not found")
		return
	}

	parsed := blocks.Parse(lesson.Content)
	if parsed == nil {
		parsed = []blocks.Block{}
	}
	JSON(w, http.StatusOK, lessonDetail{
		lessonSummary: summarize(lesson),
		Blocks:        parsed,
		Previous:      link(h.lessons.Previous(id)),
		Next:          link(h.lessons.Next(id)),
	})
}
