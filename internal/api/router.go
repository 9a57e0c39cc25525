package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds HTTP-level settings.
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration // default 30s
}

// NewRouter mounts every route on a chi router with the standard middleware
// stack.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location", "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/lessons", func(r chi.Router) {
			r.Get("/", h.handleListLessons)
			r.Get("/categories", h.handleCategories)
			r.Get("/featured", h.handleFeatured)
			r.Get("/{lessonID}", h.handleGetLesson)
		})

		r.Route("/quiz/sessions", func(r chi.Router) {
			r.Post("/", h.handleCreateSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", h.handleGetSession)
				r.Post("/start", h.handleAction(h.quizzes.Start))
				r.Post("/next", h.handleAction(h.quizzes.Next))
				r.Post("/previous", h.handleAction(h.quizzes.Previous))
				r.Post("/submit", h.handleAction(h.quizzes.Submit))
				r.Post("/restart", h.handleAction(h.quizzes.Restart))
				r.Put("/answers", h.handleSelectAnswer)
				r.Get("/results.xlsx", h.handleExportResults)
			})
		})

		r.Post("/contact", h.handleContact)
	})

	return r
}
