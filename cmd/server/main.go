package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/p-n-ai/knowledge-hub/internal/api"
	"github.com/p-n-ai/knowledge-hub/internal/contact"
	"github.com/p-n-ai/knowledge-hub/internal/content"
	"github.com/p-n-ai/knowledge-hub/internal/platform/cache"
	"github.com/p-n-ai/knowledge-hub/internal/platform/config"
	"github.com/p-n-ai/knowledge-hub/internal/platform/database"
	"github.com/p-n-ai/knowledge-hub/internal/quiz"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg.Log))

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app, err := newApp(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// app is the wired HTTP handler plus the connections it owns.
type app struct {
	Handler http.Handler
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp loads the dataset and connects the optional backends chosen by cfg.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	dataset, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	var (
		checkers []api.Checker
		events   quiz.EventLogger = quiz.NopEventLogger{}
		outbox   contact.Outbox   = contact.NewMemoryOutbox()
		sessions quiz.SessionStore
	)

	if cfg.Database.Enabled {
		db, err := database.New(ctx, database.Options{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if err := db.Migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
		events = quiz.NewPostgresEventLogger(db.Pool)
		outbox = contact.NewPostgresOutbox(db.Pool)
		checkers = append(checkers, db)
	}

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		a.closers = append(a.closers, func() { c.Close() })

		sessions, err = quiz.NewRedisSessionStore(c.Client, cfg.Session.TTL)
		if err != nil {
			a.Close()
			return nil, err
		}
		checkers = append(checkers, c)
	default:
		sessions = quiz.NewMemorySessionStore()
	}

	quizzes := quiz.NewService(quiz.ServiceConfig{
		Quiz:    dataset.Quiz,
		Lessons: dataset.Lessons,
		Store:   sessions,
		Events:  events,
	})
	contacts := contact.NewService(outbox)
	logOutboxBacklog(ctx, contacts)

	h := api.NewHandler(dataset.Lessons, quizzes, contacts, checkers...)
	a.Handler = api.NewRouter(h, api.RouterConfig{AllowedOrigins: cfg.CORS.AllowedOrigins})
	return a, nil
}

// logOutboxBacklog reports contact messages still waiting for delivery. A
// failure here is logged and does not stop startup.
func logOutboxBacklog(ctx context.Context, contacts *contact.Service) {
	pending, err := contacts.Pending(ctx, 0)
	if err != nil {
		slog.Warn("failed to read contact outbox", "error", err)
		return
	}
	if len(pending) > 0 {
		slog.Info("contact outbox backlog", "pending", len(pending), "oldest", pending[0].CreatedAt)
	}
}

// newLogger builds the process logger from the log settings.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
