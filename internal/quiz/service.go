package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/p-n-ai/knowledge-hub/internal/content"
)

// ServiceConfig holds dependencies for the quiz service.
type ServiceConfig struct {
	Quiz    content.Quiz
	Lessons LessonFinder
	Store   SessionStore // defaults to an in-memory store
	Events  EventLogger  // defaults to NopEventLogger
}

// Service runs quiz sessions by ID on top of a SessionStore. Each action
// loads the session, applies the transition and saves it back when it
// changed anything.
type Service struct {
	quiz    content.Quiz
	lessons LessonFinder
	store   SessionStore
	events  EventLogger

	// serializes load-apply-save cycles per session within this process
	locks sessionLocks
}

// NewService creates a quiz service.
func NewService(cfg ServiceConfig) *Service {
	store := cfg.Store
	if store == nil {
		store = NewMemorySessionStore()
	}
	events := cfg.Events
	if events == nil {
		events = NopEventLogger{}
	}
	return &Service{
		quiz:    cfg.Quiz,
		lessons: cfg.Lessons,
		store:   store,
		events:  events,
	}
}

// Quiz returns the quiz every session runs.
func (s *Service) Quiz() content.Quiz { return s.quiz }

// Create starts a new session in Setup. lessonID and category record where
// the quiz was launched from; both are optional.
func (s *Service) Create(ctx context.Context, lessonID *int, category string) (string, Snapshot, error) {
	lesson := ResolveLessonContext(s.lessons, lessonID, category)
	sess := NewSession(s.quiz, lesson)

	id, err := s.store.CreateSession(ctx, sess.State())
	if err != nil {
		return "", Snapshot{}, fmt.Errorf("create session: %w", err)
	}

	data := map[string]any{"questions": len(s.quiz.Questions)}
	if lesson != nil {
		data["lesson_id"] = lesson.LessonID
		data["category"] = lesson.Category
	}
	s.logEvent(ctx, id, EventSessionCreated, data)

	slog.Info("quiz session created", "session_id", id, "standalone", lesson == nil)
	return id, sess.Snapshot(), nil
}

// Get returns the current snapshot of a session.
func (s *Service) Get(ctx context.Context, id string) (Snapshot, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Session returns the restored session for read-only inspection.
func (s *Service) Session(ctx context.Context, id string) (*Session, error) {
	return s.load(ctx, id)
}

func (s *Service) Start(ctx context.Context, id string) (Snapshot, bool, error) {
	return s.apply(ctx, id, func(sess *Session) (bool, error) {
		return sess.Start(), nil
	})
}

func (s *Service) SelectAnswer(ctx context.Context, id string, questionID, option int) (Snapshot, bool, error) {
	return s.apply(ctx, id, func(sess *Session) (bool, error) {
		prev, had := sess.answers[questionID]
		if err := sess.SelectAnswer(questionID, option); err != nil {
			return false, err
		}
		return !had || prev != option, nil
	})
}

func (s *Service) Next(ctx context.Context, id string) (Snapshot, bool, error) {
	return s.apply(ctx, id, func(sess *Session) (bool, error) {
		return sess.Next(), nil
	})
}

func (s *Service) Previous(ctx context.Context, id string) (Snapshot, bool, error) {
	return s.apply(ctx, id, func(sess *Session) (bool, error) {
		return sess.Previous(), nil
	})
}

// Submit completes the session. Submitting a completed session returns the
// same result and reports no change.
func (s *Service) Submit(ctx context.Context, id string) (Snapshot, bool, error) {
	return s.apply(ctx, id, func(sess *Session) (bool, error) {
		wasActive := sess.Phase() == PhaseActive
		if _, err := sess.Submit(); err != nil {
			return false, err
		}
		return wasActive, nil
	})
}

func (s *Service) Restart(ctx context.Context, id string) (Snapshot, bool, error) {
	return s.apply(ctx, id, func(sess *Session) (bool, error) {
		return sess.Restart(), nil
	})
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	defer s.locks.lock(id)()
	return s.store.DeleteSession(ctx, id)
}

func (s *Service) load(ctx context.Context, id string) (*Session, error) {
	st, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	sess, err := RestoreSession(s.quiz, st)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return sess, nil
}

func (s *Service) apply(ctx context.Context, id string, fn func(*Session) (bool, error)) (Snapshot, bool, error) {
	defer s.locks.lock(id)()

	sess, err := s.load(ctx, id)
	if err != nil {
		return Snapshot{}, false, err
	}

	before := sess.Phase()
	changed, err := fn(sess)
	if err != nil {
		return sess.Snapshot(), false, err
	}
	if !changed {
		return sess.Snapshot(), false, nil
	}

	if err := s.store.SaveSession(ctx, id, sess.State()); err != nil {
		return Snapshot{}, false, fmt.Errorf("save session %s: %w", id, err)
	}
	s.logTransition(ctx, id, before, sess)
	return sess.Snapshot(), true, nil
}

func (s *Service) logTransition(ctx context.Context, id string, before Phase, sess *Session) {
	after := sess.Phase()
	if before == after {
		return
	}

	switch {
	case before == PhaseSetup && after == PhaseActive:
		s.logEvent(ctx, id, EventQuizStarted, nil)
	case before == PhaseCompleted && after == PhaseSetup:
		s.logEvent(ctx, id, EventQuizRestarted, nil)
	}

	if after == PhaseCompleted {
		r, _ := sess.Result()
		data := map[string]any{
			"correct":    r.Correct,
			"total":      r.Total,
			"percentage": r.Percentage,
			"tier":       string(r.Tier),
		}
		if l := sess.Lesson(); l != nil {
			data["lesson_id"] = l.LessonID
		}
		s.logEvent(ctx, id, EventQuizCompleted, data)
		slog.Info("quiz completed",
			"session_id", id,
			"percentage", r.Percentage,
			"tier", r.Tier,
		)
	}
}

func (s *Service) logEvent(ctx context.Context, id, eventType string, data map[string]any) {
	if err := s.events.LogEvent(ctx, Event{SessionID: id, EventType: eventType, Data: data}); err != nil {
		slog.Warn("failed to log quiz event", "type", eventType, "session_id", id, "error", err)
	}
}
