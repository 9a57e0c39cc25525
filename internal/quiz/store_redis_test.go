package quiz_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/p-n-ai/knowledge-hub/internal/platform/cache/cachetest"
	"github.com/p-n-ai/knowledge-hub/internal/quiz"
)

func newRedisStore(t *testing.T) (*quiz.RedisSessionStore, *redis.Client) {
	t.Helper()
	c := cachetest.New(t)
	store, err := quiz.NewRedisSessionStore(c.Client, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return store, c.Client
}

func TestRedisSessionStore_Lifecycle(t *testing.T) {
	store, client := newRedisStore(t)
	ctx := t.Context()

	id, err := store.CreateSession(ctx, quiz.State{Phase: quiz.PhaseSetup})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if len(id) != 32 {
		t.Errorf("id = %q, want 32 hex chars", id)
	}

	got, err := store.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.Phase != quiz.PhaseSetup {
		t.Errorf("Phase = %q, want %q", got.Phase, quiz.PhaseSetup)
	}
	if got.Answers == nil {
		t.Error("Answers should be an empty map, got nil")
	}

	st := quiz.State{Phase: quiz.PhaseActive, Index: 1, Answers: map[int]int{1: 2}}
	if err := store.SaveSession(ctx, id, st); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	got, err = store.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if !reflect.DeepEqual(got, st) {
		t.Errorf("GetSession() = %+v, want %+v", got, st)
	}

	ttl, err := client.TTL(ctx, "quiz:session:"+id).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want within (0, 1m]", ttl)
	}

	if err := store.DeleteSession(ctx, id); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := store.GetSession(ctx, id); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Errorf("GetSession() after delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisSessionStore_UnknownID(t *testing.T) {
	store, client := newRedisStore(t)
	ctx := t.Context()

	if _, err := store.GetSession(ctx, "missing"); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Errorf("GetSession() error = %v, want ErrSessionNotFound", err)
	}
	if err := store.SaveSession(ctx, "missing", quiz.State{Phase: quiz.PhaseSetup}); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Errorf("SaveSession() error = %v, want ErrSessionNotFound", err)
	}
	if err := store.DeleteSession(ctx, "missing"); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Errorf("DeleteSession() error = %v, want ErrSessionNotFound", err)
	}

	// Saving an unknown id must not create it.
	n, err := client.Exists(ctx, "quiz:session:missing").Result()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Exists() = %d after failed save, want 0", n)
	}
}

func TestRedisSessionStore_CompletedSessionSurvivesReload(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := t.Context()
	q := fourQuestionQuiz()

	s := quiz.NewSession(q, &quiz.LessonContext{LessonID: 2, LessonTitle: "Loops", Category: "Basics"})
	s.Start()
	answerAndNext(t, s, 1, 1)
	answerAndNext(t, s, 2, 0)
	answerAndNext(t, s, 3, 0)
	if err := s.SelectAnswer(4, 1); err != nil {
		t.Fatal(err)
	}
	want, err := s.Submit()
	if err != nil {
		t.Fatal(err)
	}

	id, err := store.CreateSession(ctx, s.State())
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	st, err := store.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}

	restored, err := quiz.RestoreSession(q, st)
	if err != nil {
		t.Fatalf("RestoreSession() error = %v", err)
	}
	if restored.Phase() != quiz.PhaseCompleted {
		t.Fatalf("Phase = %q, want %q", restored.Phase(), quiz.PhaseCompleted)
	}
	got, err := restored.Submit()
	if err != nil {
		t.Fatalf("Submit() on restored session error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("result after reload = %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(restored.Lesson(), s.Lesson()) {
		t.Errorf("lesson after reload = %+v, want %+v", restored.Lesson(), s.Lesson())
	}
}
