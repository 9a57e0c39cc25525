package quiz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/p-n-ai/knowledge-hub/internal/content"
	"github.com/p-n-ai/knowledge-hub/internal/quiz"
)

func newTestService(t *testing.T) (*quiz.Service, *quiz.MemoryEventLogger) {
	t.Helper()
	events := quiz.NewMemoryEventLogger()
	svc := quiz.NewService(quiz.ServiceConfig{
		Quiz:    fourQuestionQuiz(),
		Lessons: fakeLessons{1: {ID: 1, Title: "Intro to Go", Category: "Basics"}},
		Events:  events,
	})
	return svc, events
}

func eventTypes(l *quiz.MemoryEventLogger) []string {
	var out []string
	for _, e := range l.Events() {
		out = append(out, e.EventType)
	}
	return out
}

func TestService_FullRun(t *testing.T) {
	ctx := context.Background()
	svc, events := newTestService(t)

	id, snap, err := svc.Create(ctx, intPtr(1), "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if snap.Phase != quiz.PhaseSetup || snap.Title != "Intro to Go Quiz" {
		t.Errorf("Create() snapshot = %+v", snap)
	}
	if snap.Lesson == nil || snap.Lesson.Category != "Basics" {
		t.Errorf("Lesson = %+v, want Basics category", snap.Lesson)
	}

	if _, changed, err := svc.Start(ctx, id); err != nil || !changed {
		t.Fatalf("Start() changed=%v err=%v", changed, err)
	}

	for _, a := range []struct{ qid, opt int }{{1, 1}, {2, 0}, {3, 0}, {4, 0}} {
		if _, _, err := svc.SelectAnswer(ctx, id, a.qid, a.opt); err != nil {
			t.Fatalf("SelectAnswer(%d) error = %v", a.qid, err)
		}
		if _, changed, err := svc.Next(ctx, id); err != nil || !changed {
			t.Fatalf("Next() after %d changed=%v err=%v", a.qid, changed, err)
		}
	}

	snap, err = svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap.Phase != quiz.PhaseCompleted || snap.Result == nil {
		t.Fatalf("Get() snapshot = %+v, want completed with result", snap)
	}
	if snap.Result.Percentage != 50 || snap.Result.Tier != quiz.TierGood {
		t.Errorf("Result = %+v", snap.Result)
	}

	got := eventTypes(events)
	want := []string{quiz.EventSessionCreated, quiz.EventQuizStarted, quiz.EventQuizCompleted}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestService_SubmitTwiceLogsOnce(t *testing.T) {
	ctx := context.Background()
	svc, events := newTestService(t)

	id, _, _ := svc.Create(ctx, nil, "")
	svc.Start(ctx, id)

	first, changed, err := svc.Submit(ctx, id)
	if err != nil || !changed {
		t.Fatalf("Submit() changed=%v err=%v", changed, err)
	}
	second, changed, err := svc.Submit(ctx, id)
	if err != nil {
		t.Fatalf("second Submit() error = %v", err)
	}
	if changed {
		t.Error("second Submit() reported a change")
	}
	if first.Result.Correct != second.Result.Correct || first.Result.Percentage != second.Result.Percentage {
		t.Errorf("results differ: %+v vs %+v", first.Result, second.Result)
	}

	completed := 0
	for _, e := range events.Events() {
		if e.EventType == quiz.EventQuizCompleted {
			completed++
		}
	}
	if completed != 1 {
		t.Errorf("quiz_completed logged %d times, want 1", completed)
	}
}

func TestService_NoopsReportUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	id, _, _ := svc.Create(ctx, nil, "")

	if _, changed, _ := svc.Previous(ctx, id); changed {
		t.Error("Previous() in setup changed state")
	}
	if _, changed, _ := svc.Restart(ctx, id); changed {
		t.Error("Restart() in setup changed state")
	}
	svc.Start(ctx, id)
	if _, changed, _ := svc.Next(ctx, id); changed {
		t.Error("Next() without answer changed state")
	}
	if _, changed, _ := svc.Start(ctx, id); changed {
		t.Error("Start() while active changed state")
	}
	svc.SelectAnswer(ctx, id, 1, 2)
	if _, changed, _ := svc.SelectAnswer(ctx, id, 1, 2); changed {
		t.Error("re-selecting the same option reported a change")
	}
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Errorf("Get() unknown id error = %v, want ErrSessionNotFound", err)
	}

	id, _, _ := svc.Create(ctx, nil, "")
	if _, _, err := svc.SelectAnswer(ctx, id, 1, 0); !errors.Is(err, quiz.ErrWrongPhase) {
		t.Errorf("SelectAnswer() in setup error = %v, want ErrWrongPhase", err)
	}
	if _, _, err := svc.Submit(ctx, id); !errors.Is(err, quiz.ErrWrongPhase) {
		t.Errorf("Submit() in setup error = %v, want ErrWrongPhase", err)
	}

	svc.Start(ctx, id)
	if _, _, err := svc.SelectAnswer(ctx, id, 1, 10); !errors.Is(err, quiz.ErrInvalidInput) {
		t.Errorf("SelectAnswer() bad option error = %v, want ErrInvalidInput", err)
	}
}

func TestService_RestartKeepsLesson(t *testing.T) {
	ctx := context.Background()
	svc, events := newTestService(t)

	id, _, _ := svc.Create(ctx, intPtr(1), "Fundamentals")
	svc.Start(ctx, id)
	svc.Submit(ctx, id)

	snap, changed, err := svc.Restart(ctx, id)
	if err != nil || !changed {
		t.Fatalf("Restart() changed=%v err=%v", changed, err)
	}
	if snap.Phase != quiz.PhaseSetup || snap.Result != nil {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Lesson == nil || snap.Lesson.Category != "Fundamentals" {
		t.Errorf("Lesson = %+v, want Fundamentals", snap.Lesson)
	}

	got := eventTypes(events)
	if got[len(got)-1] != quiz.EventQuizRestarted {
		t.Errorf("last event = %q, want %q", got[len(got)-1], quiz.EventQuizRestarted)
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	id, _, _ := svc.Create(ctx, nil, "")

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, id); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Errorf("Get() after delete error = %v", err)
	}
}

func TestService_EmptyQuiz(t *testing.T) {
	ctx := context.Background()
	svc := quiz.NewService(quiz.ServiceConfig{Quiz: content.Quiz{Title: "Empty"}})

	id, _, err := svc.Create(ctx, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	snap, changed, err := svc.Start(ctx, id)
	if err != nil || !changed {
		t.Fatalf("Start() changed=%v err=%v", changed, err)
	}
	if snap.Phase != quiz.PhaseCompleted || snap.Result == nil || snap.Result.Total != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}
