package quiz

import (
	"fmt"

	"github.com/p-n-ai/knowledge-hub/internal/content"
)

// State is the persisted form of a session. The quiz itself is static and
// is not part of it.
type State struct {
	Phase   Phase          `json:"phase"`
	Index   int            `json:"index"`
	Answers map[int]int    `json:"answers"`
	Result  *Result        `json:"result,omitempty"`
	Lesson  *LessonContext `json:"lesson,omitempty"`
}

// State returns a copy of the session suitable for storage.
func (s *Session) State() State {
	snap := s.Snapshot()
	return State{
		Phase:   snap.Phase,
		Index:   snap.CurrentQuestionIndex,
		Answers: snap.Answers,
		Result:  snap.Result,
		Lesson:  snap.Lesson,
	}
}

// RestoreSession rebuilds a session from stored state, rejecting state that
// violates the session invariants for q.
func RestoreSession(q content.Quiz, st State) (*Session, error) {
	n := len(q.Questions)
	switch st.Phase {
	case PhaseSetup:
		if st.Result != nil {
			return nil, fmt.Errorf("restore: setup session carries a result: %w", ErrInvalidInput)
		}
	case PhaseActive:
		if st.Index < 0 || st.Index >= n {
			return nil, fmt.Errorf("restore: index %d out of range (%d questions): %w", st.Index, n, ErrInvalidInput)
		}
		if st.Result != nil {
			return nil, fmt.Errorf("restore: active session carries a result: %w", ErrInvalidInput)
		}
	case PhaseCompleted:
		if st.Result == nil {
			return nil, fmt.Errorf("restore: completed session without result: %w", ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("restore: unknown phase %q: %w", st.Phase, ErrInvalidInput)
	}

	answers := make(map[int]int, len(st.Answers))
	for id, opt := range st.Answers {
		qq, ok := q.Question(id)
		if !ok || !qq.HasOption(opt) {
			return nil, fmt.Errorf("restore: answer %d=%d not valid for quiz: %w", id, opt, ErrInvalidInput)
		}
		answers[id] = opt
	}

	s := NewSession(q, st.Lesson)
	s.phase = st.Phase
	s.index = st.Index
	s.answers = answers
	s.result = st.Result.clone()
	return s, nil
}
