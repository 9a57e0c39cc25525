// Package quiz implements the quiz session engine, its scoring and the
// persistence around sessions served over HTTP.
package quiz

import (
	"errors"
	"fmt"

	"github.com/p-n-ai/knowledge-hub/internal/content"
)

var (
	// ErrInvalidInput is returned for answers that reference an unknown
	// question or an option outside the question's range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrWrongPhase is returned when an operation is not allowed in the
	// session's current phase.
	ErrWrongPhase = errors.New("operation not allowed in current phase")
)

// Phase is the quiz lifecycle stage.
type Phase string

const (
	PhaseSetup     Phase = "setup"
	PhaseActive    Phase = "active"
	PhaseCompleted Phase = "completed"
)

// Session drives one user through one quiz. It is not safe for concurrent
// use; each session has a single owner.
type Session struct {
	quiz    content.Quiz
	lesson  *LessonContext
	phase   Phase
	index   int
	answers map[int]int
	result  *Result
}

// NewSession creates a session in the Setup phase. lesson may be nil for a
// standalone quiz.
func NewSession(q content.Quiz, lesson *LessonContext) *Session {
	return &Session{
		quiz:    q,
		lesson:  lesson.clone(),
		phase:   PhaseSetup,
		answers: map[int]int{},
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Start moves Setup to Active with a clean slate. A quiz without questions
// is completed immediately with an empty score.
func (s *Session) Start() bool {
	if s.phase != PhaseSetup {
		return false
	}
	s.index = 0
	s.answers = map[int]int{}
	s.result = nil
	s.phase = PhaseActive

	if len(s.quiz.Questions) == 0 {
		s.complete()
	}
	return true
}

// SelectAnswer records (or replaces) the chosen option for a question.
func (s *Session) SelectAnswer(questionID, option int) error {
	if s.phase != PhaseActive {
		return fmt.Errorf("select answer in %s: %w", s.phase, ErrWrongPhase)
	}
	q, ok := s.quiz.Question(questionID)
	if !ok {
		return fmt.Errorf("unknown question %d: %w", questionID, ErrInvalidInput)
	}
	if !q.HasOption(option) {
		return fmt.Errorf("option %d out of range for question %d: %w", option, questionID, ErrInvalidInput)
	}
	s.answers[questionID] = option
	return nil
}

// Next advances to the following question, or completes the quiz from the
// last one. It has no effect unless the current question is answered.
func (s *Session) Next() bool {
	if s.phase != PhaseActive || !s.currentAnswered() {
		return false
	}
	if s.index == len(s.quiz.Questions)-1 {
		s.complete()
		return true
	}
	s.index++
	return true
}

// Previous steps back one question. Recorded answers are kept.
func (s *Session) Previous() bool {
	if s.phase != PhaseActive || s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Submit scores the quiz and completes it. Once completed, the stored
// result is returned unchanged.
func (s *Session) Submit() (Result, error) {
	switch s.phase {
	case PhaseActive:
		return s.complete(), nil
	case PhaseCompleted:
		return *s.result, nil
	default:
		return Result{}, fmt.Errorf("submit in %s: %w", s.phase, ErrWrongPhase)
	}
}

// Restart returns a completed session to Setup, discarding answers and
// score. The lesson linkage survives.
func (s *Session) Restart() bool {
	if s.phase != PhaseCompleted {
		return false
	}
	s.phase = PhaseSetup
	s.index = 0
	s.answers = map[int]int{}
	s.result = nil
	return true
}

// complete scores at most once per attempt.
func (s *Session) complete() Result {
	if s.result == nil {
		r := Score(s.quiz.Questions, s.answers)
		s.result = &r
	}
	s.phase = PhaseCompleted
	return *s.result
}

func (s *Session) currentAnswered() bool {
	if s.index < 0 || s.index >= len(s.quiz.Questions) {
		return false
	}
	_, ok := s.answers[s.quiz.Questions[s.index].ID]
	return ok
}

// CurrentQuestion returns the question at the current index while Active.
func (s *Session) CurrentQuestion() (content.Question, bool) {
	if s.phase != PhaseActive {
		return content.Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

// Result returns the score once the session is completed.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Lesson returns the lesson linkage, or nil for a standalone quiz.
func (s *Session) Lesson() *LessonContext { return s.lesson.clone() }

// Title is the heading shown for the quiz.
func (s *Session) Title() string {
	if s.lesson != nil {
		return s.lesson.LessonTitle + " Quiz"
	}
	return s.quiz.Title
}

// Description is the introduction shown before the quiz starts.
func (s *Session) Description() string {
	if s.lesson != nil {
		return "Challenge yourself with questions specifically designed to test your knowledge of " +
			s.lesson.LessonTitle + "."
	}
	return s.quiz.Description
}

// EstimatedMinutes is the suggested time budget at a minute and a half per
// question, rounded up. Sessions themselves are untimed.
func (s *Session) EstimatedMinutes() int {
	return (3*len(s.quiz.Questions) + 1) / 2
}

// Progress is the position of the current question as a 0-100 percentage.
func (s *Session) Progress() int {
	switch s.phase {
	case PhaseActive:
		return (s.index + 1) * 100 / len(s.quiz.Questions)
	case PhaseCompleted:
		return 100
	default:
		return 0
	}
}

// Snapshot is the observable state of a session.
type Snapshot struct {
	Phase                Phase          `json:"phase"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	EstimatedMinutes     int            `json:"estimated_minutes"`
	CurrentQuestionIndex int            `json:"current_question_index"`
	TotalQuestions       int            `json:"total_questions"`
	Progress             int            `json:"progress"`
	Answers              map[int]int    `json:"answers"`
	Result               *Result        `json:"result,omitempty"`
	Lesson               *LessonContext `json:"lesson,omitempty"`
}

// Snapshot returns a copy of the session's state.
func (s *Session) Snapshot() Snapshot {
	answers := make(map[int]int, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	return Snapshot{
		Phase:                s.phase,
		Title:                s.Title(),
		Description:          s.Description(),
		EstimatedMinutes:     s.EstimatedMinutes(),
		CurrentQuestionIndex: s.index,
		TotalQuestions:       len(s.quiz.Questions),
		Progress:             s.Progress(),
		Answers:              answers,
		Result:               s.result.clone(),
		Lesson:               s.lesson.clone(),
	}
}
