package quiz_test

import (
	"github.com/p-n-ai/knowledge-hub/internal/content"
)

func testQuestion(id, correct int) content.Question {
	return content.Question{
		ID:            id,
		Question:      "Question " + string(rune('A'+id-1)),
		Options:       []string{"opt 0", "opt 1", "opt 2", "opt 3"},
		CorrectAnswer: correct,
		Explanation:   "because",
	}
}

// fourQuestionQuiz has correct answers 1, 2, 0, 3 for questions 1-4.
func fourQuestionQuiz() content.Quiz {
	return content.Quiz{
		Title:       "Knowledge Check",
		Description: "Test what you learned.",
		Questions: []content.Question{
			testQuestion(1, 1),
			testQuestion(2, 2),
			testQuestion(3, 0),
			testQuestion(4, 3),
		},
	}
}

type fakeLessons map[int]content.Lesson

func (f fakeLessons) Lookup(id int) (content.Lesson, bool) {
	l, ok := f[id]
	return l, ok
}

func intPtr(v int) *int { return &v }
