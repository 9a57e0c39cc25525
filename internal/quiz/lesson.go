package quiz

import "github.com/p-n-ai/knowledge-hub/internal/content"

// LessonContext records which lesson launched a quiz session.
type LessonContext struct {
	LessonID    int    `json:"lesson_id"`
	LessonTitle string `json:"lesson_title"`
	Category    string `json:"category"`
}

func (c *LessonContext) clone() *LessonContext {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// LessonFinder looks lessons up by ID.
type LessonFinder interface {
	Lookup(id int) (content.Lesson, bool)
}

// ResolveLessonContext captures the lesson linkage for a new session. A nil
// lessonID or an unknown lesson yields a standalone session (nil). An empty
// category falls back to the lesson's own category.
func ResolveLessonContext(finder LessonFinder, lessonID *int, category string) *LessonContext {
	if finder == nil || lessonID == nil {
		return nil
	}
	lesson, ok := finder.Lookup(*lessonID)
	if !ok {
		return nil
	}
	if category == "" {
		category = lesson.Category
	}
	return &LessonContext{
		LessonID:    lesson.ID,
		LessonTitle: lesson.Title,
		Category:    category,
	}
}
