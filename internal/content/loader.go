// Package content loads the static lesson and quiz datasets and exposes the
// lesson navigation index.
package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const (
	LessonsFile = "lessons.yaml"
	QuizFile    = "quiz.yaml"
)

// Dataset is the read-only content loaded once at startup.
type Dataset struct {
	Lessons *Index
	Quiz    Quiz
}

// Load reads lessons.yaml and quiz.yaml from rootDir.
func Load(rootDir string) (*Dataset, error) {
	lessons, err := LoadLessons(filepath.Join(rootDir, LessonsFile))
	if err != nil {
		return nil, fmt.Errorf("loading lessons: %w", err)
	}

	idx, err := NewIndex(lessons)
	if err != nil {
		return nil, fmt.Errorf("indexing lessons: %w", err)
	}

	quiz, err := LoadQuiz(filepath.Join(rootDir, QuizFile))
	if err != nil {
		return nil, fmt.Errorf("loading quiz: %w", err)
	}

	slog.Info("content loaded",
		"lessons", idx.Len(),
		"questions", len(quiz.Questions),
		"root", rootDir,
	)
	return &Dataset{Lessons: idx, Quiz: quiz}, nil
}

// LoadLessons reads and validates a lessons document.
func LoadLessons(path string) ([]Lesson, error) {
	var f lessonsFile
	if err := decodeFile(path, lessonsSchemaLoader, &f); err != nil {
		return nil, err
	}
	return f.Lessons, nil
}

// LoadQuiz reads and validates a quiz document.
func LoadQuiz(path string) (Quiz, error) {
	var f quizFile
	if err := decodeFile(path, quizSchemaLoader, &f); err != nil {
		return Quiz{}, err
	}
	if err := validateQuiz(f.Quiz); err != nil {
		return Quiz{}, fmt.Errorf("%s: %w", path, err)
	}
	return f.Quiz, nil
}

func decodeFile(path string, schema gojsonschema.JSONLoader, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: invalid YAML: %w", path, err)
	}
	if err := validateDocument(schema, doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	return nil
}

// validateQuiz checks the constraints a schema cannot express.
func validateQuiz(q Quiz) error {
	seen := make(map[int]bool, len(q.Questions))
	for _, qq := range q.Questions {
		if seen[qq.ID] {
			return fmt.Errorf("duplicate question id %d", qq.ID)
		}
		seen[qq.ID] = true
		if !qq.HasOption(qq.CorrectAnswer) {
			return fmt.Errorf("question %d: correct_answer %d out of range (%d options)",
				qq.ID, qq.CorrectAnswer, len(qq.Options))
		}
	}
	return nil
}
