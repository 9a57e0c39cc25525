package quiz

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/knowledge-hub/internal/content"
)

// Sheet names used by WriteResultsWorkbook.
const (
	SummarySheet = "Summary"
	ReviewSheet  = "Review"
)

var reviewHeader = []any{"#", "Question", "Your answer", "Correct answer", "Result", "Explanation"}

// WriteResultsWorkbook renders a completed session as an XLSX workbook with a
// summary sheet and a per-question review sheet.
func WriteResultsWorkbook(w io.Writer, q content.Quiz, snap Snapshot) error {
	if snap.Phase != PhaseCompleted || snap.Result == nil {
		return fmt.Errorf("export results in %s: %w", snap.Phase, ErrWrongPhase)
	}
	r := snap.Result

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	summary := [][]any{
		{"Quiz", snap.Title},
		{"Correct", r.Correct},
		{"Total", r.Total},
		{"Percentage", r.Percentage},
		{"Tier", r.Message},
		{"Feedback", r.Description},
	}
	if snap.Lesson != nil {
		summary = append(summary, []any{"Lesson", snap.Lesson.LessonTitle}, []any{"Category", snap.Lesson.Category})
	}
	for i, row := range summary {
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return fmt.Errorf("style summary: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 14); err != nil {
		return fmt.Errorf("summary width: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 48); err != nil {
		return fmt.Errorf("summary width: %w", err)
	}

	if _, err := f.NewSheet(ReviewSheet); err != nil {
		return fmt.Errorf("create review sheet: %w", err)
	}
	if err := setRow(f, ReviewSheet, 1, reviewHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(ReviewSheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, rv := range r.Review {
		question, _ := q.Question(rv.QuestionID)
		selected := "(no answer)"
		if rv.Selected != nil {
			selected = optionText(question, *rv.Selected)
		}
		outcome := "Incorrect"
		if rv.Correct {
			outcome = "Correct"
		}
		row := []any{
			i + 1,
			question.Question,
			selected,
			optionText(question, rv.CorrectAnswer),
			outcome,
			question.Explanation,
		}
		if err := setRow(f, ReviewSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(ReviewSheet, "B", "F", 32); err != nil {
		return fmt.Errorf("review width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func optionText(q content.Question, i int) string {
	if !q.HasOption(i) {
		return ""
	}
	return q.Options[i]
}
