package quiz

import "github.com/p-n-ai/knowledge-hub/internal/content"

// Tier is a qualitative score bucket.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGreat     Tier = "great"
	TierGood      Tier = "good"
	TierNeedsWork Tier = "needs_work"
)

// Tier thresholds, inclusive lower bounds on the rounded percentage.
const (
	excellentAt = 90
	greatAt     = 70
	goodAt      = 50
)

type tierText struct {
	message     string
	variant     string
	description string
}

var tierTexts = map[Tier]tierText{
	TierExcellent: {"Excellent!", "success", "You have mastered these concepts!"},
	TierGreat:     {"Great job!", "primary", "You have a solid understanding of the material."},
	TierGood:      {"Good effort!", "warning", "Keep practicing to improve your skills."},
	TierNeedsWork: {"Keep learning!", "danger", "Review the lessons and try again."},
}

// ClassifyTier maps a 0-100 percentage to its tier.
func ClassifyTier(percentage int) Tier {
	switch {
	case percentage >= excellentAt:
		return TierExcellent
	case percentage >= greatAt:
		return TierGreat
	case percentage >= goodAt:
		return TierGood
	default:
		return TierNeedsWork
	}
}

// Message is the short headline shown with the tier.
func (t Tier) Message() string { return tierTexts[t].message }

// Variant is the presentation hint (success, primary, warning, danger).
func (t Tier) Variant() string { return tierTexts[t].variant }

// Description is the longer encouragement text for the tier.
func (t Tier) Description() string { return tierTexts[t].description }

// QuestionReview is the per-question outcome of a scored quiz.
type QuestionReview struct {
	QuestionID    int  `json:"question_id"`
	Selected      *int `json:"selected,omitempty"`
	CorrectAnswer int  `json:"correct_answer"`
	Correct       bool `json:"correct"`
}

// Result is the outcome of scoring a quiz.
type Result struct {
	Correct     int              `json:"correct"`
	Total       int              `json:"total"`
	Percentage  int              `json:"percentage"`
	Tier        Tier             `json:"tier"`
	Message     string           `json:"message"`
	Variant     string           `json:"variant"`
	Description string           `json:"description"`
	Review      []QuestionReview `json:"review"`
}

func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Review = append([]QuestionReview(nil), r.Review...)
	return &cp
}

// Score counts the questions whose recorded answer matches the correct
// option. A missing answer counts as incorrect.
func Score(questions []content.Question, answers map[int]int) Result {
	r := Result{
		Total:  len(questions),
		Review: make([]QuestionReview, 0, len(questions)),
	}

	for _, q := range questions {
		rv := QuestionReview{QuestionID: q.ID, CorrectAnswer: q.CorrectAnswer}
		if sel, ok := answers[q.ID]; ok {
			rv.Selected = &sel
			rv.Correct = sel == q.CorrectAnswer
		}
		if rv.Correct {
			r.Correct++
		}
		r.Review = append(r.Review, rv)
	}

	r.Percentage = percentage(r.Correct, r.Total)
	r.Tier = ClassifyTier(r.Percentage)
	r.Message = r.Tier.Message()
	r.Variant = r.Tier.Variant()
	r.Description = r.Tier.Description()
	return r
}

// percentage rounds correct/total*100 half up; an empty quiz scores 0.
func percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (correct*200 + total) / (2 * total)
}
