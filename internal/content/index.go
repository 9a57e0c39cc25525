package content

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// AllCategories is the category filter value that matches every lesson.
const AllCategories = "All"

// Index is the ordered, read-only lesson catalogue with adjacency lookups.
type Index struct {
	lessons []Lesson
	pos     map[int]int
}

// NewIndex builds an index preserving the given order. Lesson ids must be
// unique.
func NewIndex(lessons []Lesson) (*Index, error) {
	idx := &Index{
		lessons: make([]Lesson, len(lessons)),
		pos:     make(map[int]int, len(lessons)),
	}
	copy(idx.lessons, lessons)

	for i, l := range idx.lessons {
		if _, dup := idx.pos[l.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson id %d", l.ID)
		}
		idx.pos[l.ID] = i
	}
	return idx, nil
}

// Len returns the number of lessons.
func (x *Index) Len() int {
	return len(x.lessons)
}

// Lookup returns a lesson by ID.
func (x *Index) Lookup(id int) (Lesson, bool) {
	i, ok := x.pos[id]
	if !ok {
		return Lesson{}, false
	}
	return x.lessons[i], true
}

// All returns every lesson in catalogue order.
func (x *Index) All() []Lesson {
	out := make([]Lesson, len(x.lessons))
	copy(out, x.lessons)
	return out
}

// IndexOf returns the catalogue position of a lesson.
func (x *Index) IndexOf(id int) (int, bool) {
	i, ok := x.pos[id]
	return i, ok
}

// Previous returns the lesson before id, if any.
func (x *Index) Previous(id int) (Lesson, bool) {
	return x.offset(id, -1)
}

// Next returns the lesson after id, if any.
func (x *Index) Next(id int) (Lesson, bool) {
	return x.offset(id, 1)
}

func (x *Index) offset(id, delta int) (Lesson, bool) {
	i, ok := x.pos[id]
	if !ok {
		return Lesson{}, false
	}
	j := i + delta
	if j < 0 || j >= len(x.lessons) {
		return Lesson{}, false
	}
	return x.lessons[j], true
}

// Categories returns the distinct categories in order of first appearance.
func (x *Index) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range x.lessons {
		if !seen[l.Category] {
			seen[l.Category] = true
			out = append(out, l.Category)
		}
	}
	return out
}

// Featured returns up to limit featured lessons in catalogue order.
// A non-positive limit returns all of them.
func (x *Index) Featured(limit int) []Lesson {
	var out []Lesson
	for _, l := range x.lessons {
		if !l.Featured {
			continue
		}
		out = append(out, l)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Filter narrows a catalogue search.
type Filter struct {
	// Query matches title, description or category, ignoring case.
	Query string
	// Category must match exactly; empty or AllCategories disables it.
	Category string
}

// Search returns the lessons matching f in catalogue order.
func (x *Index) Search(f Filter) []Lesson {
	caser := cases.Fold()
	query := caser.String(strings.TrimSpace(f.Query))
	category := f.Category
	if category == AllCategories {
		category = ""
	}

	out := []Lesson{}
	for _, l := range x.lessons {
		if category != "" && l.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(caser.String(l.Title), query) &&
			!strings.Contains(caser.String(l.Description), query) &&
			!strings.Contains(caser.String(l.Category), query) {
			continue
		}
		out = append(out, l)
	}
	return out
}
