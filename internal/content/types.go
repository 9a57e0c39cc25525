package content

// Lesson represents a lesson loaded from lessons.yaml.
type Lesson struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"`
	Level       string `yaml:"level" json:"level"`
	Duration    string `yaml:"duration" json:"duration"`
	Featured    bool   `yaml:"featured" json:"featured"`
	Content     string `yaml:"content" json:"content"`
}

// Question is a single multiple-choice quiz question. Options are
// identified by their position.
type Question struct {
	ID            int      `yaml:"id" json:"id"`
	Question      string   `yaml:"question" json:"question"`
	Options       []string `yaml:"options" json:"options"`
	CorrectAnswer int      `yaml:"correct_answer" json:"correct_answer"`
	Explanation   string   `yaml:"explanation" json:"explanation"`
}

// HasOption reports whether i is a valid option index for q.
func (q Question) HasOption(i int) bool {
	return i >= 0 && i < len(q.Options)
}

// Quiz is the static quiz loaded from quiz.yaml.
type Quiz struct {
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Questions   []Question `yaml:"questions" json:"questions"`
}

// Question returns the question with the given id.
func (q Quiz) Question(id int) (Question, bool) {
	for _, qq := range q.Questions {
		if qq.ID == id {
			return qq, true
		}
	}
	return Question{}, false
}

// lessonsFile and quizFile are the on-disk document shapes.
type lessonsFile struct {
	Lessons []Lesson `yaml:"lessons"`
}

type quizFile struct {
	Quiz Quiz `yaml:"quiz"`
}
