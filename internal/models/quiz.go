package models

import "time"

type Option struct {
	ID          string `bson:"id" json:"id"`
	Text        string `bson:"text" json:"text"`
	Explanation string `bson:"explanation" json:"explanation"`
}

type Question struct {
	ID      string   `bson:"_id,omitempty" json:"id"`
	Text    string   `bson:"text" json:"text"`
	Hint    string   `bson:"hint" json:"hint"`
	Options []Option `bson:"options" json:"options"`
	// LegacyCorrectIndex survives from older quiz sources that embedded the
	// answer key in the question itself. It is only consulted when no graded
	// server result exists; it never feeds pre-submission feedback.
	LegacyCorrectIndex *int `bson:"legacy_correct_index,omitempty" json:"legacy_correct_index,omitempty"`
}

type Quiz struct {
	ID               string     `bson:"_id,omitempty" json:"id"`
	Title            string     `bson:"title" json:"title"`
	Description      string     `bson:"description" json:"description"`
	Difficulty       string     `bson:"difficulty" json:"difficulty"`
	Questions        []Question `bson:"questions" json:"questions"`
	TotalQuestions   int        `bson:"total_questions" json:"total_questions"`
	TimeLimitSeconds int        `bson:"time_limit_seconds" json:"time_limit_seconds"`
	PassingScore     float64    `bson:"passing_score" json:"passing_score"`
	ShuffleQuestions bool       `bson:"shuffle_questions" json:"shuffle_questions"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updated_at"`
}

// QuestionCount prefers the explicit total when the source carries one.
func (q *Quiz) QuestionCount() int {
	if q.TotalQuestions > 0 {
		return q.TotalQuestions
	}
	return len(q.Questions)
}

// OptionID returns the stable id of the option at index i. Sources that omit
// option ids get a letter synthesized from the index (a=0, b=1, ...). The
// synthesis is a compatibility shim; well-formed sources carry explicit ids.
func (q *Question) OptionID(i int) string {
	if i < 0 || i >= len(q.Options) {
		return ""
	}
	if id := q.Options[i].ID; id != "" {
		return id
	}
	return OptionLetter(i)
}

// OptionIndex locates an option by id, accepting synthesized letter ids from
// older attempts. Returns -1 when no option matches.
func (q *Question) OptionIndex(optionID string) int {
	for i, opt := range q.Options {
		if opt.ID == optionID {
			return i
		}
	}
	for i := range q.Options {
		if q.Options[i].ID == "" && OptionLetter(i) == optionID {
			return i
		}
	}
	return -1
}

func OptionLetter(i int) string {
	if i < 0 {
		return ""
	}
	return string(rune('a' + i))
}
