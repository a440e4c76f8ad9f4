package models

import "time"

// AnswerResult is the server's verdict on a single submitted answer. When the
// selection was wrong the correct option is not part of the payload; the
// grading contract only reveals correctness of what the user picked.
type AnswerResult struct {
	QuestionID       string `bson:"question_id" json:"question_id"`
	SelectedOptionID string `bson:"selected_option_id" json:"selected_option_id"`
	Correct          bool   `bson:"correct" json:"correct"`
	Hint             string `bson:"hint,omitempty" json:"hint,omitempty"`
}

// AttemptResult is the server-graded outcome of a submitted attempt and the
// sole source of truth for correctness and score once obtained.
type AttemptResult struct {
	AttemptID     string         `bson:"attempt_id" json:"attempt_id"`
	Score         float64        `bson:"score" json:"score"`
	Passed        bool           `bson:"passed" json:"passed"`
	StartedAt     time.Time      `bson:"started_at" json:"started_at"`
	SubmittedAt   *time.Time     `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	AttemptNumber int            `bson:"attempt_number" json:"attempt_number"`
	Answers       []AnswerResult `bson:"answers" json:"answers"`
}

// AnswersByQuestion keys the per-question verdicts by question id.
func (r *AttemptResult) AnswersByQuestion() map[string]AnswerResult {
	out := make(map[string]AnswerResult, len(r.Answers))
	for _, a := range r.Answers {
		out[a.QuestionID] = a
	}
	return out
}

// CorrectCount counts the verdicts the server marked correct.
func (r *AttemptResult) CorrectCount() int {
	n := 0
	for _, a := range r.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// AttemptSummary is the list form returned by the attempt-history lookup.
type AttemptSummary struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	StartedAt     time.Time  `bson:"started_at" json:"started_at"`
	SubmittedAt   *time.Time `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	Score         *float64   `bson:"score,omitempty" json:"score,omitempty"`
	Passed        *bool      `bson:"passed,omitempty" json:"passed,omitempty"`
	AttemptNumber int        `bson:"attempt_number" json:"attempt_number"`
}

// LatestSubmitted picks the attempt to resume from a history listing: the most
// recently submitted one, falling back to the first entry when none carry a
// submission timestamp. Returns false for an empty history.
func LatestSubmitted(history []AttemptSummary) (AttemptSummary, bool) {
	if len(history) == 0 {
		return AttemptSummary{}, false
	}
	best := -1
	for i, s := range history {
		if s.SubmittedAt == nil {
			continue
		}
		if best == -1 || s.SubmittedAt.After(*history[best].SubmittedAt) {
			best = i
		}
	}
	if best == -1 {
		return history[0], true
	}
	return history[best], true
}
