package presenter

import "attempt-engine/internal/engine"

type OptionMark string

const (
	MarkNeutral OptionMark = "neutral"
	MarkCorrect OptionMark = "correct"
	MarkWrong   OptionMark = "wrong"
)

type ReviewOption struct {
	ID   string     `json:"id"`
	Text string     `json:"text"`
	Mark OptionMark `json:"mark"`
	Note string     `json:"note,omitempty"`
}

type ReviewQuestion struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Graded  bool           `json:"graded"`
	Options []ReviewOption `json:"options"`
}

type ReviewView struct {
	Questions []ReviewQuestion `json:"questions"`
}

// BuildReview annotates every option of every question from the graded
// per-question verdicts. An option is marked correct only when the user
// selected it and the server graded that selection correct. A wrong selection
// is marked wrong and no option is marked correct for that question: the true
// answer to a missed question is never disclosed. Notes use the server's
// per-answer hint when present, otherwise the option's static explanation.
func BuildReview(s *engine.Session) ReviewView {
	verdicts := map[string]struct {
		selectedID string
		correct    bool
		hint       string
	}{}
	if s.Result != nil && !s.Degraded {
		for _, a := range s.Result.Answers {
			verdicts[a.QuestionID] = struct {
				selectedID string
				correct    bool
				hint       string
			}{a.SelectedOptionID, a.Correct, a.Hint}
		}
	}

	questions := make([]ReviewQuestion, 0, len(s.Quiz.Questions))
	for _, pos := range s.Order {
		q := s.Quiz.Questions[pos]
		verdict, graded := verdicts[q.ID]

		opts := make([]ReviewOption, len(q.Options))
		for i, opt := range q.Options {
			mark := MarkNeutral
			note := ""
			if graded && q.OptionID(i) == verdict.selectedID {
				if verdict.correct {
					mark = MarkCorrect
				} else {
					mark = MarkWrong
				}
				note = verdict.hint
				if note == "" {
					note = opt.Explanation
				}
			}
			opts[i] = ReviewOption{
				ID:   q.OptionID(i),
				Text: opt.Text,
				Mark: mark,
				Note: note,
			}
		}
		questions = append(questions, ReviewQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Graded:  graded,
			Options: opts,
		})
	}
	return ReviewView{Questions: questions}
}
