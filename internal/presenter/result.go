package presenter

import (
	"math"
	"time"

	"attempt-engine/internal/engine"
)

type Band string

const (
	BandPositive   Band = "positive"
	BandCautionary Band = "cautionary"
	BandNegative   Band = "negative"
)

type ResultView struct {
	CorrectCount  int        `json:"correct_count"`
	TotalCount    int        `json:"total_count"`
	Percentage    float64    `json:"percentage"`
	Band          Band       `json:"band"`
	Passed        bool       `json:"passed"`
	AttemptNumber int        `json:"attempt_number"`
	StartedAt     time.Time  `json:"started_at"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	ReviewEnabled bool       `json:"review_enabled"`
}

// ScoreBand maps a displayed percentage to its color band.
func ScoreBand(pct float64) Band {
	switch {
	case pct >= 70:
		return BandPositive
	case pct >= 40:
		return BandCautionary
	default:
		return BandNegative
	}
}

// BuildResult renders the graded outcome. With a server result present the
// reported score is displayed verbatim and correctness counts come from its
// per-question entries. Without one (degraded or legacy sources) the count
// falls back to local answers matched against the legacy answer key.
func BuildResult(s *engine.Session) ResultView {
	total := s.Quiz.QuestionCount()
	view := ResultView{TotalCount: total, AttemptNumber: s.AttemptNumber}

	if r := s.Result; r != nil {
		correct := r.CorrectCount()
		if len(r.Answers) > 0 {
			view.TotalCount = len(r.Answers)
		}
		view.CorrectCount = correct
		view.Percentage = r.Score
		view.Passed = r.Passed
		view.StartedAt = r.StartedAt
		view.SubmittedAt = r.SubmittedAt
		view.AttemptNumber = r.AttemptNumber
		view.ReviewEnabled = !s.Degraded && len(r.Answers) > 0
	} else {
		correct := 0
		for qi, oi := range s.Answers {
			if qi < 0 || qi >= len(s.Quiz.Questions) {
				continue
			}
			legacy := s.Quiz.Questions[qi].LegacyCorrectIndex
			if legacy != nil && *legacy == oi {
				correct++
			}
		}
		view.CorrectCount = correct
		if total > 0 {
			view.Percentage = math.Round(float64(correct) / float64(total) * 100)
		}
		view.Passed = s.Quiz.PassingScore > 0 && view.Percentage >= s.Quiz.PassingScore
	}

	view.Band = ScoreBand(view.Percentage)
	return view
}
