package presenter

import (
	"time"

	"attempt-engine/internal/engine"
)

type SummaryView struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	TotalQuestions   int       `json:"total_questions"`
	TimeLimitSeconds int       `json:"time_limit_seconds"`
	Difficulty       string    `json:"difficulty"`
	PassingScore     float64   `json:"passing_score,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
	StartLabel       string    `json:"start_label"`
	StartEnabled     bool      `json:"start_enabled"`
}

// BuildSummary renders the read-only quiz metadata plus the start control,
// which disables itself and relabels while a start request is in flight.
func BuildSummary(s *engine.Session) SummaryView {
	label := "Start quiz"
	if s.Starting {
		label = "Starting..."
	}
	return SummaryView{
		Title:            s.Quiz.Title,
		Description:      s.Quiz.Description,
		TotalQuestions:   s.Quiz.QuestionCount(),
		TimeLimitSeconds: s.Quiz.TimeLimitSeconds,
		Difficulty:       s.Quiz.Difficulty,
		PassingScore:     s.Quiz.PassingScore,
		UpdatedAt:        s.Quiz.UpdatedAt,
		StartLabel:       label,
		StartEnabled:     !s.Starting,
	}
}
