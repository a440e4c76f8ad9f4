package presenter

import (
	"time"

	"attempt-engine/internal/engine"
)

type OptionView struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

// StripEntry is one cell of the compact question index: answered questions
// and the current question are visually distinguished from the rest.
type StripEntry struct {
	Position int  `json:"position"`
	Answered bool `json:"answered"`
	Current  bool `json:"current"`
}

type QuestionView struct {
	Position         int          `json:"position"`
	Total            int          `json:"total"`
	Text             string       `json:"text"`
	Options          []OptionView `json:"options"`
	SelectedIndex    *int         `json:"selected_index,omitempty"`
	HintVisible      bool         `json:"hint_visible"`
	Hint             string       `json:"hint,omitempty"`
	Strip            []StripEntry `json:"strip"`
	CanPrev          bool         `json:"can_prev"`
	CanNext          bool         `json:"can_next"`
	ShowFinish       bool         `json:"show_finish"`
	CanFinish        bool         `json:"can_finish"`
	RemainingSeconds int          `json:"remaining_seconds"`
	OverDeadline     bool         `json:"over_deadline"`
	Submitting       bool         `json:"submitting"`
}

// BuildQuestion renders the in-progress view: one question at a time with an
// optimistic selected highlight. No correctness is shown before grading; the
// server result reconciles everything in review.
func BuildQuestion(s *engine.Session, now time.Time) QuestionView {
	if len(s.Order) == 0 {
		return QuestionView{}
	}
	qi := s.CurrentQuestionIndex()
	q := s.Quiz.Questions[qi]

	var selected *int
	answered := false
	if idx, ok := s.Answers[qi]; ok {
		v := idx
		selected = &v
		answered = true
	}

	opts := make([]OptionView, len(q.Options))
	for i, opt := range q.Options {
		opts[i] = OptionView{
			ID:       q.OptionID(i),
			Text:     opt.Text,
			Selected: selected != nil && *selected == i,
		}
	}

	strip := make([]StripEntry, len(s.Order))
	for pos := range s.Order {
		strip[pos] = StripEntry{
			Position: pos,
			Answered: s.Answered(pos),
			Current:  pos == s.Current,
		}
	}

	hint := ""
	if s.HintShown {
		hint = q.Hint
	}

	remaining := s.RemainingSeconds(now)
	return QuestionView{
		Position:         s.Current,
		Total:            len(s.Order),
		Text:             q.Text,
		Options:          opts,
		SelectedIndex:    selected,
		HintVisible:      s.HintShown,
		Hint:             hint,
		Strip:            strip,
		CanPrev:          s.Current > 0,
		CanNext:          s.Current < len(s.Order)-1 && answered,
		ShowFinish:       s.OnLastQuestion(),
		CanFinish:        s.OnLastQuestion() && s.AllAnswered(),
		RemainingSeconds: remaining,
		OverDeadline:     !s.Deadline.IsZero() && now.After(s.Deadline),
		Submitting:       s.Submitting,
	}
}
