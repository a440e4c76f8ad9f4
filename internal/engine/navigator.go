package engine

import (
	"time"

	"attempt-engine/internal/models"
)

// AttemptInfo exposes the client-local working state in its wire shape.
func (s *Session) AttemptInfo() models.Attempt {
	return models.Attempt{
		QuizID:        s.Quiz.ID,
		SessionID:     s.LearningSessionID,
		AttemptID:     s.AttemptID,
		Answers:       s.Answers,
		AttemptNumber: s.AttemptNumber,
	}
}

// QuestionIndex returns the original question index shown at display
// position pos.
func (s *Session) QuestionIndex(pos int) int {
	return s.Order[pos]
}

// CurrentQuestionIndex returns the original index of the question on screen.
func (s *Session) CurrentQuestionIndex() int {
	return s.Order[s.Current]
}

// Answered reports whether the question at display position pos has a
// selection.
func (s *Session) Answered(pos int) bool {
	_, ok := s.Answers[s.Order[pos]]
	return ok
}

func (s *Session) AllAnswered() bool {
	return len(s.Answers) >= len(s.Quiz.Questions)
}

// Select records the option choice for the current question. Selections are
// write-once for the lifetime of the attempt; re-selecting is rejected.
func (s *Session) Select(optionIndex int) error {
	if s.Phase != PhaseQuestions {
		return ErrWrongPhase
	}
	if len(s.Order) == 0 {
		return ErrOutOfRange
	}
	qi := s.CurrentQuestionIndex()
	if optionIndex < 0 || optionIndex >= len(s.Quiz.Questions[qi].Options) {
		return ErrOutOfRange
	}
	if _, ok := s.Answers[qi]; ok {
		return ErrAnswerLocked
	}
	s.Answers[qi] = optionIndex
	return nil
}

// Next advances to the following question; the current one must be answered.
func (s *Session) Next() error {
	if s.Phase != PhaseQuestions {
		return ErrWrongPhase
	}
	if s.Current >= len(s.Order)-1 {
		return ErrOutOfRange
	}
	if !s.Answered(s.Current) {
		return ErrNotAnswered
	}
	s.Current++
	s.HintShown = false
	return nil
}

func (s *Session) Prev() error {
	if s.Phase != PhaseQuestions {
		return ErrWrongPhase
	}
	if s.Current == 0 {
		return ErrOutOfRange
	}
	s.Current--
	s.HintShown = false
	return nil
}

// Jump moves straight to a display position from the index strip. Jumping is
// allowed regardless of answered state but never unlocks an existing answer.
func (s *Session) Jump(pos int) error {
	if s.Phase != PhaseQuestions {
		return ErrWrongPhase
	}
	if pos < 0 || pos >= len(s.Order) {
		return ErrOutOfRange
	}
	s.Current = pos
	s.HintShown = false
	return nil
}

// ToggleHint flips hint visibility for the current question view. Navigation
// resets it to collapsed.
func (s *Session) ToggleHint() error {
	if s.Phase != PhaseQuestions {
		return ErrWrongPhase
	}
	s.HintShown = !s.HintShown
	return nil
}

// OnLastQuestion reports whether the finish control should be visible.
func (s *Session) OnLastQuestion() bool {
	return len(s.Order) > 0 && s.Current == len(s.Order)-1
}

// RemainingSeconds returns the seconds left on the attempt clock, -1 when the
// quiz has no time limit, and 0 once the deadline has passed.
func (s *Session) RemainingSeconds(now time.Time) int {
	if s.Deadline.IsZero() {
		return -1
	}
	left := int(s.Deadline.Sub(now).Seconds())
	if left < 0 {
		return 0
	}
	return left
}
