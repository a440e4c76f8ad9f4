package engine

import (
	"math/rand"
	"time"

	"attempt-engine/internal/models"
)

// BeginStart validates the start preconditions and raises the in-flight
// guard. No state besides the guard changes until CompleteStart or FailStart.
// A guard older than GuardExpiry is treated as abandoned and re-raised.
func (s *Session) BeginStart(now time.Time) error {
	if s.Phase != PhaseSummary {
		return ErrWrongPhase
	}
	if s.Starting && now.Sub(s.StartingAt) < GuardExpiry {
		return ErrStartInFlight
	}
	if s.Quiz.ID == "" {
		return ErrMissingQuizID
	}
	if s.LearningSessionID == "" {
		return ErrMissingSessionID
	}
	s.Starting = true
	s.StartingAt = now
	return nil
}

// CompleteStart records the server-issued attempt id, clears any stale
// answers and result, and moves the session into the questions phase.
func (s *Session) CompleteStart(attemptID string, attemptNumber int, now time.Time) {
	s.Starting = false
	s.StartingAt = time.Time{}
	s.AttemptID = attemptID
	if attemptNumber > 0 {
		s.AttemptNumber = attemptNumber
	} else {
		s.AttemptNumber++
	}
	s.Answers = map[int]int{}
	s.Result = nil
	s.Degraded = false
	s.Current = 0
	s.HintShown = false
	s.StartedAt = now
	s.Deadline = time.Time{}
	if s.Quiz.TimeLimitSeconds > 0 {
		s.Deadline = now.Add(time.Duration(s.Quiz.TimeLimitSeconds) * time.Second)
	}
	s.Order = make([]int, len(s.Quiz.Questions))
	for i := range s.Order {
		s.Order[i] = i
	}
	if s.Quiz.ShuffleQuestions {
		rand.Shuffle(len(s.Order), func(i, j int) {
			s.Order[i], s.Order[j] = s.Order[j], s.Order[i]
		})
	}
	s.Phase = PhaseQuestions
}

func (s *Session) FailStart() {
	s.Starting = false
	s.StartingAt = time.Time{}
}

// BeginFinish validates the finish preconditions, raises the submit guard,
// and builds the submission payload from the answer map in display order.
// Option ids fall back to synthesized letters for sources without ids.
func (s *Session) BeginFinish(now time.Time) ([]models.SubmittedAnswer, error) {
	if s.Phase != PhaseQuestions {
		return nil, ErrWrongPhase
	}
	if s.Submitting && now.Sub(s.SubmittingAt) < GuardExpiry {
		return nil, ErrSubmitInFlight
	}
	if s.AttemptID == "" {
		return nil, ErrMissingAttemptID
	}
	if len(s.Answers) < len(s.Quiz.Questions) {
		return nil, ErrUnanswered
	}
	out := make([]models.SubmittedAnswer, 0, len(s.Quiz.Questions))
	for _, qi := range s.Order {
		q := s.Quiz.Questions[qi]
		out = append(out, models.SubmittedAnswer{
			QuestionID:       q.ID,
			SelectedOptionID: q.OptionID(s.Answers[qi]),
		})
	}
	s.Submitting = true
	s.SubmittingAt = now
	return out, nil
}

// CompleteFinish stores the graded result and moves to the result phase. The
// local answer map is kept; review needs it to place annotations.
func (s *Session) CompleteFinish(result *models.AttemptResult) {
	s.Submitting = false
	s.SubmittingAt = time.Time{}
	s.Result = result
	s.Degraded = false
	if result != nil && result.AttemptNumber > 0 {
		s.AttemptNumber = result.AttemptNumber
	}
	s.Phase = PhaseResult
}

func (s *Session) FailFinish() {
	s.Submitting = false
	s.SubmittingAt = time.Time{}
}

// SeedResult installs a previously graded attempt during resumption and lands
// the session directly in the result phase. degraded marks a result whose
// per-question detail was unavailable.
func (s *Session) SeedResult(result *models.AttemptResult, answers map[int]int, degraded bool) {
	s.Result = result
	s.Degraded = degraded
	if answers == nil {
		answers = map[int]int{}
	}
	s.Answers = answers
	if result != nil {
		s.AttemptID = result.AttemptID
		s.AttemptNumber = result.AttemptNumber
	}
	s.Phase = PhaseResult
}

func (s *Session) EnterReview() error {
	if s.Phase != PhaseResult {
		return ErrWrongPhase
	}
	s.Phase = PhaseReview
	return nil
}

func (s *Session) BackToResult() error {
	if s.Phase != PhaseReview {
		return ErrWrongPhase
	}
	s.Phase = PhaseResult
	return nil
}

// Retake discards the finished attempt and returns to the summary phase. The
// next start creates a fresh server attempt; the server owns the attempt
// number increment.
func (s *Session) Retake() error {
	if s.Phase != PhaseResult && s.Phase != PhaseReview {
		return ErrWrongPhase
	}
	s.Answers = map[int]int{}
	s.AttemptID = ""
	s.Result = nil
	s.Degraded = false
	s.Current = 0
	s.HintShown = false
	s.StartedAt = time.Time{}
	s.Deadline = time.Time{}
	s.Phase = PhaseSummary
	return nil
}

// RebuildAnswers reconstructs the local answer-index map from graded
// per-question results by matching question ids and option ids. Entries that
// match nothing are skipped rather than failing the resume.
func RebuildAnswers(quiz models.Quiz, results []models.AnswerResult) map[int]int {
	byID := make(map[string]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		byID[q.ID] = i
	}
	answers := map[int]int{}
	for _, r := range results {
		qi, ok := byID[r.QuestionID]
		if !ok {
			continue
		}
		oi := quiz.Questions[qi].OptionIndex(r.SelectedOptionID)
		if oi < 0 {
			continue
		}
		answers[qi] = oi
	}
	return answers
}
