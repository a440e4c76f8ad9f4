package engine

import (
	"errors"
	"time"

	"attempt-engine/internal/models"
)

type Phase string

const (
	PhaseSummary   Phase = "summary"
	PhaseQuestions Phase = "questions"
	PhaseResult    Phase = "result"
	PhaseReview    Phase = "review"
)

// GuardExpiry bounds how long an in-flight guard can hold. It exceeds the
// upstream client timeout, so a guard that old can only have been persisted by
// a process that died before recording the outcome; such a guard is treated as
// lowered instead of locking the session forever.
const GuardExpiry = 30 * time.Second

var (
	ErrMissingQuizID    = errors.New("quiz id is required")
	ErrMissingSessionID = errors.New("session id is required")
	ErrMissingAttemptID = errors.New("attempt id is required")
	ErrWrongPhase       = errors.New("operation not allowed in current phase")
	ErrStartInFlight    = errors.New("start request already in flight")
	ErrSubmitInFlight   = errors.New("submit request already in flight")
	ErrAnswerLocked     = errors.New("question already answered")
	ErrUnanswered       = errors.New("answer all questions before finishing")
	ErrNotAnswered      = errors.New("answer the current question to advance")
	ErrOutOfRange       = errors.New("index out of range")
)

// Session is the full working state of one user's pass through a quiz: the
// lifecycle phase, the write-once answer map, navigation position, and the
// graded result once one exists. It carries no I/O; the service layer owns
// persistence and upstream calls.
type Session struct {
	ID                string      `bson:"_id" json:"id"`
	LearningSessionID string      `bson:"learning_session_id" json:"learning_session_id"`
	Quiz              models.Quiz `bson:"quiz" json:"quiz"`
	Phase             Phase       `bson:"phase" json:"phase"`

	AttemptID     string      `bson:"attempt_id" json:"attempt_id"`
	AttemptNumber int         `bson:"attempt_number" json:"attempt_number"`
	Answers       map[int]int `bson:"-" json:"answers"`

	// Order is the display permutation over question indexes; Current is a
	// position in Order, not a question index.
	Order     []int `bson:"order" json:"order"`
	Current   int   `bson:"current" json:"current"`
	HintShown bool  `bson:"hint_shown" json:"hint_shown"`

	Starting     bool      `bson:"starting" json:"starting"`
	StartingAt   time.Time `bson:"starting_at,omitempty" json:"starting_at,omitempty"`
	Submitting   bool      `bson:"submitting" json:"submitting"`
	SubmittingAt time.Time `bson:"submitting_at,omitempty" json:"submitting_at,omitempty"`

	Result *models.AttemptResult `bson:"result,omitempty" json:"result,omitempty"`
	// Degraded marks a resumed result whose per-question detail could not be
	// fetched; review renders empty for such attempts.
	Degraded bool `bson:"degraded" json:"degraded"`

	StartedAt time.Time `bson:"started_at" json:"started_at"`
	Deadline  time.Time `bson:"deadline" json:"deadline"`
}

// NewSession seeds a session in the summary phase with an identity display
// order. Resumption is applied afterwards by the service via SeedResult.
func NewSession(id string, quiz models.Quiz, learningSessionID string) *Session {
	order := make([]int, len(quiz.Questions))
	for i := range order {
		order[i] = i
	}
	return &Session{
		ID:                id,
		LearningSessionID: learningSessionID,
		Quiz:              quiz,
		Phase:             PhaseSummary,
		Answers:           map[int]int{},
		Order:             order,
	}
}
