package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"attempt-engine/internal/engine"
	"attempt-engine/internal/event"
	"attempt-engine/internal/models"
	"attempt-engine/internal/repository"
	"attempt-engine/internal/upstream"

	"github.com/google/uuid"
)

// Publisher is the slice of the event publisher the service needs.
type Publisher interface {
	Publish(eventType string, payload interface{}) error
}

// AttemptService orchestrates the engine state machine around the upstream
// quiz service and the session store. Engine sessions are saved after every
// mutation; in-flight guards are persisted before the network call they
// protect so a repeated trigger cannot produce a second call.
type AttemptService struct {
	Store  repository.SessionStore
	Quiz   upstream.QuizService
	Events Publisher
	Now    func() time.Time
}

func NewAttemptService(store repository.SessionStore, quiz upstream.QuizService, events Publisher) *AttemptService {
	return &AttemptService{
		Store:  store,
		Quiz:   quiz,
		Events: events,
		Now:    time.Now,
	}
}

// Open creates (or returns) the engine session for a quiz within a learning
// session, performing the awaited resume-on-load step: look up the attempt
// history, fetch the latest submitted attempt's detail, and land directly in
// the result phase when a graded attempt exists. The history check never
// blocks first use; on failure the session simply lands on summary.
func (s *AttemptService) Open(ctx context.Context, quiz models.Quiz, learningSessionID string) (*engine.Session, error) {
	if quiz.ID != "" && learningSessionID != "" {
		existing, err := s.Store.FindOpen(ctx, quiz.ID, learningSessionID)
		if err == nil {
			return existing, nil
		}
		// Only a confirmed miss may create a new session; a store failure here
		// could otherwise leave two sessions for the same attempt.
		if !errors.Is(err, repository.ErrSessionNotFound) {
			return nil, err
		}
	}

	sess := engine.NewSession(uuid.NewString(), quiz, learningSessionID)
	if quiz.ID != "" {
		s.resume(ctx, sess)
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.publish(event.AttemptOpened, map[string]interface{}{
		"session_id": sess.ID,
		"quiz_id":    quiz.ID,
		"phase":      sess.Phase,
	})
	return sess, nil
}

func (s *AttemptService) resume(ctx context.Context, sess *engine.Session) {
	history, err := s.Quiz.ListMyAttempts(ctx, sess.Quiz.ID)
	if err != nil {
		log.Printf("attempt history lookup failed for quiz %s: %v", sess.Quiz.ID, err)
		return
	}
	prior, ok := models.LatestSubmitted(history)
	if !ok || prior.SubmittedAt == nil || prior.ID == "" {
		return
	}

	detail, err := s.Quiz.GetAttemptByID(ctx, prior.ID)
	if err == nil {
		sess.SeedResult(detail, engine.RebuildAnswers(sess.Quiz, detail.Answers), false)
		return
	}

	// Detail unavailable: degrade to the summary fields. Review will render
	// empty for this attempt instead of failing the whole flow.
	log.Printf("attempt detail fetch failed for attempt %s: %v", prior.ID, err)
	result := &models.AttemptResult{
		AttemptID:     prior.ID,
		StartedAt:     prior.StartedAt,
		SubmittedAt:   prior.SubmittedAt,
		AttemptNumber: prior.AttemptNumber,
	}
	if prior.Score != nil {
		result.Score = *prior.Score
	}
	if prior.Passed != nil {
		result.Passed = *prior.Passed
	}
	sess.SeedResult(result, nil, true)
}

// Get loads an engine session by id.
func (s *AttemptService) Get(ctx context.Context, sessionID string) (*engine.Session, error) {
	return s.Store.FindByID(ctx, sessionID)
}

// Start creates a new attempt upstream and moves the session into the
// questions phase. The persisted starting guard makes repeated triggers
// produce exactly one upstream call.
func (s *AttemptService) Start(ctx context.Context, sessionID string) (*engine.Session, error) {
	sess, err := s.Store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.BeginStart(s.Now()); err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}

	attemptID, err := s.Quiz.StartAttempt(ctx, sess.Quiz.ID, sess.LearningSessionID)
	if err != nil {
		sess.FailStart()
		if serr := s.Store.Save(ctx, sess); serr != nil {
			log.Printf("failed to clear start guard for session %s: %v", sess.ID, serr)
		}
		return nil, fmt.Errorf("start attempt: %w", err)
	}

	sess.CompleteStart(attemptID, 0, s.Now())
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.publish(event.AttemptStarted, map[string]interface{}{
		"session_id": sess.ID,
		"quiz_id":    sess.Quiz.ID,
		"attempt_id": attemptID,
	})
	return sess, nil
}

// Finish submits the completed answer map for grading. On upstream failure
// the session stays in the questions phase with every answer intact.
func (s *AttemptService) Finish(ctx context.Context, sessionID string) (*engine.Session, error) {
	sess, err := s.Store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	answers, err := sess.BeginFinish(s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}

	result, err := s.Quiz.SubmitAttempt(ctx, sess.Quiz.ID, sess.AttemptID, answers)
	if err != nil {
		sess.FailFinish()
		if serr := s.Store.Save(ctx, sess); serr != nil {
			log.Printf("failed to clear submit guard for session %s: %v", sess.ID, serr)
		}
		return nil, fmt.Errorf("submit attempt: %w", err)
	}

	sess.CompleteFinish(result)
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.publish(event.AttemptSubmitted, map[string]interface{}{
		"session_id": sess.ID,
		"quiz_id":    sess.Quiz.ID,
		"attempt_id": sess.AttemptID,
		"score":      result.Score,
		"passed":     result.Passed,
	})
	return sess, nil
}

// Select records a write-once option choice for the current question.
func (s *AttemptService) Select(ctx context.Context, sessionID string, optionIndex int) (*engine.Session, error) {
	var questionID string
	sess, err := s.mutate(ctx, sessionID, func(sess *engine.Session) error {
		if sess.Phase == engine.PhaseQuestions && len(sess.Quiz.Questions) > 0 {
			questionID = sess.Quiz.Questions[sess.CurrentQuestionIndex()].ID
		}
		return sess.Select(optionIndex)
	})
	if err != nil {
		return nil, err
	}
	s.publish(event.AttemptAnswered, map[string]interface{}{
		"session_id":  sess.ID,
		"question_id": questionID,
	})
	return sess, nil
}

func (s *AttemptService) Next(ctx context.Context, sessionID string) (*engine.Session, error) {
	return s.mutate(ctx, sessionID, (*engine.Session).Next)
}

func (s *AttemptService) Prev(ctx context.Context, sessionID string) (*engine.Session, error) {
	return s.mutate(ctx, sessionID, (*engine.Session).Prev)
}

func (s *AttemptService) Jump(ctx context.Context, sessionID string, position int) (*engine.Session, error) {
	return s.mutate(ctx, sessionID, func(sess *engine.Session) error {
		return sess.Jump(position)
	})
}

func (s *AttemptService) ToggleHint(ctx context.Context, sessionID string) (*engine.Session, error) {
	return s.mutate(ctx, sessionID, (*engine.Session).ToggleHint)
}

func (s *AttemptService) Review(ctx context.Context, sessionID string) (*engine.Session, error) {
	return s.mutate(ctx, sessionID, (*engine.Session).EnterReview)
}

func (s *AttemptService) BackToResult(ctx context.Context, sessionID string) (*engine.Session, error) {
	return s.mutate(ctx, sessionID, (*engine.Session).BackToResult)
}

func (s *AttemptService) Retake(ctx context.Context, sessionID string) (*engine.Session, error) {
	sess, err := s.mutate(ctx, sessionID, (*engine.Session).Retake)
	if err != nil {
		return nil, err
	}
	s.publish(event.AttemptRetaken, map[string]interface{}{
		"session_id": sess.ID,
		"quiz_id":    sess.Quiz.ID,
	})
	return sess, nil
}

func (s *AttemptService) mutate(ctx context.Context, sessionID string, fn func(*engine.Session) error) (*engine.Session, error) {
	sess, err := s.Store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *AttemptService) publish(eventType string, payload interface{}) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(eventType, payload); err != nil {
		log.Printf("failed to publish %s: %v", eventType, err)
	}
}
