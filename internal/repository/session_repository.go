package repository

import (
	"context"
	"errors"
	"strconv"

	"attempt-engine/internal/engine"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSessionNotFound = errors.New("engine session not found")

// SessionStore persists engine sessions between requests so an interrupted
// attempt keeps its answers.
type SessionStore interface {
	Save(ctx context.Context, s *engine.Session) error
	FindByID(ctx context.Context, id string) (*engine.Session, error)
	FindOpen(ctx context.Context, quizID, learningSessionID string) (*engine.Session, error)
	Delete(ctx context.Context, id string) error
}

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("engine_sessions")}
}

// sessionDoc wraps engine.Session for storage. Mongo requires string map
// keys, so the answer map is stringified on the way in and parsed back out.
type sessionDoc struct {
	engine.Session `bson:",inline"`
	AnswerDoc      map[string]int `bson:"answers"`
	QuizID         string         `bson:"quiz_id"`
}

func toDoc(s *engine.Session) sessionDoc {
	answers := make(map[string]int, len(s.Answers))
	for k, v := range s.Answers {
		answers[strconv.Itoa(k)] = v
	}
	return sessionDoc{Session: *s, AnswerDoc: answers, QuizID: s.Quiz.ID}
}

func fromDoc(d sessionDoc) *engine.Session {
	s := d.Session
	s.Answers = make(map[int]int, len(d.AnswerDoc))
	for k, v := range d.AnswerDoc {
		if idx, err := strconv.Atoi(k); err == nil {
			s.Answers[idx] = v
		}
	}
	return &s
}

func (r *SessionRepository) Save(ctx context.Context, s *engine.Session) error {
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": s.ID}, toDoc(s), options.Replace().SetUpsert(true))
	return err
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*engine.Session, error) {
	var doc sessionDoc
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return fromDoc(doc), nil
}

func (r *SessionRepository) FindOpen(ctx context.Context, quizID, learningSessionID string) (*engine.Session, error) {
	var doc sessionDoc
	filter := bson.M{"quiz_id": quizID, "learning_session_id": learningSessionID}
	err := r.Col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return fromDoc(doc), nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
