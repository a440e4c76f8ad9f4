package presenter

import (
	"testing"
	"time"

	"attempt-engine/internal/engine"
	"attempt-engine/internal/models"
)

func reviewQuiz() models.Quiz {
	return models.Quiz{
		ID: "quiz-r",
		Questions: []models.Question{
			{
				ID:   "q1",
				Text: "first",
				Options: []models.Option{
					{ID: "a", Text: "alpha", Explanation: "alpha is right"},
					{ID: "b", Text: "beta", Explanation: "beta is wrong"},
				},
			},
			{
				ID:   "q2",
				Text: "second",
				Options: []models.Option{
					{ID: "c", Text: "gamma", Explanation: "gamma explanation"},
					{ID: "d", Text: "delta", Explanation: "delta explanation"},
				},
			},
		},
	}
}

func gradedSession(hint string) *engine.Session {
	s := engine.NewSession("s1", reviewQuiz(), "ls1")
	s.SeedResult(&models.AttemptResult{
		AttemptID: "a1",
		Score:     50,
		Answers: []models.AnswerResult{
			{QuestionID: "q1", SelectedOptionID: "a", Correct: true, Hint: hint},
			{QuestionID: "q2", SelectedOptionID: "d", Correct: false},
		},
	}, map[int]int{0: 0, 1: 1}, false)
	return s
}

func TestReviewMarksCorrectSelection(t *testing.T) {
	view := BuildReview(gradedSession(""))

	q1 := view.Questions[0]
	if !q1.Graded {
		t.Fatal("q1 should be graded")
	}
	if q1.Options[0].Mark != MarkCorrect {
		t.Errorf("selected correct option must be marked correct, got %s", q1.Options[0].Mark)
	}
	if q1.Options[1].Mark != MarkNeutral {
		t.Errorf("unselected option must stay neutral, got %s", q1.Options[1].Mark)
	}
	if q1.Options[0].Note != "alpha is right" {
		t.Errorf("note should fall back to the option explanation, got %q", q1.Options[0].Note)
	}
}

func TestReviewNeverDisclosesCorrectAnswer(t *testing.T) {
	view := BuildReview(gradedSession(""))

	q2 := view.Questions[1]
	if q2.Options[1].Mark != MarkWrong {
		t.Errorf("wrong selection must be marked wrong, got %s", q2.Options[1].Mark)
	}
	for _, opt := range q2.Options {
		if opt.Mark == MarkCorrect {
			t.Errorf("option %s marked correct on a missed question", opt.ID)
		}
	}
}

func TestReviewPrefersServerHint(t *testing.T) {
	view := BuildReview(gradedSession("server says so"))
	if note := view.Questions[0].Options[0].Note; note != "server says so" {
		t.Errorf("expected the server hint, got %q", note)
	}
}

func TestReviewDegradedRendersEmpty(t *testing.T) {
	s := engine.NewSession("s1", reviewQuiz(), "ls1")
	s.SeedResult(&models.AttemptResult{AttemptID: "a1", Score: 50}, nil, true)

	view := BuildReview(s)
	for _, q := range view.Questions {
		if q.Graded {
			t.Errorf("question %s should be ungraded in degraded review", q.ID)
		}
		for _, opt := range q.Options {
			if opt.Mark != MarkNeutral || opt.Note != "" {
				t.Errorf("degraded review must not annotate options, got %+v", opt)
			}
		}
	}
}

func TestQuestionViewOptimisticHighlight(t *testing.T) {
	s := engine.NewSession("s1", reviewQuiz(), "ls1")
	if err := s.BeginStart(time.Now()); err != nil {
		t.Fatalf("begin start: %v", err)
	}
	s.CompleteStart("a1", 0, time.Now())
	if err := s.Select(1); err != nil {
		t.Fatalf("select: %v", err)
	}

	view := BuildQuestion(s, time.Now())
	if view.SelectedIndex == nil || *view.SelectedIndex != 1 {
		t.Fatal("selection must be highlighted")
	}
	if !view.Options[1].Selected || view.Options[0].Selected {
		t.Error("only the chosen option carries the highlight")
	}
	if !view.CanNext {
		t.Error("next should unlock once answered")
	}
	if view.ShowFinish {
		t.Error("finish must not show before the last question")
	}
	if len(view.Strip) != 2 || !view.Strip[0].Current || !view.Strip[0].Answered {
		t.Errorf("unexpected strip state: %+v", view.Strip)
	}
}

func TestQuestionViewDeadlineFlag(t *testing.T) {
	quiz := reviewQuiz()
	quiz.TimeLimitSeconds = 60
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := engine.NewSession("s1", quiz, "ls1")
	if err := s.BeginStart(started); err != nil {
		t.Fatalf("begin start: %v", err)
	}
	s.CompleteStart("a1", 0, started)

	deadline := started.Add(60 * time.Second)
	testCases := []struct {
		name string
		now  time.Time
		over bool
	}{
		{"mid attempt", started.Add(30 * time.Second), false},
		{"under a second left", deadline.Add(-500 * time.Millisecond), false},
		{"exactly at deadline", deadline, false},
		{"past deadline", deadline.Add(time.Second), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildQuestion(s, tc.now).OverDeadline; got != tc.over {
				t.Errorf("over_deadline = %v, want %v", got, tc.over)
			}
		})
	}

	unlimited := engine.NewSession("s2", reviewQuiz(), "ls1")
	if err := unlimited.BeginStart(started); err != nil {
		t.Fatalf("begin start: %v", err)
	}
	unlimited.CompleteStart("a2", 0, started)
	if BuildQuestion(unlimited, started.Add(time.Hour)).OverDeadline {
		t.Error("a quiz without a time limit can never be over deadline")
	}
}
