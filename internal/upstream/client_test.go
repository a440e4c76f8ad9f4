package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"attempt-engine/internal/models"
)

func TestStartAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/quizzes/quiz-1/attempts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			SessionID string `json:"session_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.SessionID != "ls1" {
			t.Errorf("expected session id ls1, got %q", body.SessionID)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "att-1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	id, err := c.StartAttempt(context.Background(), "quiz-1", "ls1")
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	if id != "att-1" {
		t.Errorf("expected att-1, got %q", id)
	}
}

func TestSubmitAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quizzes/quiz-1/attempts/att-1/submit" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body struct {
			Answers []models.SubmittedAnswer `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.Answers) != 2 || body.Answers[0].SelectedOptionID != "a" {
			t.Errorf("unexpected payload: %+v", body.Answers)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"attempt": models.AttemptResult{AttemptID: "att-1", Score: 50},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	result, err := c.SubmitAttempt(context.Background(), "quiz-1", "att-1", []models.SubmittedAnswer{
		{QuestionID: "q1", SelectedOptionID: "a"},
		{QuestionID: "q2", SelectedOptionID: "d"},
	})
	if err != nil {
		t.Fatalf("submit attempt: %v", err)
	}
	if result.AttemptID != "att-1" || result.Score != 50 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestListMyAttempts(t *testing.T) {
	submitted := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/quizzes/quiz-1/attempts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]models.AttemptSummary{
			{ID: "att-1", SubmittedAt: &submitted, AttemptNumber: 1},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	history, err := c.ListMyAttempts(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(history) != 1 || history[0].ID != "att-1" {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestGetAttemptByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/attempts/att-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.AttemptResult{
			AttemptID: "att-1",
			Score:     80,
			Answers: []models.AnswerResult{
				{QuestionID: "q1", SelectedOptionID: "a", Correct: true},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	result, err := c.GetAttemptByID(context.Background(), "att-1")
	if err != nil {
		t.Fatalf("get attempt: %v", err)
	}
	if result.Score != 80 || len(result.Answers) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "attempt not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	if _, err := c.GetAttemptByID(context.Background(), "missing"); err == nil {
		t.Fatal("expected an error for a non-2xx status")
	}
}

func TestUserHeaderForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-User-ID"); got != "user-7" {
			t.Errorf("expected user header forwarded, got %q", got)
		}
		json.NewEncoder(w).Encode([]models.AttemptSummary{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user-7", 5*time.Second)
	if _, err := c.ListMyAttempts(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("list attempts: %v", err)
	}
}
