package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"attempt-engine/internal/models"
)

// QuizService is the logical contract with the remote quiz backend. Grading
// is server-authoritative; the engine never judges correctness locally.
type QuizService interface {
	StartAttempt(ctx context.Context, quizID, sessionID string) (string, error)
	SubmitAttempt(ctx context.Context, quizID, attemptID string, answers []models.SubmittedAnswer) (*models.AttemptResult, error)
	ListMyAttempts(ctx context.Context, quizID string) ([]models.AttemptSummary, error)
	GetAttemptByID(ctx context.Context, attemptID string) (*models.AttemptResult, error)
}

type Client struct {
	BaseURL    string
	UserHeader string
	HTTP       *http.Client
}

func NewClient(baseURL, userHeader string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL:    baseURL,
		UserHeader: userHeader,
		HTTP:       &http.Client{Timeout: timeout},
	}
}

type startAttemptReq struct {
	SessionID string `json:"session_id"`
}

type startAttemptResp struct {
	ID string `json:"id"`
}

func (c *Client) StartAttempt(ctx context.Context, quizID, sessionID string) (string, error) {
	var resp startAttemptResp
	path := fmt.Sprintf("/quizzes/%s/attempts", quizID)
	if err := c.doJSON(ctx, http.MethodPost, path, startAttemptReq{SessionID: sessionID}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

type submitAttemptReq struct {
	Answers []models.SubmittedAnswer `json:"answers"`
}

type submitAttemptResp struct {
	Attempt models.AttemptResult `json:"attempt"`
}

func (c *Client) SubmitAttempt(ctx context.Context, quizID, attemptID string, answers []models.SubmittedAnswer) (*models.AttemptResult, error) {
	var resp submitAttemptResp
	path := fmt.Sprintf("/quizzes/%s/attempts/%s/submit", quizID, attemptID)
	if err := c.doJSON(ctx, http.MethodPost, path, submitAttemptReq{Answers: answers}, &resp); err != nil {
		return nil, err
	}
	return &resp.Attempt, nil
}

func (c *Client) ListMyAttempts(ctx context.Context, quizID string) ([]models.AttemptSummary, error) {
	var resp []models.AttemptSummary
	path := fmt.Sprintf("/quizzes/%s/attempts", quizID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetAttemptByID(ctx context.Context, attemptID string) (*models.AttemptResult, error) {
	var resp models.AttemptResult
	path := fmt.Sprintf("/attempts/%s", attemptID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserHeader != "" {
		req.Header.Set("X-User-ID", c.UserHeader)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("quiz service: %s %s: status %d: %s", method, path, resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
