package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"attempt-engine/internal/engine"
	"attempt-engine/internal/models"
	"attempt-engine/internal/presenter"
	"attempt-engine/internal/repository"
	"attempt-engine/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	Service *service.AttemptService
}

func NewAttemptHandler(s *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{Service: s}
}

// OpenSession creates the engine session for a quiz, performing the awaited
// resume-on-load step before anything else is allowed.
func (h *AttemptHandler) OpenSession(c *gin.Context) {
	var req struct {
		Quiz      models.Quiz `json:"quiz"`
		SessionID string      `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.Service.Open(context.Background(), req.Quiz, req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to open session",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, h.render(sess))
}

// GetView renders the view for the session's current phase.
func (h *AttemptHandler) GetView(c *gin.Context) {
	sess, err := h.Service.Get(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, h.render(sess))
}

func (h *AttemptHandler) Start(c *gin.Context) {
	sess, err := h.Service.Start(context.Background(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(sess))
}

func (h *AttemptHandler) SelectOption(c *gin.Context) {
	var req struct {
		OptionIndex *int `json:"option_index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.Service.Select(context.Background(), c.Param("id"), *req.OptionIndex)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(sess))
}

func (h *AttemptHandler) Next(c *gin.Context) {
	h.transition(c, h.Service.Next)
}

func (h *AttemptHandler) Prev(c *gin.Context) {
	h.transition(c, h.Service.Prev)
}

func (h *AttemptHandler) Jump(c *gin.Context) {
	var req struct {
		Position *int `json:"position" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.Service.Jump(context.Background(), c.Param("id"), *req.Position)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(sess))
}

func (h *AttemptHandler) ToggleHint(c *gin.Context) {
	h.transition(c, h.Service.ToggleHint)
}

func (h *AttemptHandler) Finish(c *gin.Context) {
	h.transition(c, h.Service.Finish)
}

func (h *AttemptHandler) Review(c *gin.Context) {
	h.transition(c, h.Service.Review)
}

func (h *AttemptHandler) BackToResult(c *gin.Context) {
	h.transition(c, h.Service.BackToResult)
}

func (h *AttemptHandler) Retake(c *gin.Context) {
	h.transition(c, h.Service.Retake)
}

func (h *AttemptHandler) transition(c *gin.Context, fn func(context.Context, string) (*engine.Session, error)) {
	sess, err := fn(context.Background(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(sess))
}

func (h *AttemptHandler) render(sess *engine.Session) gin.H {
	out := gin.H{
		"session_id": sess.ID,
		"phase":      sess.Phase,
		"attempt":    sess.AttemptInfo(),
	}
	switch sess.Phase {
	case engine.PhaseSummary:
		out["summary"] = presenter.BuildSummary(sess)
	case engine.PhaseQuestions:
		out["question"] = presenter.BuildQuestion(sess, time.Now())
	case engine.PhaseResult:
		out["result"] = presenter.BuildResult(sess)
	case engine.PhaseReview:
		out["result"] = presenter.BuildResult(sess)
		out["review"] = presenter.BuildReview(sess)
	}
	return out
}

func (h *AttemptHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, engine.ErrStartInFlight), errors.Is(err, engine.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrMissingQuizID),
		errors.Is(err, engine.ErrMissingSessionID),
		errors.Is(err, engine.ErrMissingAttemptID),
		errors.Is(err, engine.ErrWrongPhase),
		errors.Is(err, engine.ErrAnswerLocked),
		errors.Is(err, engine.ErrUnanswered),
		errors.Is(err, engine.ErrNotAnswered),
		errors.Is(err, engine.ErrOutOfRange):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Quiz service request failed",
			"details": err.Error(),
		})
	}
}
