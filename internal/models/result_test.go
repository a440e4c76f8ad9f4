package models

import (
	"testing"
	"time"
)

func TestLatestSubmitted(t *testing.T) {
	older := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

	t.Run("empty history", func(t *testing.T) {
		if _, ok := LatestSubmitted(nil); ok {
			t.Error("empty history must yield nothing")
		}
	})

	t.Run("most recent submission wins", func(t *testing.T) {
		got, ok := LatestSubmitted([]AttemptSummary{
			{ID: "old", SubmittedAt: &older},
			{ID: "new", SubmittedAt: &newer},
			{ID: "open"},
		})
		if !ok || got.ID != "new" {
			t.Errorf("expected new, got %+v", got)
		}
	})

	t.Run("falls back to first when none submitted", func(t *testing.T) {
		got, ok := LatestSubmitted([]AttemptSummary{
			{ID: "first"},
			{ID: "second"},
		})
		if !ok || got.ID != "first" {
			t.Errorf("expected first, got %+v", got)
		}
	})
}

func TestOptionIDSynthesis(t *testing.T) {
	q := Question{
		ID: "q1",
		Options: []Option{
			{ID: "opt-x"},
			{}, // no id: letter shim
			{},
		},
	}

	if got := q.OptionID(0); got != "opt-x" {
		t.Errorf("explicit id must win, got %q", got)
	}
	if got := q.OptionID(1); got != "b" {
		t.Errorf("expected synthesized letter b, got %q", got)
	}
	if got := q.OptionID(9); got != "" {
		t.Errorf("out of range must yield empty, got %q", got)
	}

	if got := q.OptionIndex("opt-x"); got != 0 {
		t.Errorf("expected index 0, got %d", got)
	}
	if got := q.OptionIndex("c"); got != 2 {
		t.Errorf("letter id must resolve for id-less options, got %d", got)
	}
	if got := q.OptionIndex("zzz"); got != -1 {
		t.Errorf("unknown id must yield -1, got %d", got)
	}
}
