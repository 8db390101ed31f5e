package model

import (
	"testing"
	"time"
)

func TestCompletionTimestamp_SetOnComplete(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	got := CompletionTimestamp(nil, StatusCompleted, now)
	if got == nil || !got.Equal(now) {
		t.Fatalf("completing a task should stamp now, got %v", got)
	}
}

func TestCompletionTimestamp_IdempotentWhileCompleted(t *testing.T) {
	original := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	later := original.Add(48 * time.Hour)

	got := CompletionTimestamp(&original, StatusCompleted, later)
	if got == nil || !got.Equal(original) {
		t.Errorf("re-saving a completed task must keep the original timestamp, got %v", got)
	}
}

func TestCompletionTimestamp_ClearedOnReopen(t *testing.T) {
	original := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for _, status := range []string{StatusToDo, StatusInProgress, StatusBlocked} {
		if got := CompletionTimestamp(&original, status, original.Add(time.Hour)); got != nil {
			t.Errorf("status %q should clear the timestamp, got %v", status, got)
		}
	}
}

func TestCompletionTimestamp_NoStaleResurrection(t *testing.T) {
	// Complete, reopen, complete again: the second completion must stamp the
	// new time, not resurrect the first one.
	first := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	cleared := CompletionTimestamp(&first, StatusInProgress, first.Add(time.Hour))
	if cleared != nil {
		t.Fatalf("reopen should clear, got %v", cleared)
	}
	second := first.Add(72 * time.Hour)
	got := CompletionTimestamp(cleared, StatusCompleted, second)
	if got == nil || !got.Equal(second) {
		t.Errorf("re-completion should stamp the new time %v, got %v", second, got)
	}
}

func TestValidStatusAndPriority(t *testing.T) {
	for _, s := range []string{StatusToDo, StatusInProgress, StatusCompleted, StatusBlocked} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("Done") || ValidStatus("") {
		t.Error("unknown statuses should be rejected")
	}
	if !ValidPriority(PriorityHigh) || ValidPriority("Urgent") {
		t.Error("priority validation mismatch")
	}
}
