package override

import (
	"testing"
	"time"
)

func TestActiveToday(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.Local)

	if (State{}).ActiveToday(now) {
		t.Error("expected zero state to not be active today")
	}

	sameDay := time.Date(2024, 6, 3, 0, 5, 0, 0, time.Local)
	if !(State{LastUsed: &sameDay}).ActiveToday(now) {
		t.Error("expected same-day use to count as active today")
	}

	yesterday := time.Date(2024, 6, 2, 23, 55, 0, 0, time.Local)
	if (State{LastUsed: &yesterday}).ActiveToday(now) {
		t.Error("expected yesterday's use to self-expire at midnight")
	}
}

func TestActive(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	if (State{}).Active(now) {
		t.Error("expected unset expiry to be inactive")
	}

	future := now.Add(10 * time.Minute)
	if !(State{ExpiresAt: &future}).Active(now) {
		t.Error("expected future expiry to be active")
	}

	past := now.Add(-time.Second)
	if (State{ExpiresAt: &past}).Active(now) {
		t.Error("expected past expiry to be inactive")
	}

	if (State{ExpiresAt: &now}).Active(now) {
		t.Error("expected expiry exactly now to be inactive")
	}
}

func TestRemaining(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	if got := (State{}).Remaining(now); got != 0 {
		t.Errorf("expected zero remaining for unset expiry, got %v", got)
	}

	future := now.Add(10 * time.Minute)
	if got := (State{ExpiresAt: &future}).Remaining(now); got != 10*time.Minute {
		t.Errorf("expected 10m remaining, got %v", got)
	}

	past := now.Add(-time.Minute)
	if got := (State{ExpiresAt: &past}).Remaining(now); got != 0 {
		t.Errorf("expected remaining to clamp at zero, got %v", got)
	}
}
