package backend

import (
	"testing"
	"time"

	"github.com/SoarinFerret/AppWarden/internal/schedule"
)

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	later := nextOccurrence(schedule.TimeOfDay{Hour: 18, Minute: 0}, now)
	if later.Day() != 3 || later.Hour() != 18 {
		t.Errorf("expected today at 18:00, got %v", later)
	}

	passed := nextOccurrence(schedule.TimeOfDay{Hour: 9, Minute: 0}, now)
	if passed.Day() != 4 || passed.Hour() != 9 {
		t.Errorf("expected tomorrow at 09:00, got %v", passed)
	}

	exact := nextOccurrence(schedule.TimeOfDay{Hour: 10, Minute: 0}, now)
	if exact.Day() != 4 {
		t.Errorf("expected an occurrence equal to now to roll to tomorrow, got %v", exact)
	}
}

func TestNextAfterRepeating(t *testing.T) {
	m := NewTimerMonitor(nil)
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	_ = m.StartMonitoring(BlockedPeriodTag(0), Schedule{
		Start:   schedule.TimeOfDay{Hour: 9, Minute: 30},
		End:     schedule.TimeOfDay{Hour: 18, Minute: 0},
		Repeats: true,
	})

	at, due := m.nextAfter(now)
	if at.Hour() != 18 || at.Day() != 3 {
		t.Fatalf("expected next boundary today at 18:00, got %v", at)
	}
	if len(due) != 1 || due[0].Kind != IntervalEnd || due[0].Tag != BlockedPeriodTag(0) {
		t.Errorf("expected the period-end event, got %v", due)
	}

	// Past the end, the next boundary is tomorrow's start.
	at, due = m.nextAfter(time.Date(2024, 6, 3, 18, 30, 0, 0, time.UTC))
	if at.Day() != 4 || at.Hour() != 9 || at.Minute() != 30 {
		t.Fatalf("expected tomorrow at 09:30, got %v", at)
	}
	if len(due) != 1 || due[0].Kind != IntervalStart {
		t.Errorf("expected the period-start event, got %v", due)
	}
}

func TestNextAfterOneShotSkipsPassedStart(t *testing.T) {
	m := NewTimerMonitor(nil)
	// Registered at 10:00 for a 45-minute override: the start instant is
	// "now", which has already passed, so only the end may fire.
	now := time.Date(2024, 6, 3, 10, 0, 30, 0, time.UTC)

	_ = m.StartMonitoring(TagOverride, Schedule{
		Start:   schedule.TimeOfDay{Hour: 10, Minute: 0},
		End:     schedule.TimeOfDay{Hour: 10, Minute: 45},
		Repeats: false,
	})

	at, due := m.nextAfter(now)
	if at.Hour() != 10 || at.Minute() != 45 || at.Day() != 3 {
		t.Fatalf("expected the end boundary at 10:45, got %v", at)
	}
	if len(due) != 1 || due[0].Kind != IntervalEnd || due[0].Tag != TagOverride {
		t.Fatalf("expected only the override end event, got %v", due)
	}

	// After delivery the one-shot is gone.
	m.deliver(due)
	if _, remaining := m.nextAfter(now); len(remaining) != 0 {
		t.Errorf("expected no boundaries after the one-shot fired, got %v", remaining)
	}
}

func TestStopMonitoringAllClearsEntries(t *testing.T) {
	m := NewTimerMonitor(nil)
	_ = m.StartMonitoring(BlockedPeriodTag(0), Schedule{
		Start:   schedule.TimeOfDay{Hour: 0, Minute: 0},
		End:     schedule.TimeOfDay{Hour: 9, Minute: 0},
		Repeats: true,
	})
	_ = m.StopMonitoringAll()

	if _, due := m.nextAfter(time.Now()); len(due) != 0 {
		t.Errorf("expected no boundaries after StopMonitoringAll, got %v", due)
	}
}

func TestDeliverEmitsOnChannel(t *testing.T) {
	m := NewTimerMonitor(nil)
	_ = m.StartMonitoring(BlockedPeriodTag(0), Schedule{
		Start:   schedule.TimeOfDay{Hour: 9, Minute: 0},
		End:     schedule.TimeOfDay{Hour: 17, Minute: 0},
		Repeats: true,
	})

	m.deliver([]Event{{Kind: IntervalStart, Tag: BlockedPeriodTag(0)}})

	select {
	case ev := <-m.Events():
		if ev.Kind != IntervalStart || ev.Tag != BlockedPeriodTag(0) {
			t.Errorf("unexpected event %v", ev)
		}
	default:
		t.Fatal("expected a delivered event on the channel")
	}
}
