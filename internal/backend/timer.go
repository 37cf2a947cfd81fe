package backend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SoarinFerret/AppWarden/internal/schedule"
)

// TimerMonitor is the production Monitor: an in-process event source that
// sleeps until the next registered boundary and emits IntervalStart /
// IntervalEnd events on its channel. Registration changes wake the loop so
// the pending timer never refers to a stale interval set.
type TimerMonitor struct {
	mu      sync.Mutex
	entries map[string]*timerEntry
	events  chan Event
	wake    chan struct{}
	now     func() time.Time
	log     *zap.Logger
}

type timerEntry struct {
	sched      Schedule
	firedStart bool
}

func NewTimerMonitor(log *zap.Logger) *TimerMonitor {
	if log == nil {
		log = zap.NewNop()
	}
	return &TimerMonitor{
		entries: make(map[string]*timerEntry),
		events:  make(chan Event, 16),
		wake:    make(chan struct{}, 1),
		now:     time.Now,
		log:     log,
	}
}

// Events delivers boundary notifications. The channel is never closed.
func (m *TimerMonitor) Events() <-chan Event { return m.events }

func (m *TimerMonitor) StartMonitoring(tag string, s Schedule) error {
	m.mu.Lock()
	m.entries[tag] = &timerEntry{sched: s}
	m.mu.Unlock()
	m.poke()
	return nil
}

func (m *TimerMonitor) StopMonitoringAll() error {
	m.mu.Lock()
	m.entries = make(map[string]*timerEntry)
	m.mu.Unlock()
	m.poke()
	return nil
}

func (m *TimerMonitor) poke() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Run drives the timer loop until the context is cancelled.
func (m *TimerMonitor) Run(ctx context.Context) error {
	for {
		at, due := m.nextAfter(m.now())
		if len(due) == 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-m.wake:
				continue
			}
		}

		timer := time.NewTimer(at.Sub(m.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-m.wake:
			timer.Stop()
		case <-timer.C:
			m.deliver(due)
		}
	}
}

// nextAfter returns the earliest upcoming boundary instant and the events
// due at it. One-shot intervals skip a start whose occurrence already
// passed (it would otherwise recur tomorrow) and are removed after their
// end fires.
func (m *TimerMonitor) nextAfter(now time.Time) (time.Time, []Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var at time.Time
	var due []Event
	consider := func(t time.Time, ev Event) {
		switch {
		case at.IsZero() || t.Before(at):
			at = t
			due = []Event{ev}
		case t.Equal(at):
			due = append(due, ev)
		}
	}

	for tag, e := range m.entries {
		startAt := nextOccurrence(e.sched.Start, now)
		endAt := nextOccurrence(e.sched.End, now)
		if e.sched.Repeats {
			consider(startAt, Event{Kind: IntervalStart, Tag: tag})
			consider(endAt, Event{Kind: IntervalEnd, Tag: tag})
			continue
		}
		if !e.firedStart && startAt.Before(endAt) {
			consider(startAt, Event{Kind: IntervalStart, Tag: tag})
		}
		consider(endAt, Event{Kind: IntervalEnd, Tag: tag})
	}
	return at, due
}

func (m *TimerMonitor) deliver(due []Event) {
	m.mu.Lock()
	var out []Event
	for _, ev := range due {
		e, ok := m.entries[ev.Tag]
		if !ok {
			continue
		}
		if !e.sched.Repeats {
			if ev.Kind == IntervalStart {
				e.firedStart = true
			} else {
				delete(m.entries, ev.Tag)
			}
		}
		out = append(out, ev)
	}
	m.mu.Unlock()

	for _, ev := range out {
		select {
		case m.events <- ev:
		default:
			m.log.Warn("event channel full, dropping",
				zap.String("tag", ev.Tag), zap.String("kind", ev.Kind.String()))
		}
	}
}

// nextOccurrence returns the first instant strictly after now with the
// given wall-clock time.
func nextOccurrence(t schedule.TimeOfDay, now time.Time) time.Time {
	at := t.At(now)
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}
