package backend

import (
	"fmt"
	"strings"

	"github.com/SoarinFerret/AppWarden/internal/schedule"
)

// EventKind distinguishes the two boundary callbacks the backend delivers.
type EventKind int

const (
	IntervalStart EventKind = iota
	IntervalEnd
)

func (k EventKind) String() string {
	if k == IntervalStart {
		return "interval-start"
	}
	return "interval-end"
}

// Event is one inbound boundary notification, attributed by tag.
type Event struct {
	Kind EventKind
	Tag  string
}

// Schedule describes one monitored interval. Repeating intervals recur
// daily; one-shot intervals fire their start and end once and are dropped.
type Schedule struct {
	Start   schedule.TimeOfDay
	End     schedule.TimeOfDay
	Repeats bool
}

// TagOverride marks the single one-shot override interval.
const TagOverride = "override"

const blockedPeriodPrefix = "blocked-period-"

// BlockedPeriodTag names the i-th registered blocked period.
func BlockedPeriodTag(i int) string {
	return fmt.Sprintf("%s%d", blockedPeriodPrefix, i)
}

// IsBlockedPeriodTag reports whether the tag belongs to a blocked period.
func IsBlockedPeriodTag(tag string) bool {
	return strings.HasPrefix(tag, blockedPeriodPrefix)
}

// Monitor is the registration surface of the enforcement backend. Both
// operations are idempotent; registration failures are best-effort from the
// caller's point of view.
type Monitor interface {
	StartMonitoring(tag string, s Schedule) error
	StopMonitoringAll() error
}

// Shielder applies or removes the restriction on the selected application
// set. Reapplying the same value must be a safe no-op, and a missing
// application selection makes either call a no-op.
type Shielder interface {
	SetShielded(enabled bool) error
}
