package schedule

import (
	"fmt"
	"sort"
	"time"
)

// TimeOfDay is a wall-clock time at minute granularity.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) TotalMinutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func timeOfDayFromMinutes(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// At returns the instant on now's calendar day with this wall-clock time.
func (t TimeOfDay) At(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
}

// BlockedPeriod is one gap between allowed windows. Ephemeral: recomputed
// from the persisted windows on every (re)apply, never stored.
type BlockedPeriod struct {
	Start TimeOfDay
	End   TimeOfDay
}

// endOfDayMinutes is 23:59, the last monitorable minute of the day.
const endOfDayMinutes = 23*60 + 59

// ComputeBlockedPeriods derives the gaps between allowed windows over one
// day, sorted ascending. A single cursor sweeps from midnight: overlapping
// and adjacent windows collapse naturally because the cursor only moves
// forward. An empty window set yields an empty result; the caller owns the
// blocked-by-default fallback in that case.
func ComputeBlockedPeriods(windows []TimeWindow) []BlockedPeriod {
	if len(windows) == 0 {
		return nil
	}

	sorted := make([]TimeWindow, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTotalMinutes() < sorted[j].StartTotalMinutes()
	})

	var periods []BlockedPeriod
	cursor := 0
	for _, w := range sorted {
		if cursor < w.StartTotalMinutes() {
			periods = append(periods, BlockedPeriod{
				Start: timeOfDayFromMinutes(cursor),
				End:   timeOfDayFromMinutes(w.StartTotalMinutes()),
			})
		}
		if end := w.EndTotalMinutes(); end > cursor {
			cursor = end
		}
	}

	if cursor < endOfDayMinutes {
		periods = append(periods, BlockedPeriod{
			Start: timeOfDayFromMinutes(cursor),
			End:   timeOfDayFromMinutes(endOfDayMinutes),
		})
	}
	return periods
}

// IsBlocked reports whether access should be blocked at the given instant:
// true unless now falls inside some window's [start, end). An empty window
// set blocks everything.
func IsBlocked(windows []TimeWindow, now time.Time) bool {
	minute := now.Hour()*60 + now.Minute()
	for _, w := range windows {
		if w.Contains(minute) {
			return false
		}
	}
	return true
}
