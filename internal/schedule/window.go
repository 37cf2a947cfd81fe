package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeWindow is one allowed interval within a day, interpreted as
// [start, end) at minute granularity. The struct itself does not enforce
// start < end; ParseWindow does, so anything arriving through the CLI or
// IPC surface is well formed.
type TimeWindow struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	StartHour   int       `json:"startHour"`
	StartMinute int       `json:"startMinute"`
	EndHour     int       `json:"endHour"`
	EndMinute   int       `json:"endMinute"`
}

func (w TimeWindow) StartTotalMinutes() int { return w.StartHour*60 + w.StartMinute }
func (w TimeWindow) EndTotalMinutes() int   { return w.EndHour*60 + w.EndMinute }

// Contains reports whether the given minute-of-day falls inside the window.
func (w TimeWindow) Contains(minuteOfDay int) bool {
	return minuteOfDay >= w.StartTotalMinutes() && minuteOfDay < w.EndTotalMinutes()
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s-%s", clock12(w.StartHour, w.StartMinute), clock12(w.EndHour, w.EndMinute))
}

// clock12 renders a time of day in 12-hour notation, e.g. "6:05 PM".
func clock12(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// ParseWindow parses a "HH:MM-HH:MM" range into a new window with a fresh ID.
func ParseWindow(label, timeRange string) (TimeWindow, error) {
	parts := strings.Split(timeRange, "-")
	if len(parts) != 2 {
		return TimeWindow{}, fmt.Errorf("invalid time range format: expected 'HH:MM-HH:MM'")
	}

	layout := "15:04"
	start, err1 := time.Parse(layout, parts[0])
	end, err2 := time.Parse(layout, parts[1])
	if err1 != nil || err2 != nil {
		return TimeWindow{}, fmt.Errorf("invalid time values: %v, %v", err1, err2)
	}

	w := TimeWindow{
		ID:          uuid.New(),
		Label:       label,
		StartHour:   start.Hour(),
		StartMinute: start.Minute(),
		EndHour:     end.Hour(),
		EndMinute:   end.Minute(),
	}
	if w.StartTotalMinutes() >= w.EndTotalMinutes() {
		return TimeWindow{}, fmt.Errorf("start time %s must be before end time %s", parts[0], parts[1])
	}
	return w, nil
}
