package schedule

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ExportICal renders the allowed windows as an iCalendar feed with one
// daily-recurring event per window, anchored on now's calendar day.
func ExportICal(windows []TimeWindow, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//AppWarden//Allowed Windows//EN")

	for _, w := range windows {
		ev := cal.AddEvent(fmt.Sprintf("%s@appwarden", w.ID))
		ev.SetSummary(w.Label)
		ev.SetStartAt(TimeOfDay{Hour: w.StartHour, Minute: w.StartMinute}.At(now))
		ev.SetEndAt(TimeOfDay{Hour: w.EndHour, Minute: w.EndMinute}.At(now))
		ev.AddRrule("FREQ=DAILY")
	}
	return cal.Serialize()
}
