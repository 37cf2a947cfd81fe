package engine

import (
	"fmt"
	"time"

	"github.com/SoarinFerret/AppWarden/internal/schedule"
)

// Status is the composite state shown to the user. Purely derived from the
// persisted windows and override state; never stored.
type Status struct {
	Blocked                  bool   `json:"blocked"`
	Detail                   string `json:"detail"`
	OverrideAvailable        bool   `json:"overrideAvailable"`
	OverrideRemainingSeconds int64  `json:"overrideRemainingSeconds"`
}

// Status computes the composite block/allow state at the given instant. An
// active override wins; an empty window set means blocked; otherwise it is
// a point-membership test against the allowed windows.
func (s *Service) Status(now time.Time) Status {
	windows := s.repo.Windows()
	state := s.repo.Override()

	st := Status{OverrideAvailable: !state.ActiveToday(now)}

	switch {
	case state.Active(now):
		remaining := state.Remaining(now)
		st.OverrideRemainingSeconds = int64(remaining / time.Second)
		st.Detail = fmt.Sprintf("Override active, %dm %ds remaining",
			st.OverrideRemainingSeconds/60, st.OverrideRemainingSeconds%60)
	case len(windows) == 0:
		st.Blocked = true
		st.Detail = "No schedule configured"
	case schedule.IsBlocked(windows, now):
		st.Blocked = true
		st.Detail = "Outside allowed windows"
	default:
		st.Detail = "Within an allowed window"
	}
	return st
}
