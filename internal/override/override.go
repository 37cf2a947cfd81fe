package override

import "time"

// State records the single daily override. LastUsed persists for the rest
// of the calendar day to prevent reactivation; ExpiresAt is cleared as soon
// as the override interval ends. Never deleted, only overwritten.
type State struct {
	LastUsed  *time.Time `json:"lastUsedDate,omitempty"`
	ExpiresAt *time.Time `json:"overrideExpiresAt,omitempty"`
}

// ActiveToday reports whether the override was already used on now's
// calendar day. The day boundary is a pure date comparison, so the state
// self-expires at midnight without any scheduled reset.
func (s State) ActiveToday(now time.Time) bool {
	if s.LastUsed == nil {
		return false
	}
	y1, m1, d1 := s.LastUsed.Local().Date()
	y2, m2, d2 := now.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Active reports whether an override is currently suspending the block.
func (s State) Active(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.After(now)
}

// Remaining returns the time left on the running override, or zero.
func (s State) Remaining(now time.Time) time.Duration {
	if s.ExpiresAt == nil {
		return 0
	}
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
