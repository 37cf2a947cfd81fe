package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SoarinFerret/AppWarden/internal/backend"
	"github.com/SoarinFerret/AppWarden/internal/config"
	"github.com/SoarinFerret/AppWarden/internal/override"
	"github.com/SoarinFerret/AppWarden/internal/schedule"
	"github.com/SoarinFerret/AppWarden/internal/store"
)

// ErrOverrideUsed is returned when the daily override was already spent.
var ErrOverrideUsed = errors.New("override already used today")

// Service owns the blocking decisions: it converts allowed windows into
// monitored blocked periods, answers "is it blocked now", and runs the
// override lifecycle. All mutations re-read the store first so concurrent
// callback handlers see a minimal race window.
type Service struct {
	repo    *store.Store
	monitor backend.Monitor
	shield  backend.Shielder
	cfg     *config.Config
	log     *zap.Logger

	// mu serializes mutations: IPC calls arrive on their own goroutines,
	// concurrently with the event loop.
	mu     sync.Mutex
	now    func() time.Time
	notify func(summary, body string) error
	warned bool
}

func New(repo *store.Store, monitor backend.Monitor, shield backend.Shielder, cfg *config.Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		monitor: monitor,
		shield:  shield,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
		notify:  backend.Notify,
	}
}

// ApplySchedules recomputes the blocked periods from the persisted windows
// and re-registers them with the backend, one repeating interval per period
// tagged by index. With no windows configured, everything is blocked, so a
// single full-day interval is registered instead to keep the backend
// re-asserting the shield. Registration is best-effort: failures degrade
// background re-application only, never the live decision.
func (s *Service) ApplySchedules() {
	s.mu.Lock()
	defer s.mu.Unlock()

	windows := s.repo.Windows()
	periods := schedule.ComputeBlockedPeriods(windows)

	if err := s.monitor.StopMonitoringAll(); err != nil {
		s.log.Warn("failed to clear monitored intervals", zap.Error(err))
	}

	if len(windows) == 0 {
		s.startMonitoring(backend.BlockedPeriodTag(0), backend.Schedule{
			Start:   schedule.TimeOfDay{Hour: 0, Minute: 0},
			End:     schedule.TimeOfDay{Hour: 23, Minute: 59},
			Repeats: true,
		})
	} else {
		for i, p := range periods {
			s.startMonitoring(backend.BlockedPeriodTag(i), backend.Schedule{
				Start:   p.Start,
				End:     p.End,
				Repeats: true,
			})
		}
	}

	s.reapplyShields()
}

// ActivateOverride lifts the block for the configured duration, at most
// once per calendar day. On success the new state is persisted and a
// one-shot interval is registered so the backend re-blocks at expiry even
// if this process is gone by then.
func (s *Service) ActivateOverride() (override.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	state := s.repo.Override()
	if state.ActiveToday(now) {
		return state, ErrOverrideUsed
	}

	s.setShielded(false)

	expiry := now.Add(s.cfg.OverrideDuration.Std())
	state = override.State{LastUsed: &now, ExpiresAt: &expiry}
	if err := s.repo.SetOverride(state); err != nil {
		return state, err
	}
	s.warned = false

	s.startMonitoring(backend.TagOverride, backend.Schedule{
		Start:   schedule.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()},
		End:     schedule.TimeOfDay{Hour: expiry.Hour(), Minute: expiry.Minute()},
		Repeats: false,
	})

	s.log.Info("override activated", zap.Time("expires_at", expiry))
	return state, nil
}

// HandleEvent dispatches one backend boundary notification. Events with no
// matching local state (say, after a reinstall) fall through harmlessly:
// the shielder no-ops without an application selection.
func (s *Service) HandleEvent(ev backend.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("backend event", zap.String("kind", ev.Kind.String()), zap.String("tag", ev.Tag))

	switch {
	case backend.IsBlockedPeriodTag(ev.Tag) && ev.Kind == backend.IntervalStart:
		s.setShielded(true)
	case backend.IsBlockedPeriodTag(ev.Tag) && ev.Kind == backend.IntervalEnd:
		s.setShielded(false)
	case ev.Tag == backend.TagOverride && ev.Kind == backend.IntervalEnd:
		s.setShielded(true)
		s.clearOverrideExpiry()
	}
}

// clearOverrideExpiry drops ExpiresAt but keeps LastUsed, so the override
// stays spent until the next calendar day. Reads the latest persisted state
// immediately before writing.
func (s *Service) clearOverrideExpiry() {
	state := s.repo.Override()
	state.ExpiresAt = nil
	if err := s.repo.SetOverride(state); err != nil {
		s.log.Error("failed to clear override expiry", zap.Error(err))
	}
}

// ReapplyShieldsIfCurrentlyBlocked reconciles the shield with the current
// composite status. Called whenever windows or the app selection change, so
// enforcement does not wait for the next interval boundary. Idempotent:
// repeated calls with unchanged state re-assert the same shield value.
func (s *Service) ReapplyShieldsIfCurrentlyBlocked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reapplyShields()
}

func (s *Service) reapplyShields() {
	s.setShielded(s.Status(s.now()).Blocked)
}

func (s *Service) setShielded(enabled bool) {
	if err := s.shield.SetShielded(enabled); err != nil {
		s.log.Warn("shield update failed", zap.Bool("enabled", enabled), zap.Error(err))
	}
}

func (s *Service) startMonitoring(tag string, sched backend.Schedule) {
	if err := s.monitor.StartMonitoring(tag, sched); err != nil {
		s.log.Warn("failed to register interval", zap.String("tag", tag), zap.Error(err))
	}
}

// Run consumes backend events and reconciles on a fixed cadence until the
// context is cancelled.
func (s *Service) Run(ctx context.Context, events <-chan backend.Event) error {
	s.ApplySchedules()

	ticker := time.NewTicker(s.cfg.PollInterval.Std())
	defer ticker.Stop()

	s.log.Info("engine started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("engine shutting down")
			return nil
		case ev := <-events:
			s.HandleEvent(ev)
		case <-ticker.C:
			s.ReapplyShieldsIfCurrentlyBlocked()
			s.maybeWarnOverrideExpiry()
			s.repo.Touch()
		}
	}
}

// maybeWarnOverrideExpiry sends a single desktop notification once the
// running override drops below the warn threshold.
func (s *Service) maybeWarnOverrideExpiry() {
	if s.cfg.Notify != nil && !*s.cfg.Notify {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	state := s.repo.Override()
	if !state.Active(now) {
		s.warned = false
		return
	}
	remaining := state.Remaining(now)
	if s.warned || remaining > s.cfg.WarnBefore.Std() {
		return
	}
	s.warned = true
	minutes := int(remaining.Round(time.Minute) / time.Minute)
	if err := s.notify("Override ending", formatWarning(minutes)); err != nil {
		s.log.Debug("notification failed", zap.Error(err))
	}
}

func formatWarning(minutes int) string {
	if minutes <= 1 {
		return "Apps will be blocked again in under a minute"
	}
	return fmt.Sprintf("Apps will be blocked again in about %d minutes", minutes)
}
