package backend

import (
	"os"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// ProcessShielder is the production Shielder. It restricts the selected
// applications by stopping their processes (SIGSTOP) and lifts the
// restriction by resuming them (SIGCONT). Both signals are idempotent on an
// already stopped or running process, so reapplying the same state is safe.
// Each call rescans /proc: processes launched since the last call must be
// caught by the periodic reconciliation tick.
type ProcessShielder struct {
	apps func() []string
	log  *zap.Logger
}

// NewProcessShielder builds a shielder over the current application
// selection. The selection is looked up on every call; if it is absent the
// call is a no-op.
func NewProcessShielder(apps func() []string, log *zap.Logger) *ProcessShielder {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcessShielder{apps: apps, log: log}
}

func (p *ProcessShielder) SetShielded(enabled bool) error {
	apps := p.apps()
	if len(apps) == 0 {
		return nil
	}

	names := make(map[string]bool, len(apps))
	for _, a := range apps {
		// /proc/<pid>/comm truncates to 15 bytes.
		if len(a) > 15 {
			a = a[:15]
		}
		names[a] = true
	}

	sig := syscall.SIGCONT
	if enabled {
		sig = syscall.SIGSTOP
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		comm, err := os.ReadFile("/proc/" + entry.Name() + "/comm")
		if err != nil {
			continue
		}
		if !names[strings.TrimSpace(string(comm))] {
			continue
		}
		if err := syscall.Kill(pid, sig); err != nil {
			p.log.Debug("signal failed", zap.Int("pid", pid), zap.Error(err))
		}
	}
	return nil
}
