package ipc

import (
	"encoding/json"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/SoarinFerret/AppWarden/internal/engine"
	"github.com/SoarinFerret/AppWarden/internal/schedule"
	"github.com/SoarinFerret/AppWarden/internal/store"
)

const (
	ObjectPath    = "/io/github/soarinferret/appwarden"
	InterfaceName = "io.github.soarinferret.appwarden.Manager"
	ServiceName   = "io.github.soarinferret.appwarden"
)

// Manager is the D-Bus surface of the daemon. Mutating calls re-register
// the monitored intervals immediately so enforcement never waits for the
// next boundary.
type Manager struct {
	Service *engine.Service
	Repo    *store.Store
}

func (m *Manager) Status() (string, *dbus.Error) {
	data, err := json.Marshal(m.Service.Status(time.Now()))
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return string(data), nil
}

func (m *Manager) ActivateOverride() (string, *dbus.Error) {
	state, err := m.Service.ActivateOverride()
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return string(data), nil
}

func (m *Manager) ListWindows() (string, *dbus.Error) {
	data, err := json.Marshal(m.Repo.Windows())
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return string(data), nil
}

func (m *Manager) AddWindow(label, timeRange string) (string, *dbus.Error) {
	w, err := schedule.ParseWindow(label, timeRange)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	windows := append(m.Repo.Windows(), w)
	if err := m.Repo.SetWindows(windows); err != nil {
		return "", dbus.MakeFailedError(err)
	}
	m.Service.ApplySchedules()
	return w.ID.String(), nil
}

func (m *Manager) RemoveWindow(id string) *dbus.Error {
	windows := m.Repo.Windows()
	kept := windows[:0]
	for _, w := range windows {
		if w.ID.String() != id {
			kept = append(kept, w)
		}
	}
	if err := m.Repo.SetWindows(kept); err != nil {
		return dbus.MakeFailedError(err)
	}
	m.Service.ApplySchedules()
	return nil
}

func (m *Manager) SetApps(apps []string) *dbus.Error {
	if err := m.Repo.SetApps(apps); err != nil {
		return dbus.MakeFailedError(err)
	}
	// The shield may need to latch onto the new selection right away.
	m.Service.ReapplyShieldsIfCurrentlyBlocked()
	return nil
}

func (m *Manager) GetApps() ([]string, *dbus.Error) {
	apps := m.Repo.Apps()
	if apps == nil {
		apps = []string{}
	}
	return apps, nil
}

func (m *Manager) ExportSchedule() (string, *dbus.Error) {
	return schedule.ExportICal(m.Repo.Windows(), time.Now()), nil
}
