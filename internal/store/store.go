package store

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/SoarinFerret/AppWarden/internal/override"
	"github.com/SoarinFerret/AppWarden/internal/schedule"
)

// Keys in the shared store. The same store is read by the daemon and by
// callback handlers running outside its control, so every mutation is a
// read-modify-write against the latest persisted value.
const (
	KeySelectedApps   = "selectedApps"
	KeyAllowedWindows = "allowedWindows"
	KeyOverrideState  = "overrideState"
)

// kv is the backend contract: raw bytes per key.
type kv interface {
	get(key string) ([]byte, bool, error)
	set(key string, value []byte) error
	touch() error
	Close() error
}

// Store exposes typed accessors for the three persisted keys. Reads never
// fail: a missing or undecodable value degrades to its zero default (no
// windows means blocked-by-default, zero override state means never used).
type Store struct {
	kv  kv
	log *zap.Logger
}

func newStore(kv kv, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log}
}

func (s *Store) Close() error { return s.kv.Close() }

// Touch refreshes the store's heartbeat timestamp.
func (s *Store) Touch() {
	if err := s.kv.touch(); err != nil {
		s.log.Debug("store heartbeat failed", zap.Error(err))
	}
}

func (s *Store) Windows() []schedule.TimeWindow {
	var windows []schedule.TimeWindow
	s.decode(KeyAllowedWindows, &windows)
	return windows
}

func (s *Store) SetWindows(windows []schedule.TimeWindow) error {
	return s.encode(KeyAllowedWindows, windows)
}

func (s *Store) Override() override.State {
	var state override.State
	s.decode(KeyOverrideState, &state)
	return state
}

func (s *Store) SetOverride(state override.State) error {
	return s.encode(KeyOverrideState, state)
}

// Apps returns the selected application tokens. The core never inspects
// them beyond an existence check; only the shielder consumes them.
func (s *Store) Apps() []string {
	var apps []string
	s.decode(KeySelectedApps, &apps)
	return apps
}

func (s *Store) SetApps(apps []string) error {
	return s.encode(KeySelectedApps, apps)
}

func (s *Store) decode(key string, dst any) {
	data, ok, err := s.kv.get(key)
	if err != nil {
		s.log.Warn("store read failed, using default", zap.String("key", key), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Warn("store value undecodable, using default", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) encode(key string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.set(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
