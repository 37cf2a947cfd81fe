package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SoarinFerret/AppWarden/internal/override"
	"github.com/SoarinFerret/AppWarden/internal/schedule"
)

func testWindows(t *testing.T) []schedule.TimeWindow {
	t.Helper()
	w, err := schedule.ParseWindow("Breakfast", "09:00-09:30")
	assert.NoError(t, err)
	return []schedule.TimeWindow{w}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := OpenFile(path, nil)
	assert.NoError(t, err)
	defer s.Close()

	assert.Empty(t, s.Windows())
	assert.Empty(t, s.Apps())
	assert.Equal(t, override.State{}, s.Override())

	windows := testWindows(t)
	assert.NoError(t, s.SetWindows(windows))
	assert.NoError(t, s.SetApps([]string{"steam", "discord"}))

	now := time.Now().Truncate(time.Second)
	expiry := now.Add(45 * time.Minute)
	assert.NoError(t, s.SetOverride(override.State{LastUsed: &now, ExpiresAt: &expiry}))

	// Reopen to prove it all hit disk.
	s2, err := OpenFile(path, nil)
	assert.NoError(t, err)
	defer s2.Close()

	got := s2.Windows()
	assert.Len(t, got, 1)
	assert.Equal(t, windows[0].ID, got[0].ID)
	assert.Equal(t, "Breakfast", got[0].Label)
	assert.Equal(t, []string{"steam", "discord"}, s2.Apps())

	ov := s2.Override()
	assert.NotNil(t, ov.LastUsed)
	assert.NotNil(t, ov.ExpiresAt)
	assert.True(t, ov.ExpiresAt.Equal(expiry))
}

func TestFileStoreSettersPreserveOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := OpenFile(path, nil)
	assert.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.SetApps([]string{"steam"}))
	assert.NoError(t, s.SetWindows(testWindows(t)))

	now := time.Now()
	assert.NoError(t, s.SetOverride(override.State{LastUsed: &now}))

	assert.Equal(t, []string{"steam"}, s.Apps())
	assert.Len(t, s.Windows(), 1)
}

func TestFileStoreCorruptFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := OpenFile(path, nil)
	assert.NoError(t, err)
	defer s.Close()

	assert.Empty(t, s.Windows())
	assert.Equal(t, override.State{}, s.Override())

	// Writes recover the file.
	assert.NoError(t, s.SetApps([]string{"steam"}))
	assert.Equal(t, []string{"steam"}, s.Apps())
}

func TestFileStoreCorruptValueDegradesToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"allowedWindows": "definitely not a window list"}`
	assert.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := OpenFile(path, nil)
	assert.NoError(t, err)
	defer s.Close()

	assert.Empty(t, s.Windows())
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := OpenSQLite(path, nil)
	assert.NoError(t, err)
	defer s.Close()

	assert.Empty(t, s.Windows())

	windows := testWindows(t)
	assert.NoError(t, s.SetWindows(windows))
	assert.NoError(t, s.SetApps([]string{"steam"}))

	got := s.Windows()
	assert.Len(t, got, 1)
	assert.Equal(t, windows[0].ID, got[0].ID)
	assert.Equal(t, []string{"steam"}, s.Apps())

	// Overwrite, never append.
	assert.NoError(t, s.SetApps([]string{"discord"}))
	assert.Equal(t, []string{"discord"}, s.Apps())
}

func TestMemoryStore(t *testing.T) {
	s := OpenMemory()
	defer s.Close()

	assert.Empty(t, s.Windows())
	assert.NoError(t, s.SetWindows(testWindows(t)))
	assert.Len(t, s.Windows(), 1)
}
