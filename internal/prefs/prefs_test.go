package prefs

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func openTemp(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	data, err := gdata.Open(gdata.Config{AppName: "flappy_prefs_test"})
	require.NoError(t, err)
	return data
}

func TestDefaults(t *testing.T) {
	m := NewManager(nil, quiet())

	assert.False(t, m.Persistent())
	assert.False(t, m.Muted())
	assert.InDelta(t, 0.8, m.Volume(), 1e-9)
	assert.Equal(t, 0, m.Best("pipes"))
	assert.NoError(t, m.Save(), "memory-only save is a no-op")
}

func TestMuteSilencesVolume(t *testing.T) {
	m := NewManager(nil, quiet())

	assert.True(t, m.ToggleMute())
	assert.Equal(t, 0.0, m.Volume())

	assert.False(t, m.ToggleMute())
	assert.InDelta(t, 0.8, m.Volume(), 1e-9)
}

func TestSetVolumeClamps(t *testing.T) {
	m := NewManager(nil, quiet())

	m.SetVolume(2)
	assert.Equal(t, 1.0, m.Volume())
	m.SetVolume(-1)
	assert.Equal(t, 0.0, m.Volume())
}

func TestRecordBest(t *testing.T) {
	m := NewManager(nil, quiet())

	assert.True(t, m.RecordBest("pipes", 3))
	assert.False(t, m.RecordBest("pipes", 3), "ties do not replace the best")
	assert.False(t, m.RecordBest("pipes", 1))
	assert.True(t, m.RecordBest("pipes", 5))
	assert.Equal(t, 5, m.Best("pipes"))
	assert.Equal(t, 0, m.Best("sound"))
}

func TestSettingsReturnsCopy(t *testing.T) {
	m := NewManager(nil, quiet())
	m.RecordBest("pipes", 4)

	s := m.Settings()
	s.Best["pipes"] = 100

	assert.Equal(t, 4, m.Best("pipes"))
}

func TestSaveAndReload(t *testing.T) {
	data := openTemp(t)

	m := NewManager(data, quiet())
	require.True(t, m.Persistent())
	m.ToggleMute()
	m.SetVolume(0.4)
	m.RecordBest("scroll", 7)
	require.NoError(t, m.Save())

	reloaded := NewManager(data, quiet())
	assert.True(t, reloaded.Muted())
	assert.InDelta(t, 0.4, reloaded.Settings().Volume, 1e-9)
	assert.Equal(t, 7, reloaded.Best("scroll"))
}

func TestLoadRejectsGarbage(t *testing.T) {
	data := openTemp(t)
	require.NoError(t, data.SaveObjectProp(settingsObject, settingsProperty, []byte("muted: [oops")))

	m := NewManager(data, quiet())
	assert.Error(t, m.Load())
	assert.False(t, m.Muted(), "bad data falls back to defaults")
	assert.InDelta(t, 0.8, m.Volume(), 1e-9)
}
