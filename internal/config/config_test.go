package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server": "http://game.local:9000",
		"frontend": "terminal",
		"blinkDelay": "50ms",
		"pollInterval": "5s",
		"tolerance": 25
	}`), 0o644))

	LoadConfig(path)

	assert.Equal(t, "http://game.local:9000", Config.Server)
	assert.Equal(t, FrontendTerminal, Config.Frontend)
	assert.Equal(t, 50*time.Millisecond, Config.BlinkDelay.Std())
	assert.Equal(t, 5*time.Second, Config.PollInterval.Std())
	assert.Equal(t, 25.0, Config.Tolerance)
	// untouched fields keep defaults
	assert.Equal(t, 10*time.Second, Config.RequestTimeout.Std())
	assert.Equal(t, 50, Config.LogLines)
	assert.NoError(t, Config.Validate())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, Default().BlinkDelay, Config.BlinkDelay)
	assert.Equal(t, 40.0, Config.Tolerance)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DJIRGHA_SERVER", "http://env.local")
	t.Setenv("DJIRGHA_FRONTEND", "preview")
	t.Setenv("DJIRGHA_POLL", "2s")
	t.Setenv("DJIRGHA_TOLERANCE", "12.5")

	LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, "http://env.local", Config.Server)
	assert.Equal(t, FrontendPreview, Config.Frontend)
	assert.Equal(t, 2*time.Second, Config.PollInterval.Std())
	assert.Equal(t, 12.5, Config.Tolerance)
}

func TestValidate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	c.Frontend = "canvas"
	assert.Error(t, c.Validate())

	c = Default()
	c.PollInterval = Duration(-time.Second)
	assert.Error(t, c.Validate())
}
