package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	t.Setenv(envConfigDir, t.TempDir())

	config, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, themes[0].Name, config.Theme)
	assert.True(t, config.Sound)
	assert.True(t, config.Music)
	assert.Equal(t, 70, config.Volume)
	assert.Equal(t, 1, config.Scale)
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv(envConfigDir, t.TempDir())

	saved := Config{Theme: "Volcanic", Sound: false, Music: true, Volume: 40, Scale: 2}
	require.NoError(t, saveConfig(saved))

	loaded, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadConfigClampsOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envConfigDir, dir)

	data := []byte(`{"theme":"","sound":true,"music":false,"volume":300,"scale":9}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644))

	config, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, themes[0].Name, config.Theme)
	assert.Equal(t, 100, config.Volume)
	assert.Equal(t, 3, config.Scale)
}

func TestLoadConfigRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envConfigDir, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o644))

	config, err := loadConfig()
	require.Error(t, err)
	assert.Equal(t, defaultConfig(), config)
}
