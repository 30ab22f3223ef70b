package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10.0, cfg.Display.RefreshRate)
	assert.Equal(t, "coarse", cfg.Display.Charset)
	assert.Equal(t, 60, cfg.Lookup.CheckInterval)
	assert.Equal(t, 5, cfg.Lookup.Timeout)
	assert.Equal(t, "map.png", cfg.Map.Path)
	assert.InDelta(t, 1.17647, cfg.Projection.LatCorrection, 0.0001)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapip.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[display]
refresh_rate = 2.5
charset = "fine"
mark_ocean = true

[projection]
lat_correction = 1.0

[lookup]
check_interval = 300
mmdb = "GeoLite2-City.mmdb"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Display.RefreshRate)
	assert.Equal(t, "fine", cfg.Display.Charset)
	assert.True(t, cfg.Display.MarkOcean)
	assert.Equal(t, 1.0, cfg.Projection.LatCorrection)
	assert.Equal(t, 300, cfg.Lookup.CheckInterval)
	assert.Equal(t, "GeoLite2-City.mmdb", cfg.Lookup.MMDB)

	// Untouched sections keep their defaults.
	assert.Equal(t, "https://ipinfo.io", cfg.Lookup.GeoURL)
	assert.Equal(t, "map.png", cfg.Map.Path)
}

func TestLoadMissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[display` ), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}
