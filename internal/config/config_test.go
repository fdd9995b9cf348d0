// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

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
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, "/static/map.html", cfg.Map.Path)
	assert.Equal(t, 4000, cfg.Map.LoadTimeoutMillis)
	assert.Equal(t, 250, cfg.Map.SettleMillis)
	assert.Equal(t, 5000, cfg.Map.SnapshotTimeoutMillis)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
version = "1"

[backend]
url = "http://example.test:8080"
request_timeout_secs = 30

[ui]
theme = "light"
`), 0600))

	cfg := Default()
	require.NoError(t, LoadTOML(cfg, path))
	cfg.SetDefaults()

	assert.Equal(t, "http://example.test:8080", cfg.Backend.URL)
	assert.Equal(t, 30, cfg.Backend.RequestTimeoutSecs)
	assert.Equal(t, "light", cfg.UI.Theme)
	// Untouched sections keep defaults
	assert.Equal(t, "/static/map.html", cfg.Map.Path)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ASSISTANT_BACKEND_URL", "http://override:9999")
	t.Setenv("ASSISTANT_REQUEST_TIMEOUT_SECS", "15")
	t.Setenv("ASSISTANT_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://override:9999", cfg.Backend.URL)
	assert.Equal(t, 15, cfg.Backend.RequestTimeoutSecs)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestApplyEnvOverrides_IgnoresBadTimeout(t *testing.T) {
	t.Setenv("ASSISTANT_REQUEST_TIMEOUT_SECS", "not-a-number")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 120, cfg.Backend.RequestTimeoutSecs)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Backend.URL = "ftp://nope"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Backend.URL = "http://"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.UI.Theme = "solarized"
	assert.Error(t, cfg.Validate())
}

func TestSetDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, 250, cfg.Map.SettleMillis)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	// Saving through SaveTOML requires the home config dir, so write
	// directly here and exercise the encoder against a temp path.
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.URL = "http://roundtrip:5000"

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0600)
	require.NoError(t, err)
	require.NoError(t, writeConfig(file, cfg))
	require.NoError(t, file.Close())

	loaded := Default()
	require.NoError(t, LoadTOML(loaded, path))
	assert.Equal(t, "http://roundtrip:5000", loaded.Backend.URL)
}
