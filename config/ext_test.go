package config

import (
	"os"
	"path/filepath"
	"testing"

	"mex/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExtractorConfigs(t *testing.T) {
	dir := t.TempDir()
	configBody := `
rai:
  http_proxy: http://proxy.local:3128
  geo_bypass_ip_block: 79.0.0.0/10
nrk:
  disabled: true
`
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, extConfigPath), []byte(configBody), 0o644,
	))
	t.Chdir(dir)

	require.NoError(t, LoadExtractorConfigs())

	raiConfig := GetExtractorConfig(&models.Extractor{CodeName: "rai"})
	require.NotNil(t, raiConfig)
	assert.Equal(t, "http://proxy.local:3128", raiConfig.HTTPProxy)
	assert.Equal(t, "79.0.0.0/10", raiConfig.GeoBypassIPBlock)
	assert.False(t, raiConfig.IsDisabled)

	nrkConfig := GetExtractorConfig(&models.Extractor{CodeName: "nrk"})
	require.NotNil(t, nrkConfig)
	assert.True(t, nrkConfig.IsDisabled)

	assert.Nil(t, GetExtractorConfig(&models.Extractor{CodeName: "ertflix"}))
}

func TestLoadExtractorConfigsMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, LoadExtractorConfigs())
	assert.Nil(t, GetExtractorConfig(&models.Extractor{CodeName: "rai"}))
}

func TestLoadExtractorConfigsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, extConfigPath), []byte("rai: [not a mapping"), 0o644,
	))
	t.Chdir(dir)
	assert.Error(t, LoadExtractorConfigs())
}

func TestSetExtractorConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, LoadExtractorConfigs())

	SetExtractorConfig("livestreamfails", &models.ExtractorConfig{IsDisabled: true})
	cfg := GetExtractorConfig(&models.Extractor{CodeName: "livestreamfails"})
	require.NotNil(t, cfg)
	assert.True(t, cfg.IsDisabled)
}
