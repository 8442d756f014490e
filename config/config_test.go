package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vicrail.dev/vicrail/config"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
data:
  manifestURL: https://example.com/manifest.json
  version: v2
`))
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "https://example.com/manifest.json", cfg.Data.ManifestURL)
	assert.Equal(t, "v2", cfg.Data.Version)
	assert.Equal(t, "Australia/Melbourne", cfg.Data.Timezone)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval())
	assert.Equal(t, 50, cfg.API.MaxDepartures)
	assert.Equal(t, 100, cfg.API.MaxQueryDays)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := config.Parse([]byte(`
server:
  port: 8080
data:
  manifestURL: https://example.com/manifest.json
  version: v2
  refreshIntervalMins: 5
  timezone: Australia/Sydney
api:
  maxDepartures: 20
  maxQueryDays: 7
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval())
	assert.Equal(t, "Australia/Sydney", cfg.Data.Timezone)
	assert.Equal(t, 20, cfg.API.MaxDepartures)
	assert.Equal(t, 7, cfg.API.MaxQueryDays)
}

func TestParseRejectsInvalidConfigs(t *testing.T) {
	cases := map[string]string{
		"missing manifest URL": `
data:
  version: v2
`,
		"manifest URL not a URL": `
data:
  manifestURL: not a url
  version: v2
`,
		"missing version": `
data:
  manifestURL: https://example.com/manifest.json
`,
		"port out of range": `
server:
  port: 70000
data:
  manifestURL: https://example.com/manifest.json
  version: v2
`,
		"negative refresh interval": `
data:
  manifestURL: https://example.com/manifest.json
  version: v2
  refreshIntervalMins: -1
`,
		"unknown timezone": `
data:
  manifestURL: https://example.com/manifest.json
  version: v2
  timezone: Mars/Olympus_Mons
`,
		"not yaml": `{{{`,
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  manifestURL: https://example.com/manifest.json
  version: v2
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", cfg.Data.Version)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
