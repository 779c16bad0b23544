package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxfolio.yaml")
	content := `
data_dir: /tmp/trades
platforms: [ibkr]
fetch_start: "2020-06-01"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/trades", cfg.DataDir)
	assert.Equal(t, []string{"ibkr"}, cfg.Platforms)
	assert.Equal(t, "2020-06-01", cfg.FetchStart)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("platforms: [futu]\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, DefaultConfig().FetchStart, cfg.FetchStart)
	assert.Equal(t, []string{"futu"}, cfg.Platforms)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("platforms: ["), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
