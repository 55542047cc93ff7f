package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/provreg/internal/manifest"
)

const testManifest = `
provider "media" {
  authority = "media"
  component = "com.example.media/.MediaProvider"
  owner_uid = 310007
}

provider "settings" {
  authority = "settings"
  component = "com.example.settings/.SettingsProvider"
  singleton = true
}
`

func newTestApp(t *testing.T) (*App, *Config, *strings.Builder) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "providers.hcl"), []byte(testManifest), 0o644))

	cfg, err := NewConfig(Config{
		ManifestPath: dir,
		Command:      CommandDump,
		Timeout:      time.Second,
		LogFormat:    "text",
		LogLevel:     "error",
	})
	require.NoError(t, err)

	var out strings.Builder
	var logs strings.Builder
	a, err := NewApp(&out, &logs, cfg, manifest.NewLoader())
	require.NoError(t, err)
	return a, cfg, &out
}

func TestRunDump(t *testing.T) {
	a, cfg, out := newTestApp(t)

	require.NoError(t, a.Run(context.Background(), cfg))

	assert.Contains(t, out.String(), "Published global providers (by component):")
	assert.Contains(t, out.String(), "Published tenant 3 providers (by component):")
	assert.Contains(t, out.String(), "com.example.media/.MediaProvider")
}

func TestRunFind(t *testing.T) {
	a, cfg, out := newTestApp(t)
	cfg.Command = CommandFind
	cfg.Query = "all"

	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Equal(t, 2, strings.Count(out.String(), "PROVIDER "))
}

func TestRunFindMiss(t *testing.T) {
	a, cfg, out := newTestApp(t)
	cfg.Command = CommandFind
	cfg.Query = "zz-no-such-provider"

	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Contains(t, out.String(), `No providers match "zz-no-such-provider"`)
}

func TestNewAppFailsOnMissingManifests(t *testing.T) {
	cfg, err := NewConfig(Config{
		ManifestPath: filepath.Join(t.TempDir(), "nope"),
		Command:      CommandDump,
	})
	require.NoError(t, err)

	var out, logs strings.Builder
	_, err = NewApp(&out, &logs, cfg, manifest.NewLoader())
	assert.Error(t, err)
}

func TestNewConfigValidation(t *testing.T) {
	_, err := NewConfig(Config{Command: CommandDump})
	assert.Error(t, err, "manifest path is required")

	_, err = NewConfig(Config{ManifestPath: "x", Command: CommandFind})
	assert.Error(t, err, "find requires a query")

	_, err = NewConfig(Config{ManifestPath: "x", Command: "explode"})
	assert.Error(t, err)
}
