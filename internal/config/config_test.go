package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"unused-image-finder/internal/folder"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UNUSEDIMG_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, "parent", cfg.Scan.PrefixSource)
	require.False(t, cfg.Scan.SkipHidden)
	require.EqualValues(t, 760, cfg.UI.WindowWidth)
	require.EqualValues(t, 640, cfg.UI.WindowHeight)
	require.True(t, cfg.UI.ConfirmExit)
	require.True(t, cfg.UI.Preview)
	require.Equal(t, 320, cfg.UI.ThumbnailSize)
	require.Equal(t, folder.Options{PrefixSource: folder.PrefixParent}, cfg.ListOptions())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte(`
[log]
level = "debug"
format = "json"

[scan]
prefix_source = "folder"
skip_hidden = true

[ui]
thumbnail_size = 200
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("UNUSEDIMG_CONFIG", path)
	t.Setenv("UNUSEDIMG_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 200, cfg.UI.ThumbnailSize)
	require.Equal(t, folder.Options{PrefixSource: folder.PrefixFolder, SkipHidden: true}, cfg.ListOptions())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scan]\nprefix_source = \"grandparent\"\n"), 0o644))
	t.Setenv("UNUSEDIMG_CONFIG", path)

	_, err := Load()
	require.ErrorContains(t, err, "scan.prefix_source")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	good := Config{
		Log:  LogConfig{Level: "info", Format: "console"},
		Scan: ScanConfig{PrefixSource: "parent"},
		UI:   UIConfig{WindowWidth: 100, WindowHeight: 100, ThumbnailSize: 64},
	}
	require.NoError(t, good.Validate())

	bad := good
	bad.Log.Format = "xml"
	require.Error(t, bad.Validate())

	bad = good
	bad.UI.WindowHeight = 0
	require.Error(t, bad.Validate())

	bad = good
	bad.UI.ThumbnailSize = -1
	require.Error(t, bad.Validate())
}

func TestPathHonoursEnv(t *testing.T) {
	t.Setenv("UNUSEDIMG_CONFIG", "/tmp/custom.toml")
	require.Equal(t, "/tmp/custom.toml", Path())
}
