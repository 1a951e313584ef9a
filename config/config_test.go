// SPDX-License-Identifier: Unlicense OR MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"

	"github.com/zorro/swipe/config"
	"github.com/zorro/swipe/items"
	"github.com/zorro/swipe/swipe"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	return config.NewLoader(nil)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "swipedemo.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestReadDefaults(t *testing.T) {
	loader := newLoader(t)
	cfg, err := loader.Read()
	require.NoError(t, err)
	require.Equal(t, "right", cfg.DragEdge)
	require.InDelta(t, 0.75, cfg.WillOpenPercentAfterOpen, 1e-6)
	require.InDelta(t, 0.25, cfg.WillOpenPercentAfterClose, 1e-6)
	require.True(t, cfg.CloseOnScroll)

	opts, err := cfg.Options(1)
	require.NoError(t, err)
	require.Equal(t, swipe.DragRight, opts.Edges)
	require.Equal(t, swipe.SlideOver, opts.Style)

	mode, err := cfg.ItemMode()
	require.NoError(t, err)
	require.Equal(t, items.Single, mode)
}

func TestReadFile(t *testing.T) {
	loader := newLoader(t)
	loader.SetConfigFile(writeConfig(t, `
drag_edge: left|top
left_edge_swipe_offset: 8
show_mode: lay_down
click_to_close: true
mode: multiple
log_level: debug
`))
	cfg, err := loader.Read()
	require.NoError(t, err)

	opts, err := cfg.Options(2)
	require.NoError(t, err)
	require.Equal(t, swipe.DragLeft|swipe.DragTop, opts.Edges)
	require.Equal(t, swipe.SlideUnder, opts.Style)
	require.Equal(t, 16, opts.Offsets[swipe.Left])
	require.True(t, opts.ClickToClose)
	require.Equal(t, slog.LevelDebug, cfg.Level())

	mode, err := cfg.ItemMode()
	require.NoError(t, err)
	require.Equal(t, items.Multiple, mode)
}

func TestEnvOverride(t *testing.T) {
	loader := newLoader(t)
	t.Setenv("SWIPEDEMO_SHOW_MODE", "slide_under")
	cfg, err := loader.Read()
	require.NoError(t, err)
	require.Equal(t, "slide_under", cfg.ShowMode)
}

func TestReadInvalid(t *testing.T) {
	for _, body := range []string{
		"will_open_percent_after_open: 2\n",
		"drag_edge: diagonal\n",
		"show_mode: sideways\n",
	} {
		loader := newLoader(t)
		loader.SetConfigFile(writeConfig(t, body))
		_, err := loader.Read()
		require.ErrorIs(t, err, config.ErrConfigRead, body)
	}
}

func TestLevel(t *testing.T) {
	require.Equal(t, slog.LevelWarn, config.Config{LogLevel: "warn"}.Level())
	require.Equal(t, slog.LevelInfo, config.Config{LogLevel: "chatty"}.Level())
}

func TestLoggerInit(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logPath := filepath.Join(t.TempDir(), config.DefaultLogName)
	closer, err := config.LoggerInit(logPath, slog.LevelDebug)
	require.NoError(t, err)
	slog.Debug("hello")
	require.NoError(t, closer.Close())

	body, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(body), "hello")

	_, err = config.LoggerInit(filepath.Join(t.TempDir(), "missing", "x.log"), slog.LevelDebug)
	require.ErrorIs(t, err, config.ErrLoggerInit)
}
