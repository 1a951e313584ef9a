// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path"
	"strings"

	"github.com/adrg/xdg"

	"github.com/zorro/swipe/items"
	"github.com/zorro/swipe/swipe"
)

var (
	ErrConfigRead = errors.New("failed to read config file")
	ErrLoggerInit = errors.New("failed to initialize logger")
)

const (
	ConfigDirName     = "swipedemo"
	DefaultConfigName = "swipedemo"
	DefaultLogName    = "swipedemo.log"
	EnvPrefix         = "swipedemo"
)

// Config is the demo configuration. Offsets are in device independent
// pixels and converted by Options.
type Config struct {
	DragEdge                  string  `mapstructure:"drag_edge"`
	LeftEdgeSwipeOffset       float32 `mapstructure:"left_edge_swipe_offset"`
	RightEdgeSwipeOffset      float32 `mapstructure:"right_edge_swipe_offset"`
	TopEdgeSwipeOffset        float32 `mapstructure:"top_edge_swipe_offset"`
	BottomEdgeSwipeOffset     float32 `mapstructure:"bottom_edge_swipe_offset"`
	ShowMode                  string  `mapstructure:"show_mode"`
	ClickToClose              bool    `mapstructure:"click_to_close"`
	WillOpenPercentAfterOpen  float32 `mapstructure:"will_open_percent_after_open"`
	WillOpenPercentAfterClose float32 `mapstructure:"will_open_percent_after_close"`
	// Mode is the item manager mode of the demo lists.
	Mode          string `mapstructure:"mode"`
	CloseOnScroll bool   `mapstructure:"close_on_scroll"`
	LogLevel      string `mapstructure:"log_level"`
}

// Options converts the configuration to controller options. pxPerDp
// scales the edge offsets.
func (c Config) Options(pxPerDp float32) (swipe.Options, error) {
	opts := swipe.DefaultOptions()
	edges, err := swipe.ParseEdges(c.DragEdge)
	if err != nil {
		return swipe.Options{}, err
	}
	if edges != 0 {
		opts.Edges = edges
	}
	if c.ShowMode != "" {
		if opts.Style, err = swipe.ParseRevealStyle(c.ShowMode); err != nil {
			return swipe.Options{}, err
		}
	}
	for e, dp := range map[swipe.Edge]float32{
		swipe.Left:   c.LeftEdgeSwipeOffset,
		swipe.Right:  c.RightEdgeSwipeOffset,
		swipe.Top:    c.TopEdgeSwipeOffset,
		swipe.Bottom: c.BottomEdgeSwipeOffset,
	} {
		opts.Offsets[e] = int(math.Round(float64(dp * pxPerDp)))
	}
	opts.ClickToClose = c.ClickToClose
	opts.AfterOpen = c.WillOpenPercentAfterOpen
	opts.AfterClose = c.WillOpenPercentAfterClose
	if err := opts.Validate(); err != nil {
		return swipe.Options{}, err
	}
	return opts, nil
}

// ItemMode parses Mode.
func (c Config) ItemMode() (items.Mode, error) {
	if c.Mode == "" {
		return items.Single, nil
	}
	return items.ParseMode(c.Mode)
}

// Level parses LogLevel, defaulting to Info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// LoggerInit sets up the slog global handler to write to a log file, as
// the terminal demo owns the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(logPath)
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, ErrLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}

func (c Config) String() string {
	return fmt.Sprintf("edges=%s style=%s mode=%s", c.DragEdge, c.ShowMode, c.Mode)
}
