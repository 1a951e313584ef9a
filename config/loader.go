// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

// NewLoader returns a loader searching the xdg config dir and the
// working directory. Reloaded configurations are sent on changes when
// the file is modified; changes may be nil.
func NewLoader(changes chan<- Config) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("drag_edge", "right")
	loader.SetDefault("left_edge_swipe_offset", 0)
	loader.SetDefault("right_edge_swipe_offset", 0)
	loader.SetDefault("top_edge_swipe_offset", 0)
	loader.SetDefault("bottom_edge_swipe_offset", 0)
	loader.SetDefault("show_mode", "pull_out")
	loader.SetDefault("click_to_close", false)
	loader.SetDefault("will_open_percent_after_open", 0.75)
	loader.SetDefault("will_open_percent_after_close", 0.25)
	loader.SetDefault("mode", "single")
	loader.SetDefault("close_on_scroll", true)
	loader.SetDefault("log_level", "info")
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)
	loader.AddConfigPath(Path(""))
	loader.AddConfigPath(".")
	loader.AutomaticEnv()

	return &loader
}

// Watch reloads the configuration when the file changes.
func (cl *Loader) Watch() {
	cl.WatchConfig()
	cl.OnConfigChange(cl.onConfigChange)
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if in.Op != fsnotify.Write && in.Op != fsnotify.Rename {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	if cl.changes != nil {
		cl.changes <- config
	}
}

// Read loads the configuration file, if any, and decodes it on top
// of the defaults and environment overrides. A missing file is not an
// error.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, ErrConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, ErrConfigRead)
	}

	if _, err := config.Options(1); err != nil {
		return Config{}, errors.Join(err, ErrConfigRead)
	}

	return config, nil
}
