// SPDX-License-Identifier: Unlicense OR MIT

// Command swipedemo shows lists of swipeable items in a Gio window or
// in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/zorro/swipe/config"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	itemCount      int
	rootCmd        = &cobra.Command{
		Use:   "swipedemo",
		Short: "Swipeable list demo",
		Long:  `swipedemo - Lists of items revealing actions when swiped sideways`,
		RunE:  runTUI,
	}

	gioCmd = &cobra.Command{
		Use:   "gio",
		Short: "Show the list in a window",
		Args:  cobra.NoArgs,
		RunE:  runGio,
	}

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Show the list in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about swipedemo",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}
)

var errApp = errors.New("application error")

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	rootCmd.PersistentFlags().IntVarP(&itemCount, "items", "n", 50, "Number of list items")
	rootCmd.AddCommand(gioCmd, tuiCmd, versionCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("swipedemo - swipeable list demo\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)       //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)        //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)          //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)   //nolint:forbidigo
}

// setup loads the configuration and starts the file logger. Reloaded
// configurations are sent on changes.
func setup(changes chan<- config.Config) (*config.Loader, config.Config, io.Closer, error) {
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return nil, config.Config{}, nil, errors.Join(err, errApp)
	}

	loader := config.NewLoader(changes)
	if cfgFile != "" {
		loader.SetConfigFile(cfgFile)
	}
	userConfig, errConfig := loader.Read()
	if errConfig != nil {
		return nil, config.Config{}, nil, errors.Join(errApp, errConfig)
	}

	// The terminal demo owns the console, so logs go to a file.
	logFile, errLogger := config.LoggerInit(config.Path(config.DefaultLogName), userConfig.Level())
	if errLogger != nil {
		return nil, config.Config{}, nil, errors.Join(errLogger, errApp)
	}

	slog.Info("Starting swipedemo", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()), slog.String("config", userConfig.String()))
	loader.Watch()

	return loader, userConfig, logFile, nil
}

func closeLog(closer io.Closer) {
	if err := closer.Close(); err != nil {
		slog.Error("Failed to close log file", slog.String("error", err.Error()))
	}
}

func itemNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Message %d", i+1)
	}

	return names
}
