// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zorro/swipe/config"
	"github.com/zorro/swipe/internal/tui"
	"github.com/zorro/swipe/items"
)

var errNoTerminal = errors.New("standard output is not a terminal")

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.Join(errNoTerminal, errApp)
	}

	changes := make(chan config.Config)
	loader, userConfig, logFile, err := setup(changes)
	if err != nil {
		return err
	}
	defer closeLog(logFile)
	slog.Debug("Using config", slog.String("path", loader.Path()))

	// One cell is one pixel, so offsets are taken as cells.
	opts, err := userConfig.Options(1)
	if err != nil {
		return errors.Join(err, errApp)
	}
	opts.Logger = slog.Default()
	mode, err := userConfig.ItemMode()
	if err != nil {
		return errors.Join(err, errApp)
	}

	model, err := tui.New(tui.Options{
		Swipe:         opts,
		Mode:          mode,
		CloseOnScroll: userConfig.CloseOnScroll,
		Items:         itemNames(itemCount),
	})
	if err != nil {
		return errors.Join(err, errApp)
	}

	modes := make(chan items.Mode)
	go func() {
		for {
			select {
			case <-cmd.Context().Done():
				return
			case c := <-changes:
				m, errMode := c.ItemMode()
				if errMode != nil {
					slog.Error("Invalid mode", slog.String("error", errMode.Error()))

					continue
				}
				select {
				case modes <- m:
				case <-cmd.Context().Done():
					return
				}
			}
		}
	}()

	return tui.Run(cmd.Context(), model, modes)
}
