// SPDX-License-Identifier: Unlicense OR MIT

package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	up       key.Binding
	down     key.Binding
	open     key.Binding
	closeAll key.Binding
	mode     key.Binding
	quit     key.Binding
}

var defaultKeyMap = keymap{
	up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "Up"),
	),
	down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "Down"),
	),
	open: key.NewBinding(
		key.WithKeys("o", "enter"),
		key.WithHelp("o", "Open/close item"),
	),
	closeAll: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "Close all"),
	),
	mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "Toggle mode"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
}

func (k keymap) help() []key.Binding {
	return []key.Binding{k.up, k.down, k.open, k.closeAll, k.mode, k.quit}
}
