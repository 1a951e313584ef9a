// SPDX-License-Identifier: Unlicense OR MIT

package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zorro/swipe/swipe"
)

// action is one cell range of a bottom row.
type action struct {
	name  string
	label string
	style lipgloss.Style
}

type rowBottom struct {
	actions []string
	cells   []action
}

var (
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleFooter = lipgloss.NewStyle().Faint(true)
	styleItem   = lipgloss.NewStyle()
	styleCursor = lipgloss.NewStyle().Reverse(true)
	styleOpen   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// bottoms are the bottom rows of the horizontal edges. Vertical edges
// have no room in a one line row.
var bottoms = map[swipe.Edge]rowBottom{
	swipe.Right: newRowBottom(
		action{name: "archive", label: " archive ", style: lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))},
		action{name: "delete", label: " delete  ", style: lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15"))},
	),
	swipe.Left: newRowBottom(
		action{name: "pin", label: "  pin  ", style: lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0"))},
	),
}

func newRowBottom(cells ...action) rowBottom {
	b := rowBottom{cells: cells}
	for _, c := range cells {
		b.actions = append(b.actions, c.name)
	}

	return b
}

func (b rowBottom) bottom() swipe.Element {
	children := make(map[string]image.Rectangle, len(b.cells))
	x := 0
	for _, c := range b.cells {
		w := len([]rune(c.label))
		children[c.name] = image.Rect(x, 0, x+w, 1)
		x += w
	}

	return swipe.Element{Size: image.Pt(x, 1), Children: children}
}

// cell returns the action and rune at column x of the bottom row.
func (b rowBottom) cell(x int) (action, rune, bool) {
	for _, c := range b.cells {
		label := []rune(c.label)
		if x < len(label) {
			return c, label[x], true
		}
		x -= len(label)
	}

	return action{}, 0, false
}

func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	rows := make([]string, 0, len(m.slots)+chromeHeight)
	rows = append(rows, m.header())
	for _, s := range m.slots {
		rows = append(rows, zone.Mark(s.id, m.renderRow(s)))
	}
	rows = append(rows, m.footer())

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) header() string {
	line := fmt.Sprintf("swipedemo  mode: %s  open: %v", m.manager.Mode(), m.manager.OpenItems())

	return styleHeader.Render(truncate.String(line, uint(m.width)))
}

func (m *Model) footer() string {
	help := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}
	line := m.status + "  |  " + strings.Join(help, "  ")

	return styleFooter.Render(truncate.String(line, uint(m.width)))
}

// renderRow draws the surface of s over its visible bottom, one run of
// equally styled cells at a time.
func (m *Model) renderRow(s *slot) string {
	surface := []rune(m.label(s.index))
	sr := s.ctl.SurfaceRect()
	e := s.ctl.Edge()
	br, visible := s.ctl.BottomRect(e)
	visible = visible && s.ctl.BottomVisible(e)

	surfaceStyle := styleItem
	switch {
	case s.index == m.cursor:
		surfaceStyle = styleCursor
	case m.manager.IsOpen(s.index):
		surfaceStyle = styleOpen
	}

	var (
		out   strings.Builder
		run   []rune
		style lipgloss.Style
		owner string
	)
	flush := func() {
		if len(run) > 0 {
			out.WriteString(style.Render(string(run)))
		}
		run = run[:0]
	}
	for x := 0; x < m.width; x++ {
		r, st, own := ' ', styleItem, ""
		switch {
		case x >= sr.Min.X && x < sr.Max.X:
			r, st, own = ' ', surfaceStyle, "surface"
			if i := x - sr.Min.X; i < len(surface) {
				r = surface[i]
			}
		case visible && x >= br.Min.X && x < br.Max.X:
			if a, c, ok := bottoms[e].cell(x - br.Min.X); ok {
				r, st, own = c, a.style, a.name
			}
		}
		if own != owner {
			flush()
			owner, style = own, st
		}
		run = append(run, r)
	}
	flush()

	return out.String()
}

func (m *Model) label(index int) string {
	if index < 0 || index >= len(m.opts.Items) {
		return ""
	}

	return " " + m.opts.Items[index]
}
