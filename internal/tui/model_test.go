// SPDX-License-Identifier: Unlicense OR MIT

package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zorro/swipe/gesture"
	"github.com/zorro/swipe/items"
	"github.com/zorro/swipe/swipe"
)

func newModel(t *testing.T, mode items.Mode, n int) *Model {
	t.Helper()
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("item %d", i)
	}
	m, err := New(Options{
		Swipe:         swipe.DefaultOptions(),
		Mode:          mode,
		CloseOnScroll: true,
		Items:         names,
	})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 7})

	return m
}

// stepClock returns a clock advancing by step on every reading.
func stepClock(step time.Duration) func() time.Time {
	now := time.Now()

	return func() time.Time {
		now = now.Add(step)

		return now
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// settle runs the frames of every active settle.
func settle(m *Model) {
	now := time.Now()
	m.Update(frameMsg(now))
	m.Update(frameMsg(now.Add(time.Second)))
}

func TestResize(t *testing.T) {
	m := newModel(t, items.Single, 10)
	require.Len(t, m.slots, 5)
	for i, s := range m.slots {
		pos, ok := m.manager.Position(s.ctl)
		require.True(t, ok)
		require.Equal(t, i, pos)
		require.Equal(t, swipe.Closed, s.ctl.Status())
	}

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 4})
	require.Len(t, m.slots, 2)
	require.Len(t, m.manager.OpenLayouts(), 2)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 40})
	require.Len(t, m.slots, 10)
}

func TestNewInvalidOptions(t *testing.T) {
	opts := swipe.DefaultOptions()
	opts.AfterOpen = 3
	_, err := New(Options{Swipe: opts})
	require.ErrorIs(t, err, swipe.ErrInvalidOption)
}

func TestKeyOpenClose(t *testing.T) {
	m := newModel(t, items.Single, 10)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(runes("o"))
	require.Equal(t, []int{1}, m.manager.OpenItems())
	require.Equal(t, swipe.Open, m.slots[1].ctl.Status())
	require.Equal(t, -18, m.slots[1].ctl.SurfaceRect().Min.X)
	require.Contains(t, m.renderRow(m.slots[1]), "archive")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(runes("o"))
	require.Equal(t, []int{2}, m.manager.OpenItems())
	require.Equal(t, swipe.Closed, m.slots[1].ctl.Status())
	require.Equal(t, swipe.Open, m.slots[2].ctl.Status())

	m.Update(runes("o"))
	require.Empty(t, m.manager.OpenItems())
	require.Equal(t, swipe.Closed, m.slots[2].ctl.Status())
}

func TestKeyMode(t *testing.T) {
	m := newModel(t, items.Single, 10)
	m.Update(runes("m"))
	require.Equal(t, items.Multiple, m.manager.Mode())
	require.Len(t, m.manager.OpenLayouts(), 5)

	m.Update(runes("o"))
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(runes("o"))
	require.Equal(t, []int{0, 1}, m.manager.OpenItems())

	m.Update(runes("c"))
	require.Empty(t, m.manager.OpenItems())
	settle(m)
	for _, s := range m.slots {
		require.Equal(t, swipe.Closed, s.ctl.Status())
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, items.Single, 3)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestDragOpens(t *testing.T) {
	m := newModel(t, items.Single, 10)
	m.clock = stepClock(time.Second)
	s := m.slots[3]

	m.pointer(s, gesture.Press, 30)
	m.pointer(s, gesture.Move, 15)
	require.True(t, s.ctl.Dragging())
	require.Equal(t, -15, s.ctl.SurfaceRect().Min.X)
	m.pointer(s, gesture.Release, 15)
	_, cmd := m.Update(tea.MouseMsg{Action: tea.MouseActionMotion})
	require.NotNil(t, cmd, "settle schedules a frame")

	settle(m)
	require.Equal(t, swipe.Open, s.ctl.Status())
	require.Equal(t, []int{3}, m.manager.OpenItems())
	require.False(t, s.ctl.Settling())
}

func TestDragOpensSingle(t *testing.T) {
	m := newModel(t, items.Single, 10)
	m.clock = stepClock(time.Second)
	m.Update(runes("o"))
	require.Equal(t, swipe.Open, m.slots[0].ctl.Status())

	s := m.slots[2]
	m.pointer(s, gesture.Press, 30)
	m.pointer(s, gesture.Move, 10)
	settle(m)
	require.Equal(t, swipe.Closed, m.slots[0].ctl.Status())

	m.pointer(s, gesture.Release, 10)
	settle(m)
	require.Equal(t, []int{2}, m.manager.OpenItems())
}

func TestRevealStatus(t *testing.T) {
	m := newModel(t, items.Single, 10)
	m.clock = stepClock(time.Second)
	s := m.slots[0]
	m.pointer(s, gesture.Press, 30)
	m.pointer(s, gesture.Move, 25)
	require.Equal(t, "archive 55%", m.status)
}

func TestItemClicks(t *testing.T) {
	m := newModel(t, items.Single, 10)
	m.clock = stepClock(10 * time.Millisecond)
	s := m.slots[4]
	m.pointer(s, gesture.Press, 5)
	m.pointer(s, gesture.Release, 5)
	require.Equal(t, "clicked item 4", m.status)

	m.clock = stepClock(time.Second)
	m.pointer(s, gesture.Press, 5)
	m.pointer(s, gesture.Release, 5)
	m.Update(tea.MouseMsg{Action: tea.MouseActionMotion})
	require.Equal(t, []int{4}, m.manager.OpenItems())
	require.Equal(t, swipe.Open, s.ctl.Status())
}

func TestScrollClosesItems(t *testing.T) {
	m := newModel(t, items.Single, 10)
	m.Update(runes("o"))
	require.Equal(t, []int{0}, m.manager.OpenItems())

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	require.Equal(t, 1, m.offset)
	require.Empty(t, m.manager.OpenItems())
	pos, _ := m.manager.Position(m.slots[0].ctl)
	require.Equal(t, 1, pos)

	for range 10 {
		m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	}
	require.Equal(t, 5, m.offset)
}

func TestCursorScrolls(t *testing.T) {
	m := newModel(t, items.Single, 10)
	for range 7 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, 7, m.cursor)
	require.Equal(t, 3, m.offset)

	for range 9 {
		m.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	require.Equal(t, 0, m.cursor)
	require.Equal(t, 0, m.offset)
}

func TestView(t *testing.T) {
	m := newModel(t, items.Single, 10)
	m.Update(runes("o"))
	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 7)
	require.Contains(t, lines[0], "mode: single")
	require.Contains(t, view, "item 1")
	require.Contains(t, view, "delete")
	require.Contains(t, lines[6], "drag a row")
}

func TestRowBottom(t *testing.T) {
	b := bottoms[swipe.Right].bottom()
	require.Equal(t, 18, b.Size.X)
	require.Equal(t, 9, b.Children["delete"].Min.X)

	a, r, ok := bottoms[swipe.Right].cell(10)
	require.True(t, ok)
	require.Equal(t, "delete", a.name)
	require.Equal(t, 'd', r)

	_, _, ok = bottoms[swipe.Left].cell(7)
	require.False(t, ok)
}

func TestModeMsg(t *testing.T) {
	m := newModel(t, items.Single, 10)
	m.Update(runes("o"))
	m.Update(ModeMsg(items.Single))
	require.Equal(t, []int{0}, m.manager.OpenItems())

	m.Update(ModeMsg(items.Multiple))
	require.Equal(t, items.Multiple, m.manager.Mode())
	require.Empty(t, m.manager.OpenItems())
	require.Equal(t, "mode multiple", m.status)
}
