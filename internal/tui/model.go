// SPDX-License-Identifier: Unlicense OR MIT

// Package tui hosts swipe controllers in a terminal list. One terminal
// cell is one pixel of the controller's coordinate space; rows are
// dragged with the mouse.
package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"time"

	"gioui.org/f32"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zorro/swipe/gesture"
	"github.com/zorro/swipe/items"
	"github.com/zorro/swipe/swipe"
)

var ErrUIExit = errors.New("ui error returned")

const frameInterval = time.Second / 60

// chromeHeight is the number of lines used by the header and status bar.
const chromeHeight = 2

// Options configure a Model.
type Options struct {
	Swipe         swipe.Options
	Mode          items.Mode
	CloseOnScroll bool
	Items         []string
}

type frameMsg time.Time

// ModeMsg switches the item manager mode of a running model.
type ModeMsg items.Mode

type slot struct {
	ctl   *swipe.Controller
	id    string
	index int
}

// Model is the bubbletea model of the demo list.
type Model struct {
	opts    Options
	keys    keymap
	manager *items.Manager
	slots   []*slot
	zoneID  string
	offset  int
	cursor  int
	width   int
	height  int
	pressed *slot
	ticking bool
	status  string
	start   time.Time
	clock   func() time.Time
}

// New returns a model listing opts.Items.
func New(opts Options) (*Model, error) {
	if err := opts.Swipe.Validate(); err != nil {
		return nil, err
	}
	zone.NewGlobal()
	m := &Model{
		opts:   opts,
		keys:   defaultKeyMap,
		zoneID: zone.NewPrefix(),
		clock:  time.Now,
		status: "drag a row sideways",
	}
	m.start = m.clock()
	m.manager = items.New(nil)
	m.manager.SetMode(opts.Mode)
	if opts.Swipe.Logger != nil {
		m.manager.SetLogger(opts.Swipe.Logger)
	}

	return m, nil
}

// Run the model as a full screen program until it quits or ctx ends.
// Modes received while running are applied to the list.
func Run(ctx context.Context, m *Model, modes <-chan items.Mode) error {
	program := tea.NewProgram(m, tea.WithMouseCellMotion(), tea.WithAltScreen(), tea.WithContext(ctx))
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case mode, ok := <-modes:
				if !ok {
					return
				}
				program.Send(ModeMsg(mode))
			}
		}
	}()
	if _, err := program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("swipedemo")
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case ModeMsg:
		m.setMode(items.Mode(msg))
	case frameMsg:
		m.ticking = false
		for _, s := range m.slots {
			s.ctl.Animate(time.Time(msg))
		}
	}
	m.layout()

	return m, m.scheduleFrame()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.open):
		if m.manager.IsOpen(m.cursor) {
			m.manager.CloseItem(m.cursor)
		} else {
			m.manager.OpenItem(m.cursor)
		}
	case key.Matches(msg, m.keys.closeAll):
		m.manager.CloseAllItems()
	case key.Matches(msg, m.keys.mode):
		mode := items.Multiple
		if m.manager.Mode() == items.Multiple {
			mode = items.Single
		}
		m.setMode(mode)
	}
}

func (m *Model) setMode(mode items.Mode) {
	if mode == m.manager.Mode() {
		return
	}
	m.manager.SetMode(mode)
	m.status = "mode " + mode.String()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.scroll(-1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.scroll(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		for _, s := range m.slots {
			if zone.Get(s.id).InBounds(msg) {
				m.pressed = s
				m.cursor = s.index
				m.pointer(s, gesture.Press, m.relativeX(s, msg))

				break
			}
		}
	case msg.Action == tea.MouseActionMotion && m.pressed != nil:
		m.pointer(m.pressed, gesture.Move, m.relativeX(m.pressed, msg))
	case msg.Action == tea.MouseActionRelease && m.pressed != nil:
		m.pointer(m.pressed, gesture.Release, m.relativeX(m.pressed, msg))
		m.pressed = nil
	}
}

// relativeX returns the column of msg relative to the row of s, even
// when the pointer has left the row.
func (m *Model) relativeX(s *slot, msg tea.MouseMsg) int {
	z := zone.Get(s.id)
	if z == nil || z.IsZero() {
		return msg.X
	}

	return msg.X - z.StartX
}

func (m *Model) pointer(s *slot, t gesture.Type, x int) {
	s.ctl.Event(gesture.Event{
		Type:     t,
		Position: f32.Pt(float32(x), 0),
		Time:     m.clock().Sub(m.start),
	})
}

func (m *Model) moveCursor(d int) {
	n := len(m.opts.Items)
	if n == 0 {
		return
	}
	m.cursor = max(0, min(n-1, m.cursor+d))
	if m.cursor < m.offset {
		m.scroll(m.cursor - m.offset)
	} else if rows := len(m.slots); m.cursor >= m.offset+rows {
		m.scroll(m.cursor - (m.offset + rows - 1))
	}
}

func (m *Model) scroll(d int) {
	limit := max(0, len(m.opts.Items)-len(m.slots))
	offset := max(0, min(limit, m.offset+d))
	if offset == m.offset {
		return
	}
	m.offset = offset
	if m.opts.CloseOnScroll && len(m.manager.OpenItems()) > 0 {
		m.manager.CloseAllItems()
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	rows := max(0, min(len(m.opts.Items), height-chromeHeight))
	for len(m.slots) < rows {
		s, err := m.newSlot(len(m.slots))
		if err != nil {
			slog.Error("Failed to create row", slog.String("error", err.Error()))

			return
		}
		m.slots = append(m.slots, s)
	}
	for _, s := range m.slots[rows:] {
		m.manager.RemoveShownLayout(s.ctl)
	}
	m.slots = m.slots[:rows]
	m.scroll(0)
}

func (m *Model) newSlot(i int) (*slot, error) {
	ctl, err := swipe.New(m.opts.Swipe)
	if err != nil {
		return nil, err
	}
	s := &slot{ctl: ctl, id: m.zoneID + strconv.Itoa(i)}
	for _, e := range m.opts.Swipe.Edges.Edges() {
		b, ok := bottoms[e]
		if !ok {
			slog.Debug("Edge not supported in terminal rows", slog.String("edge", e.String()))

			continue
		}
		if err := ctl.SetBottom(e, b.bottom()); err != nil {
			return nil, err
		}
	}
	ctl.AttachSurface()
	ctl.SetParent(m)
	for _, e := range ctl.DragEdges() {
		for _, a := range bottoms[e].actions {
			err := ctl.AddRevealListener(a, func(child string, e swipe.Edge, fraction float32, _ int) {
				m.status = fmt.Sprintf("%s %d%%", child, int(fraction*100))
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// layout binds every row to the item it displays and runs its layout
// pass.
func (m *Model) layout() {
	for i, s := range m.slots {
		s.index = m.offset + i
		if err := m.manager.Bind(s.ctl, s.index); err != nil {
			slog.Error("Failed to bind row", slog.String("error", err.Error()))

			continue
		}
		s.ctl.Layout(swipe.Bounds{Size: image.Pt(m.width, 1)})
	}
}

func (m *Model) scheduleFrame() tea.Cmd {
	if m.ticking {
		return nil
	}
	for _, s := range m.slots {
		if s.ctl.Settling() {
			m.ticking = true

			return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
				return frameMsg(t)
			})
		}
	}

	return nil
}

// PerformItemClick implements swipe.ItemClicker.
func (m *Model) PerformItemClick(c *swipe.Controller) bool {
	pos, ok := m.manager.Position(c)
	if !ok || pos >= len(m.opts.Items) {
		return false
	}
	m.status = "clicked " + m.opts.Items[pos]

	return true
}

// PerformItemLongClick implements swipe.ItemLongClicker.
func (m *Model) PerformItemLongClick(c *swipe.Controller) bool {
	pos, ok := m.manager.Position(c)
	if !ok {
		return false
	}
	m.manager.OpenItem(pos)

	return true
}
