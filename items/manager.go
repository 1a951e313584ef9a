// SPDX-License-Identifier: Unlicense OR MIT

// Package items keeps the open state of swipeable list items while
// the hosting list recycles their controls.
//
// The open state belongs to list positions, not to controls. A control
// bound to a position re-applies that position's state at the end of
// every layout pass, without dispatching swipe events.
package items

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/exp/slices"

	"github.com/zorro/swipe/swipe"
)

// Mode selects how many items may be open at once.
type Mode uint8

const (
	// Single keeps at most one item open; opening one closes the rest.
	Single Mode = iota
	// Multiple lets any number of items stay open.
	Multiple
)

// InvalidPosition marks the absence of an open item in Single mode.
const InvalidPosition = -1

// ErrNoController is returned when binding a nil control.
var ErrNoController = errors.New("items: nil controller")

// Notifier is implemented by list hosts that refresh their items
// when the open state changes programmatically.
type Notifier interface {
	NotifyDataSetChanged()
}

// Manager tracks open item positions and the controls currently
// displaying them.
type Manager struct {
	log      *slog.Logger
	notifier Notifier
	mode     Mode
	// openPos is the open position in Single mode.
	openPos int
	// openSet holds the open positions in Multiple mode.
	openSet map[int]struct{}
	// shown lists the bound controls in bind order.
	shown []*binding
}

// binding connects a control to the position it displays. It is
// registered as the control's swipe and layout listener.
type binding struct {
	swipe.BaseSwipeListener
	m        *Manager
	c        *swipe.Controller
	position int
}

// New returns a Single mode manager. The notifier may be nil.
func New(n Notifier) *Manager {
	return &Manager{
		log:      slog.Default(),
		notifier: n,
		openPos:  InvalidPosition,
		openSet:  make(map[int]struct{}),
	}
}

// SetLogger replaces the default logger.
func (m *Manager) SetLogger(l *slog.Logger) {
	m.log = l
}

// Mode returns the current mode.
func (m *Manager) Mode() Mode {
	return m.mode
}

// SetMode switches the mode, forgetting every open position and
// releasing every bound control.
func (m *Manager) SetMode(mode Mode) {
	m.log.Debug("items: set mode", slog.String("mode", mode.String()))
	m.mode = mode
	m.openPos = InvalidPosition
	m.openSet = make(map[int]struct{})
	for _, b := range m.shown {
		b.detach()
	}
	m.shown = nil
}

// Bind associates c with position. The first bind registers the
// manager's listeners on c; later binds only update the position, so
// rebinding a recycled control dispatches no events.
func (m *Manager) Bind(c *swipe.Controller, position int) error {
	if c == nil {
		return fmt.Errorf("%w: position %d", ErrNoController, position)
	}
	b := m.lookup(c)
	if b == nil {
		b = &binding{m: m, c: c}
		m.shown = append(m.shown, b)
		c.AddSwipeListener(b)
		c.AddLayoutListener(b)
	} else if b.position != position {
		// The outcome of a gesture belongs to the old position.
		c.Abort()
	}
	b.position = position
	return nil
}

// Position returns the position c is bound to.
func (m *Manager) Position(c *swipe.Controller) (int, bool) {
	if b := m.lookup(c); b != nil {
		return b.position, true
	}
	return 0, false
}

// OpenItem marks position open and asks the host to refresh.
func (m *Manager) OpenItem(position int) {
	if m.mode == Multiple {
		m.openSet[position] = struct{}{}
	} else {
		m.openPos = position
	}
	m.notify()
}

// CloseItem marks position closed and asks the host to refresh.
func (m *Manager) CloseItem(position int) {
	if m.mode == Multiple {
		delete(m.openSet, position)
	} else if m.openPos == position {
		m.openPos = InvalidPosition
	}
	m.notify()
}

// CloseAllExcept closes every bound control other than c.
func (m *Manager) CloseAllExcept(c *swipe.Controller) {
	for _, b := range slices.Clone(m.shown) {
		if b.c != c {
			b.c.Close(true, true)
		}
	}
}

// CloseAllItems forgets every open position and closes every bound
// control.
func (m *Manager) CloseAllItems() {
	if m.mode == Multiple {
		m.openSet = make(map[int]struct{})
	} else {
		m.openPos = InvalidPosition
	}
	for _, b := range slices.Clone(m.shown) {
		b.c.Close(true, true)
	}
}

// RemoveShownLayout unbinds c and removes the manager's listeners.
func (m *Manager) RemoveShownLayout(c *swipe.Controller) {
	i := slices.IndexFunc(m.shown, func(b *binding) bool { return b.c == c })
	if i < 0 {
		return
	}
	m.shown[i].detach()
	m.shown = slices.Delete(m.shown, i, i+1)
}

// OpenItems returns the open positions in ascending order.
func (m *Manager) OpenItems() []int {
	if m.mode == Multiple {
		res := make([]int, 0, len(m.openSet))
		for pos := range m.openSet {
			res = append(res, pos)
		}
		slices.Sort(res)
		return res
	}
	if m.openPos == InvalidPosition {
		return []int{}
	}
	return []int{m.openPos}
}

// OpenLayouts returns the bound controls in bind order.
func (m *Manager) OpenLayouts() []*swipe.Controller {
	res := make([]*swipe.Controller, len(m.shown))
	for i, b := range m.shown {
		res[i] = b.c
	}
	return res
}

// IsOpen reports whether position is open.
func (m *Manager) IsOpen(position int) bool {
	if m.mode == Multiple {
		_, ok := m.openSet[position]
		return ok
	}
	return m.openPos == position
}

func (m *Manager) lookup(c *swipe.Controller) *binding {
	for _, b := range m.shown {
		if b.c == c {
			return b
		}
	}
	return nil
}

func (m *Manager) notify() {
	if m.notifier != nil {
		m.notifier.NotifyDataSetChanged()
	}
}

func (b *binding) detach() {
	b.c.RemoveSwipeListener(b)
	b.c.RemoveLayoutListener(b)
}

// OnLayout re-applies the open state of the bound position. A control
// under the user's finger or settling keeps its position; the settle
// reports the outcome through OnOpen or OnClose.
func (b *binding) OnLayout(c *swipe.Controller) {
	if c.Dragging() || c.Settling() {
		return
	}
	if b.m.IsOpen(b.position) {
		c.Open(false, false)
	} else {
		c.Close(false, false)
	}
}

func (b *binding) OnStartOpen(c *swipe.Controller) {
	if b.m.mode == Single {
		b.m.CloseAllExcept(c)
	}
}

func (b *binding) OnOpen(c *swipe.Controller) {
	if b.m.mode == Multiple {
		b.m.openSet[b.position] = struct{}{}
		return
	}
	b.m.CloseAllExcept(c)
	b.m.openPos = b.position
}

func (b *binding) OnClose(*swipe.Controller) {
	if b.m.mode == Multiple {
		delete(b.m.openSet, b.position)
	} else if b.m.openPos == b.position {
		b.m.openPos = InvalidPosition
	}
}

func (m Mode) String() string {
	switch m {
	case Single:
		return "single"
	case Multiple:
		return "multiple"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "single" or "multiple".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single":
		return Single, nil
	case "multiple":
		return Multiple, nil
	default:
		return 0, fmt.Errorf("items: unknown mode %q", s)
	}
}
