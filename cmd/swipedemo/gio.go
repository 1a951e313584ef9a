// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/spf13/cobra"
	"golang.org/x/exp/shiny/materialdesign/icons"
	"golang.org/x/exp/slices"

	"github.com/zorro/swipe/config"
	"github.com/zorro/swipe/gioswipe"
	"github.com/zorro/swipe/items"
	"github.com/zorro/swipe/swipe"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	rowHeightDp = 56
	paddingDp   = 16
	actionDp    = 48
)

var (
	colorBackground = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorSurface    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorOpen       = color.NRGBA{R: 0xe0, G: 0xf2, B: 0xf1, A: 0xff}
	colorArchive    = color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
	colorDelete     = color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}
	colorPin        = color.NRGBA{R: 0xfb, G: 0xc0, B: 0x2d, A: 0xff}
)

// rowWidgets are the action buttons of one recycled row.
type rowWidgets struct {
	archive, delete, pin widget.Clickable
	revealed             bool
}

type gioDemo struct {
	th      *material.Theme
	list    gioswipe.List
	cfg     config.Config
	pxPerDp float32
	names   []string
	// pending is the index deleted at the end of the frame, or -1.
	pending int
	status  string
	rows    map[*gioswipe.Swipe]*rowWidgets

	archiveIcon, deleteIcon, pinIcon *widget.Icon
}

func runGio(_ *cobra.Command, _ []string) error {
	changes := make(chan config.Config)
	loader, userConfig, logFile, err := setup(changes)
	if err != nil {
		return err
	}
	slog.Debug("Using config", slog.String("path", loader.Path()))

	demo, err := newGioDemo(userConfig, itemNames(itemCount))
	if err != nil {
		closeLog(logFile)

		return errors.Join(err, errApp)
	}

	go func() {
		w := app.NewWindow(app.Title("swipedemo"))
		errRun := demo.run(w, changes)
		closeLog(logFile)
		if errRun != nil {
			slog.Error("Window closed with error", slog.String("error", errRun.Error()))
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()

	return nil
}

func newGioDemo(cfg config.Config, names []string) (*gioDemo, error) {
	d := &gioDemo{
		th:      material.NewTheme(gofont.Collection()),
		cfg:     cfg,
		names:   names,
		pending: -1,
		status:  "Swipe a row sideways",
		rows:    make(map[*gioswipe.Swipe]*rowWidgets),
	}
	var err error
	if d.archiveIcon, err = widget.NewIcon(icons.ContentArchive); err != nil {
		return nil, err
	}
	if d.deleteIcon, err = widget.NewIcon(icons.ActionDelete); err != nil {
		return nil, err
	}
	if d.pinIcon, err = widget.NewIcon(icons.ActionBookmark); err != nil {
		return nil, err
	}
	mode, err := cfg.ItemMode()
	if err != nil {
		return nil, err
	}
	d.list.Axis = layout.Vertical
	d.list.CloseOnScroll = cfg.CloseOnScroll
	d.list.Manager = items.New(&d.list)
	d.list.Manager.SetMode(mode)
	d.list.OnItemClick = func(index int) {
		d.status = "Clicked " + d.names[index]
	}
	d.list.OnItemLongClick = func(index int) {
		d.list.Manager.OpenItem(index)
	}

	return d, nil
}

func (d *gioDemo) run(w *app.Window, changes <-chan config.Config) error {
	var ops op.Ops
	for {
		select {
		case e := <-w.Events():
			switch e := e.(type) {
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				d.layout(gtx)
				e.Frame(gtx.Ops)
			case key.Event:
				if e.Name == key.NameEscape {
					w.Perform(system.ActionClose)
				}
			case system.DestroyEvent:
				return e.Err
			}
		case cfg := <-changes:
			d.apply(cfg)
			w.Invalidate()
		}
	}
}

// apply a reloaded configuration. Rows created from now on use the new
// controller options.
func (d *gioDemo) apply(cfg config.Config) {
	d.cfg = cfg
	d.pxPerDp = 0
	d.list.CloseOnScroll = cfg.CloseOnScroll
	mode, err := cfg.ItemMode()
	if err != nil {
		slog.Error("Invalid mode", slog.String("error", err.Error()))

		return
	}
	if mode != d.list.Manager.Mode() {
		d.list.Manager.SetMode(mode)
		d.status = "Mode " + mode.String()
	}
}

func (d *gioDemo) dp(gtx C, v float32) int {
	return gtx.Dp(unit.Dp(v))
}

// options converts the configuration for the current display density.
func (d *gioDemo) options(gtx C) {
	if d.pxPerDp == gtx.Metric.PxPerDp && d.list.Options != (swipe.Options{}) {
		return
	}
	d.pxPerDp = gtx.Metric.PxPerDp
	scale := d.pxPerDp
	if scale == 0 {
		scale = 1
	}
	opts, err := d.cfg.Options(scale)
	if err != nil {
		slog.Error("Invalid swipe options", slog.String("error", err.Error()))
		opts = swipe.DefaultOptions()
	}
	opts.Logger = slog.Default()
	d.list.Options = opts
}

func (d *gioDemo) layout(gtx C) D {
	d.options(gtx)
	paint.Fill(gtx.Ops, colorBackground)

	dims := layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			header := fmt.Sprintf("Mode %s, open %v", d.list.Manager.Mode(), d.list.Manager.OpenItems())

			return material.H6(d.th, header).Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return d.list.Layout(gtx, len(d.names), d.element)
		}),
		layout.Rigid(material.Body1(d.th, d.status).Layout),
	)
	if d.pending >= 0 {
		d.remove(d.pending)
		d.pending = -1
	}

	return dims
}

func (d *gioDemo) element(gtx C, index int, s *gioswipe.Swipe) D {
	w := d.rows[s]
	if w == nil {
		w = new(rowWidgets)
		d.rows[s] = w
	}
	switch {
	case w.archive.Clicked():
		d.status = "Archived " + d.names[index]
		d.list.Manager.CloseItem(index)
	case w.delete.Clicked():
		d.pending = index
	case w.pin.Clicked():
		d.status = "Pinned " + d.names[index]
		d.list.Manager.CloseItem(index)
	}

	action := d.dp(gtx, actionDp)
	height := d.dp(gtx, rowHeightDp)
	var bottoms []gioswipe.Bottom
	if d.list.Options.Edges.Has(swipe.Right) {
		bottoms = append(bottoms, gioswipe.Bottom{
			Edge: swipe.Right,
			Widget: func(gtx C) D {
				return layout.Flex{}.Layout(gtx,
					layout.Rigid(d.action(&w.archive, d.archiveIcon, "Archive", colorArchive)),
					layout.Rigid(d.action(&w.delete, d.deleteIcon, "Delete", colorDelete)),
				)
			},
			Children: map[string]image.Rectangle{
				"archive": image.Rect(0, 0, action, height),
				"delete":  image.Rect(action, 0, 2*action, height),
			},
		})
	}
	if d.list.Options.Edges.Has(swipe.Left) {
		bottoms = append(bottoms, gioswipe.Bottom{
			Edge:     swipe.Left,
			Widget:   d.action(&w.pin, d.pinIcon, "Pin", colorPin),
			Children: map[string]image.Rectangle{"pin": image.Rect(0, 0, action, height)},
		})
	}
	dims := s.Layout(gtx, d.surface(index), bottoms...)
	if !w.revealed {
		w.revealed = true
		d.watchReveal(s.Controller)
	}

	return dims
}

// watchReveal reports the uncovered actions of c in the status line.
func (d *gioDemo) watchReveal(c *swipe.Controller) {
	l := func(child string, _ swipe.Edge, fraction float32, _ int) {
		d.status = fmt.Sprintf("%s %d%%", child, int(fraction*100))
	}
	for _, child := range []string{"archive", "delete", "pin"} {
		if err := c.AddRevealListener(child, l); err != nil {
			slog.Debug("Reveal listener not added", slog.String("child", child), slog.String("error", err.Error()))
		}
	}
}

// remove deletes the item at index. Open positions past index shift
// with their items.
func (d *gioDemo) remove(index int) {
	d.status = "Deleted " + d.names[index]
	m := d.list.Manager
	open := m.OpenItems()
	m.CloseAllItems()
	d.names = slices.Delete(d.names, index, index+1)
	for _, pos := range open {
		switch {
		case pos < index:
			m.OpenItem(pos)
		case pos > index:
			m.OpenItem(pos - 1)
		}
	}
	d.list.NotifyDataSetChanged()
}

func (d *gioDemo) surface(index int) layout.Widget {
	return func(gtx C) D {
		size := image.Pt(gtx.Constraints.Max.X, d.dp(gtx, rowHeightDp))
		bg := colorSurface
		if d.list.Manager.IsOpen(index) {
			bg = colorOpen
		}
		paint.FillShape(gtx.Ops, bg, clip.Rect{Max: size}.Op())
		pad := d.dp(gtx, paddingDp)
		defer op.Offset(image.Pt(pad, pad)).Push(gtx.Ops).Pop()
		material.Body1(d.th, d.names[index]).Layout(gtx)

		return D{Size: size}
	}
}

func (d *gioDemo) action(btn *widget.Clickable, ic *widget.Icon, desc string, bg color.NRGBA) layout.Widget {
	return func(gtx C) D {
		b := material.IconButton(d.th, btn, ic, desc)
		b.Background = bg

		return b.Layout(gtx)
	}
}
