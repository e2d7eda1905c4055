package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	b2rope "github.com/Alexander-r/b2rope.go"
	"github.com/Alexander-r/b2rope.go/internal/config"
)

var (
	obstacleStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	ropeStyle     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	liveStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	lockedStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	statusStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// demo is the host loop: it samples the pointer, runs fixed physics steps and
// draws once per display frame. Physics and drawing share one goroutine so
// they never overlap.
type demo struct {
	cfg    config.Demo
	sim    *simulation
	screen tcell.Screen
	clicks *clicker
	view   view

	pointer b2rope.B2Vec2
	buttons tcell.ButtonMask
	line    b2rope.B2RopeLine

	steps int
}

func newDemo(cfg config.Demo, sim *simulation, screen tcell.Screen, clicks *clicker) *demo {
	w, h := screen.Size()
	return &demo{
		cfg:     cfg,
		sim:     sim,
		screen:  screen,
		clicks:  clicks,
		view:    newView(w, h, cfg.CellsPerUnit),
		pointer: sim.start,
		line:    b2rope.MakeB2RopeLine(),
	}
}

func (d *demo) run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(d.cfg.FrameDuration())
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !d.handleInput(ev) {
				return nil
			}

		case now := <-ticker.C:
			frame := now.Sub(last).Seconds()
			last = now

			d.sim.rope.SetLiveAnchor(d.pointer)
			d.steps += d.sim.advance(frame)
			d.draw()
		}
	}
}

func (d *demo) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

		if ev.Key() == tcell.KeyRune && ev.Rune() == 'r' {
			d.sim.reset()
			d.pointer = d.sim.start
			slog.Debug("rope reset")
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		d.pointer = d.view.toWorld(x, y)

		pressed := ev.Buttons() &^ d.buttons
		d.buttons = ev.Buttons()

		// Lock the anchor where the pointer goes down, release on right click.
		if pressed&tcell.Button1 != 0 {
			d.sim.rope.SetAnchorLock(d.pointer)
			d.clicks.Click()
			slog.Debug("anchor locked", "x", d.pointer.X, "y", d.pointer.Y)
		}
		if pressed&tcell.Button2 != 0 {
			d.sim.rope.ClearAnchorLock()
			slog.Debug("anchor released")
		}

	case *tcell.EventResize:
		d.screen.Sync()
		d.view.resize(d.screen.Size())
	}

	return true
}

func (d *demo) draw() {
	d.screen.Clear()

	for _, obstacle := range d.sim.world.GetObstacleList() {
		d.view.circleCells(obstacle.GetShape(), func(x, y int) {
			d.screen.SetContent(x, y, '░', nil, obstacleStyle)
		})
	}

	d.sim.rope.ExportLine(&d.line)
	for i := 0; i < d.line.GetChildCount(); i++ {
		a, b := d.line.GetChildSegment(i)
		d.view.segmentCells(a, b, func(x, y int) {
			if d.view.contains(x, y) {
				d.screen.SetContent(x, y, '•', nil, ropeStyle)
			}
		})
	}

	anchor := d.sim.rope.GetAnchor()
	ax, ay := d.view.toScreen(anchor.Target())
	if d.view.contains(ax, ay) {
		if anchor.Locked {
			d.screen.SetContent(ax, ay, '◆', nil, lockedStyle)
		} else {
			d.screen.SetContent(ax, ay, '+', nil, liveStyle)
		}
	}

	mode := "live"
	if anchor.Locked {
		mode = "locked"
	}
	d.drawText(0, 0, fmt.Sprintf("anchor %-6s  nodes %d  stretch %.4f  steps %d   [click] lock  [right] release  [r] reset  [q] quit",
		mode, d.line.GetVertexCount(), d.sim.rope.GetMaxStretch(), d.steps))

	d.screen.Show()
}

func (d *demo) drawText(x, y int, text string) {
	for i, r := range []rune(text) {
		if !d.view.contains(x+i, y) {
			return
		}
		d.screen.SetContent(x+i, y, r, nil, statusStyle)
	}
}
