package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/coopsim/coopsim/internal/world"
)

const (
	liveWidth   = 80
	liveHeight  = 24
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws the arena to the terminal after every tick, throttled
// to a frame rate so headless runs stay watchable without slowing the
// engine.
type LiveRenderer struct {
	scenario  string
	frameRate int
	lastFrame time.Time
	canvas    *canvas
}

func NewLiveRenderer(scenario string, frameRate int) *LiveRenderer {
	if frameRate < 1 {
		frameRate = 30
	}
	return &LiveRenderer{
		scenario:  scenario,
		frameRate: frameRate,
		canvas:    newCanvas(liveWidth, liveHeight),
	}
}

func (r *LiveRenderer) OnTick(snap world.Snapshot) {
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.canvas.drawSnapshot(snap)

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s  t=%.1fs  human %d  ai %d\n",
		r.scenario, snap.Elapsed, snap.HumanScore, snap.AIScore)
	b.WriteString("  +" + strings.Repeat("-", liveWidth) + "+\n")
	for _, row := range r.canvas.rows() {
		b.WriteString("  |" + row + "|\n")
	}
	b.WriteString("  +" + strings.Repeat("-", liveWidth) + "+\n")

	for _, o := range snap.Objects {
		status := "in play"
		if o.Goal != "" {
			status = o.Goal
		}
		fmt.Fprintf(&b, "  %s(%s) %s  ", o.Name, o.Kind, status)
	}
	b.WriteString("\n")

	fmt.Print(b.String())
}

func (r *LiveRenderer) Start() { fmt.Print(hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Print(showCursor) }
