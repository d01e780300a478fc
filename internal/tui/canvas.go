// Package tui renders the arena as text: a headless per-tick renderer for
// unattended runs and an interactive bubbletea app for playing the human
// agent by keyboard.
package tui

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/coopsim/coopsim/internal/shape"
	"github.com/coopsim/coopsim/internal/world"
)

var shapeRunes = map[shape.Kind]rune{
	shape.Box:    '▓',
	shape.LShape: '▒',
	shape.TShape: '░',
}

type canvas struct {
	cells [][]rune
	w, h  int
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = make([]rune, w)
	}
	c := &canvas{cells: cells, w: w, h: h}
	c.clear()
	return c
}

func (c *canvas) clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
}

func (c *canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.w && y >= 0 && y < c.h {
		c.cells[y][x] = r
	}
}

func (c *canvas) rows() []string {
	rows := make([]string, c.h)
	for i, row := range c.cells {
		rows[i] = string(row)
	}
	return rows
}

// drawSnapshot paints goal zones, objects and agents scaled into the
// canvas. Terminal cells are roughly twice as tall as wide, so x and y use
// independent scales.
func (c *canvas) drawSnapshot(snap world.Snapshot) {
	c.clear()
	if snap.Width <= 0 || snap.Height <= 0 {
		return
	}
	sx := float64(c.w) / snap.Width
	sy := float64(c.h) / snap.Height

	for _, g := range snap.Goals {
		c.drawGoal(g, sx, sy)
	}
	for _, o := range snap.Objects {
		c.drawObject(o, sx, sy)
	}
	for _, a := range snap.Agents {
		cx, cy := int(a.Pos.X*sx), int(a.Pos.Y*sy)
		mark := 'H'
		if a.Kind == world.AI {
			mark = 'A'
		}
		c.set(cx, cy, mark)
	}
}

func (c *canvas) drawGoal(g world.GoalState, sx, sy float64) {
	x1 := int((g.Center.X - g.Width/2) * sx)
	x2 := int((g.Center.X + g.Width/2) * sx)
	y1 := int((g.Center.Y - g.Height/2) * sy)
	y2 := int((g.Center.Y + g.Height/2) * sy)

	for x := x1; x <= x2; x++ {
		c.set(x, y1, '·')
		c.set(x, y2, '·')
	}
	for y := y1; y <= y2; y++ {
		c.set(x1, y, '·')
		c.set(x2, y, '·')
	}
	if len(g.Name) > 0 {
		c.set(x1+1, y1+1, rune(g.Name[0]))
	}
}

func (c *canvas) drawObject(o world.ObjectState, sx, sy float64) {
	obj := world.NewObject(o.Name, o.Kind, o.Pos, o.Size)
	obj.Rot = o.Rot
	mark := shapeRunes[o.Kind]

	r := obj.BoundingRadius()
	x1 := int((o.Pos.X - r) * sx)
	x2 := int((o.Pos.X + r) * sx)
	y1 := int((o.Pos.Y - r) * sy)
	y2 := int((o.Pos.Y + r) * sy)

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			p := r2.Vec{X: (float64(x) + 0.5) / sx, Y: (float64(y) + 0.5) / sy}
			if obj.PointInside(p) {
				c.set(x, y, mark)
			}
		}
	}
	c.set(int(o.Pos.X*sx), int(o.Pos.Y*sy), mark)
}
