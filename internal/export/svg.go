// Package export renders finished runs to SVG: the arena, goal zones,
// object collision rectangles at their final pose, and motion trails.
package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/coopsim/coopsim/internal/shape"
	"github.com/coopsim/coopsim/internal/world"
)

var ownerColors = map[world.Owner]string{
	world.OwnedByHuman: "#4169e1",
	world.OwnedByAI:    "#32cd32",
	world.Shared:       "#daa520",
}

var shapeColors = map[shape.Kind]string{
	shape.Box:    "#ffa500",
	shape.LShape: "#6495ed",
	shape.TShape: "#dc143c",
}

// RunSVG renders the whole run: goal zones, agent and object trails, and
// every entity at its final pose.
func RunSVG(snapshots []world.Snapshot) string {
	if len(snapshots) == 0 {
		return ""
	}
	final := snapshots[len(snapshots)-1]

	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#f5f5f5"/>
`, final.Width, final.Height, final.Width, final.Height)

	for _, g := range final.Goals {
		color := ownerColors[g.Owner]
		fmt.Fprintf(&b,
			`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.15" stroke="%s" stroke-dasharray="6 4"/>
`,
			g.Center.X-g.Width/2, g.Center.Y-g.Height/2, g.Width, g.Height, color, color)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="13" fill="%s">%s</text>
`,
			g.Center.X-g.Width/2+4, g.Center.Y-g.Height/2+16, color, g.Name)
	}

	writeTrails(&b, snapshots)

	for _, o := range final.Objects {
		color := shapeColors[o.Kind]
		for _, r := range objectRects(o) {
			fmt.Fprintf(&b,
				`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.85" transform="rotate(%.2f %.1f %.1f)"/>
`,
				r.Center.X-r.Width/2, r.Center.Y-r.Height/2, r.Width, r.Height,
				color, r.Rot*180/math.Pi, r.Center.X, r.Center.Y)
		}
	}

	for _, a := range final.Agents {
		color := ownerColors[world.OwnedByHuman]
		if a.Kind == world.AI {
			color = ownerColors[world.OwnedByAI]
		}
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`,
			a.Pos.X, a.Pos.Y, a.Radius, color)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// WriteRunSVG renders the run and writes it to path.
func WriteRunSVG(path string, snapshots []world.Snapshot) error {
	svg := RunSVG(snapshots)
	if svg == "" {
		return fmt.Errorf("no snapshots to export")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func writeTrails(b *strings.Builder, snapshots []world.Snapshot) {
	final := snapshots[len(snapshots)-1]

	for _, a := range final.Agents {
		color := ownerColors[world.OwnedByHuman]
		if a.Kind == world.AI {
			color = ownerColors[world.OwnedByAI]
		}
		points := make([]string, 0, len(snapshots))
		for _, snap := range snapshots {
			if s, ok := snap.Agent(a.Kind); ok {
				points = append(points, fmt.Sprintf("%.1f,%.1f", s.Pos.X, s.Pos.Y))
			}
		}
		writePolyline(b, points, color)
	}

	for _, o := range final.Objects {
		points := make([]string, 0, len(snapshots))
		for _, snap := range snapshots {
			if s, ok := snap.Object(o.Name); ok {
				points = append(points, fmt.Sprintf("%.1f,%.1f", s.Pos.X, s.Pos.Y))
			}
		}
		writePolyline(b, points, shapeColors[o.Kind])
	}
}

func writePolyline(b *strings.Builder, points []string, color string) {
	if len(points) < 2 {
		return
	}
	fmt.Fprintf(b,
		`<polyline points="%s" fill="none" stroke="%s" stroke-opacity="0.4" stroke-width="1.5"/>
`,
		strings.Join(points, " "), color)
}

// objectRects recomputes the posed collision rectangles from a snapshot,
// mirroring the engine's geometry so exports match what collided.
func objectRects(o world.ObjectState) []world.WorldRect {
	obj := world.NewObject(o.Name, o.Kind, o.Pos, o.Size)
	obj.Rot = o.Rot
	return obj.WorldRects()
}
