package config

import (
	"sort"

	"github.com/coopsim/coopsim/internal/shape"
	"github.com/coopsim/coopsim/internal/world"
)

// Scenarios are the built-in starting layouts. Coordinates assume the
// default 1000x700 arena.
var Scenarios = map[string]*Scenario{
	"sorting": {
		Name:    "sorting",
		Summary: "one piece per player, matching shape filters on each zone",
		Objects: []ObjectSpec{
			{Name: "Box-1", Shape: shape.Box, X: 400, Y: 250},
			{Name: "T-1", Shape: shape.TShape, X: 600, Y: 450},
		},
		Goals: []GoalSpec{
			{Name: "Blue Zone", X: 150, Y: 150, Owner: world.OwnedByHuman,
				Shapes: []shape.Kind{shape.Box}},
			{Name: "Green Zone", X: 850, Y: 550, Owner: world.OwnedByAI,
				Shapes: []shape.Kind{shape.TShape}},
		},
	},
	"shared": {
		Name:    "shared",
		Summary: "three pieces, one unassigned center zone splitting the points",
		Objects: []ObjectSpec{
			{Name: "Box-1", Shape: shape.Box, X: 300, Y: 200},
			{Name: "L-1", Shape: shape.LShape, X: 500, Y: 500, Rotation: 0.5},
			{Name: "T-1", Shape: shape.TShape, X: 700, Y: 250},
		},
		Goals: []GoalSpec{
			{Name: "Center Zone", X: 500, Y: 350, Width: 160, Height: 160,
				Owner: world.Shared},
		},
	},
	"corners": {
		Name:    "corners",
		Summary: "four pieces scattered mid-field, owned zones in opposite corners",
		Objects: []ObjectSpec{
			{Name: "Box-1", Shape: shape.Box, X: 380, Y: 300},
			{Name: "Box-2", Shape: shape.Box, X: 620, Y: 420},
			{Name: "L-1", Shape: shape.LShape, X: 450, Y: 480},
			{Name: "T-1", Shape: shape.TShape, X: 560, Y: 220, Rotation: -0.8},
		},
		Goals: []GoalSpec{
			{Name: "Blue Zone", X: 130, Y: 570, Width: 140, Height: 140,
				Owner: world.OwnedByHuman},
			{Name: "Green Zone", X: 870, Y: 130, Width: 140, Height: 140,
				Owner: world.OwnedByAI},
		},
	},
}

// ScenarioNames returns the preset names in sorted order.
func ScenarioNames() []string {
	names := make([]string, 0, len(Scenarios))
	for name := range Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
