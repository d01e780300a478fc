package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coopsim/coopsim/internal/shape"
	"github.com/coopsim/coopsim/internal/world"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero dt should fail validation")
	}

	cfg = DefaultConfig()
	cfg.Scenario = "nope"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown scenario should fail validation")
	}

	cfg = DefaultConfig()
	cfg.World.Width = -5
	if err := cfg.Validate(); err == nil {
		t.Error("negative width should fail validation")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Scenario = "shared"
	cfg.Physics.PushStrength = 3.5
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Scenario != "shared" {
		t.Errorf("scenario lost: %q", loaded.Scenario)
	}
	if loaded.Physics.PushStrength != 3.5 {
		t.Errorf("push strength lost: %f", loaded.Physics.PushStrength)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("scenario: corners\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scenario != "corners" {
		t.Errorf("scenario not applied: %q", cfg.Scenario)
	}
	if cfg.Dt != DefaultDt || cfg.World.Width != 1000 {
		t.Error("unset fields should keep defaults")
	}
}

func TestLoadParsesShapeAndOwner(t *testing.T) {
	raw := `
scenario: sorting
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatal(err)
	}
}

func TestBuildScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "sorting"

	w, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}

	snap := w.Snapshot()
	if len(snap.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(snap.Objects))
	}
	if len(snap.Goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(snap.Goals))
	}

	box := w.ObjectByName("Box-1")
	if box == nil || box.Kind != shape.Box {
		t.Fatal("Box-1 missing or wrong kind")
	}
	if box.Size != 40 {
		t.Errorf("box should default to size 40, got %f", box.Size)
	}
	if box.Damping != cfg.Physics.Damping {
		t.Errorf("physics tuning not applied: damping %f", box.Damping)
	}

	zone := w.GoalByName("Green Zone")
	if zone == nil {
		t.Fatal("Green Zone missing")
	}
	if !zone.Accepts(shape.TShape) || zone.Accepts(shape.Box) {
		t.Error("Green Zone shape filter wrong")
	}
}

func TestBuildAppliesAgentTuning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Agents.Radius = 30
	cfg.Agents.MaxSpeed = 8

	w, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range []*world.Agent{w.Human(), w.AI()} {
		if a.Radius != 30 || a.MaxSpeed != 8 {
			t.Errorf("%s tuning not applied: radius %f speed %f", a.Name, a.Radius, a.MaxSpeed)
		}
	}
}

func TestBuildUnknownScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "missing"
	if _, err := cfg.Build(); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestScenarioNamesSorted(t *testing.T) {
	names := ScenarioNames()
	if len(names) != len(Scenarios) {
		t.Fatalf("expected %d names, got %d", len(Scenarios), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
