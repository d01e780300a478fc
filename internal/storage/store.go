// Package storage persists finished runs under a data directory: one
// subdirectory per run holding metadata.json and a ticks.csv time series.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/coopsim/coopsim/internal/sim"
	"github.com/coopsim/coopsim/internal/world"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Ticks      int                `json:"ticks"`
	HumanScore int                `json:"human_score"`
	AIScore    int                `json:"ai_score"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a finished run and returns its generated ID.
func (s *Store) Save(scenario string, dt, duration float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	final := result.Final()
	meta := RunMetadata{
		ID:         runID,
		Scenario:   scenario,
		Timestamp:  time.Now(),
		Dt:         dt,
		Duration:   duration,
		Ticks:      final.Tick,
		HumanScore: final.HumanScore,
		AIScore:    final.AIScore,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "ticks.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Snapshots) == 0 {
		return runID, nil
	}

	if err := w.Write(header(result.Snapshots[0])); err != nil {
		return "", err
	}
	for _, snap := range result.Snapshots {
		if err := w.Write(row(snap)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// header derives the csv columns from the first snapshot; the object set is
// fixed for a run, so every row has the same shape.
func header(snap world.Snapshot) []string {
	cols := []string{"tick", "time"}
	for _, a := range snap.Agents {
		cols = append(cols, a.Kind.String()+"_x", a.Kind.String()+"_y")
	}
	cols = append(cols, "human_score", "ai_score")
	for _, o := range snap.Objects {
		cols = append(cols, o.Name+"_x", o.Name+"_y", o.Name+"_rot")
	}
	return cols
}

func row(snap world.Snapshot) []string {
	out := []string{
		strconv.Itoa(snap.Tick),
		formatFloat(snap.Elapsed),
	}
	for _, a := range snap.Agents {
		out = append(out, formatFloat(a.Pos.X), formatFloat(a.Pos.Y))
	}
	out = append(out, strconv.Itoa(snap.HumanScore), strconv.Itoa(snap.AIScore))
	for _, o := range snap.Objects {
		out = append(out, formatFloat(o.Pos.X), formatFloat(o.Pos.Y), formatFloat(o.Rot))
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Series is a loaded ticks.csv, columns addressable by header name.
type Series struct {
	Columns []string
	Rows    [][]float64
}

// Column returns the values of the named column, or nil when absent.
func (s *Series) Column(name string) []float64 {
	idx := -1
	for i, col := range s.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]float64, 0, len(s.Rows))
	for _, row := range s.Rows {
		if idx < len(row) {
			out = append(out, row[idx])
		}
	}
	return out
}

// LoadSeries reads a run's tick time series.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "ticks.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty tick series", runID)
	}

	series := &Series{Columns: records[0]}
	for _, record := range records[1:] {
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: bad value %q: %w", runID, field, err)
			}
			row[i] = v
		}
		series.Rows = append(series.Rows, row)
	}
	return series, nil
}
