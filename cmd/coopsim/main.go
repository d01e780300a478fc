package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/coopsim/coopsim/internal/config"
	"github.com/coopsim/coopsim/internal/driver"
	"github.com/coopsim/coopsim/internal/export"
	"github.com/coopsim/coopsim/internal/metrics"
	"github.com/coopsim/coopsim/internal/sim"
	"github.com/coopsim/coopsim/internal/storage"
	"github.com/coopsim/coopsim/internal/tui"
	"github.com/coopsim/coopsim/internal/world"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	frameRate  int
	svgPath    string
	humanPilot string
	aiPilot    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coopsim",
		Short: "cooperative push-manipulation testbed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunPlay(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".coopsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write an SVG of the run")
	runCmd.Flags().StringVar(&humanPilot, "human", "shepherd", "human agent pilot (idle, shepherd)")
	runCmd.Flags().StringVar(&aiPilot, "ai", "shepherd", "ai agent pilot (idle, shepherd)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live terminal rendering",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	liveCmd.Flags().StringVar(&humanPilot, "human", "shepherd", "human agent pilot (idle, shepherd)")
	liveCmd.Flags().StringVar(&aiPilot, "ai", "shepherd", "ai agent pilot (idle, shepherd)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play the human agent by keyboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.RunPlay(cfg)
		},
	}
	playCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run scores and travel",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "dump run tick data to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tOBJECTS\tGOALS\tSUMMARY")
			for _, name := range config.ScenarioNames() {
				sc := config.Scenarios[name]
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
					name, len(sc.Objects), len(sc.Goals), sc.Summary)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, playCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, scenariosCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupRun builds a world and runner from the flags, with a pilot driving
// each agent.
func setupRun(cmd *cobra.Command, args []string) (*config.Config, *sim.Runner, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}

	w, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	runner := sim.New(w)
	if err := assignPilot(runner, w, world.Human, humanPilot); err != nil {
		return nil, nil, err
	}
	if err := assignPilot(runner, w, world.AI, aiPilot); err != nil {
		return nil, nil, err
	}
	return cfg, runner, nil
}

// assignPilot gives one agent a scripted policy. Shepherds split the work:
// the human takes pieces its zones accept, the ai the rest.
func assignPilot(runner *sim.Runner, w *world.World, kind world.AgentKind, pilot string) error {
	switch pilot {
	case "idle":
		runner.SetDriver(kind, driver.NewIdle())
	case "shepherd":
		obj, goal := pickTask(w, kind)
		if obj == "" {
			runner.SetDriver(kind, driver.NewIdle())
			return nil
		}
		runner.SetDriver(kind, driver.NewShepherd(obj, goal))
	default:
		return fmt.Errorf("unknown pilot %q (idle, shepherd)", pilot)
	}
	return nil
}

// pickTask matches an agent with the first object it can deliver to one of
// its zones. Shared zones count for both agents.
func pickTask(w *world.World, kind world.AgentKind) (object, goal string) {
	snap := w.Snapshot()
	other := world.OwnedByAI
	if kind == world.AI {
		other = world.OwnedByHuman
	}
	for _, o := range snap.Objects {
		for _, gs := range snap.Goals {
			g := w.GoalByName(gs.Name)
			if g == nil || g.Owner == other || !g.Accepts(o.Kind) {
				continue
			}
			return o.Name, gs.Name
		}
	}
	return "", ""
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, runner, err := setupRun(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner.AddMetric(metrics.NewFinalScore())
	runner.AddMetric(metrics.NewTimeToFirstScore())
	runner.AddMetric(metrics.NewObjectTravel())
	runner.AddMetric(metrics.NewAgentTravel(world.Human))
	runner.AddMetric(metrics.NewAgentTravel(world.AI))

	fmt.Printf("running %s scenario...\n", cfg.Scenario)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Scenario, cfg.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}

	final := result.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", final.Tick)
	fmt.Printf("score: human %d, ai %d\n", final.HumanScore, final.AIScore)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	if svgPath != "" {
		if err := export.WriteRunSVG(svgPath, result.Snapshots); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgPath)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, runner, err := setupRun(cmd, args)
	if err != nil {
		return err
	}

	renderer := tui.NewLiveRenderer(cfg.Scenario, frameRate)
	runner.AddObserver(renderer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	renderer.Start()
	defer renderer.Stop()

	result, err := runner.Run(ctx, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil && ctx.Err() == nil {
		return err
	}

	final := result.Final()
	fmt.Printf("\nfinal score: human %d, ai %d\n", final.HumanScore, final.AIScore)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tTICKS\tHUMAN\tAI")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Ticks,
			run.HumanScore,
			run.AIScore,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(series.Rows))

	plots := []struct {
		column  string
		caption string
	}{
		{"human_score", "human score"},
		{"ai_score", "ai score"},
		{"human_x", "human agent x position"},
		{"ai_x", "ai agent x position"},
	}

	for _, p := range plots {
		data := series.Column(p.column)
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(series.Columns); err != nil {
		return err
	}
	for _, row := range series.Rows {
		record := make([]string, len(row))
		for i, val := range row {
			record[i] = strconv.FormatFloat(val, 'f', 6, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
