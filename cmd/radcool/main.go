package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/radcool/internal/analysis"
	"github.com/san-kum/radcool/internal/config"
	"github.com/san-kum/radcool/internal/export"
	"github.com/san-kum/radcool/internal/model"
	"github.com/san-kum/radcool/internal/solver"
	"github.com/san-kum/radcool/internal/storage"
	"github.com/san-kum/radcool/internal/sweep"
	"github.com/san-kum/radcool/internal/thermo"
	"github.com/san-kum/radcool/internal/viz"
)

var (
	dataDir         string
	initialTemp     float64
	ambientTemp     float64
	emissivity      float64
	emissivityModel string
	surfaceArea     float64
	mass            float64
	specificHeat    float64
	totalTime       float64
	timeStep        float64
	tolerance       float64
	solverName      string
	configFile      string
	preset          string
	sweepValues     string
	crossTarget     float64
	frameRate       int
	svgOut          string
)

// main is the entry point for the radcool CLI; it registers commands and
// flags and executes the root command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "radcool",
		Short: "radiative cooling simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".radcool", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a cooling simulation",
		RunE:  runSimulation,
	}
	addPhysicsFlags(runCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [emissivity|mass|cp]",
		Short: "sweep a material parameter across values",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addPhysicsFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepValues, "values", "", "comma-separated parameter values")

	crossingCmd := &cobra.Command{
		Use:   "crossing [run_id]",
		Short: "time to reach a target temperature",
		Args:  cobra.ExactArgs(1),
		RunE:  runCrossing,
	}
	crossingCmd.Flags().Float64Var(&crossTarget, "target", 450, "target temperature (K)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
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
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run series to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export cooling curve as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal playback",
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare solvers on the same scenario",
		RunE:  compareSolvers,
	}
	addPhysicsFlags(compareCmd)

	compareEmisCmd := &cobra.Command{
		Use:   "compare-emissivity",
		Short: "compare constant against oxidized emissivity",
		RunE:  compareEmissivity,
	}
	addPhysicsFlags(compareEmisCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, crossingCmd, listCmd, plotCmd, exportCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd, compareCmd,
		compareEmisCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&initialTemp, "t0", config.DefaultInitialTemp, "initial temperature (K)")
	cmd.Flags().Float64Var(&ambientTemp, "ambient", config.DefaultAmbientTemp, "ambient temperature (K)")
	cmd.Flags().Float64Var(&emissivity, "emissivity", config.DefaultEmissivity, "surface emissivity")
	cmd.Flags().StringVar(&emissivityModel, "emissivity-model", "constant", "emissivity model (constant|oxidized)")
	cmd.Flags().Float64Var(&surfaceArea, "area", config.DefaultSurfaceArea, "surface area (m^2)")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	cmd.Flags().Float64Var(&specificHeat, "cp", config.DefaultSpecificHeat, "specific heat (J/(kg*K))")
	cmd.Flags().Float64Var(&totalTime, "time", config.DefaultTotalTime, "total simulated time (s)")
	cmd.Flags().Float64Var(&timeStep, "step", config.DefaultTimeStep, "reporting time step (s)")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "relative tolerance")
	cmd.Flags().StringVar(&solverName, "solver", "rk45", "solver (rk45|rk4)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig builds the effective configuration: defaults, then preset,
// then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("t0", func() { cfg.InitialTemp = initialTemp })
	set("ambient", func() { cfg.AmbientTemp = ambientTemp })
	set("emissivity", func() { cfg.Emissivity = emissivity })
	set("emissivity-model", func() { cfg.EmissivityModel = emissivityModel })
	set("area", func() { cfg.SurfaceArea = surfaceArea })
	set("mass", func() { cfg.Mass = mass })
	set("cp", func() { cfg.SpecificHeat = specificHeat })
	set("time", func() { cfg.TotalTime = totalTime })
	set("step", func() { cfg.TimeStep = timeStep })
	set("tol", func() { cfg.Tolerance = tolerance })
	set("solver", func() { cfg.Solver = solverName })

	return cfg, nil
}

func getSolver(name string) (thermo.Solver, error) {
	switch name {
	case "", "rk45":
		return solver.NewRK45(), nil
	case "rk4":
		return solver.NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
}

func integrate(cfg *config.Config) (model.Params, *thermo.Trajectory, error) {
	p, err := cfg.Params()
	if err != nil {
		return model.Params{}, nil, err
	}

	sv, err := getSolver(cfg.Solver)
	if err != nil {
		return model.Params{}, nil, err
	}

	traj, err := sv.Solve(p.Derivative(), p.Initial, cfg.Grid(), cfg.Tolerance)
	if err != nil {
		return model.Params{}, nil, err
	}

	return p, traj, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Println("running cooling simulation...")
	start := time.Now()

	p, traj, err := integrate(cfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	flux := analysis.HeatFlux(traj, p)
	rates := analysis.CoolingRate(traj)
	ms := analysis.ComputeMilestones(traj, p)

	meta := metaFromConfig(cfg)
	meta.Metrics = map[string]float64{
		"final_temp":      traj.Final(),
		"energy_radiated": analysis.EnergyRadiated(traj, p),
	}
	if ms.T90.Reached {
		meta.Metrics["t90"] = ms.T90.Time
	}
	if ms.T50.Reached {
		meta.Metrics["t50"] = ms.T50.Time
	}
	if ms.T10.Reached {
		meta.Metrics["t10"] = ms.T10.Time
	}

	runID, err := st.Save(meta, &storage.Series{
		Times: traj.Times,
		Temps: traj.Temps,
		Flux:  flux,
		Rates: rates,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n\n", traj.Len())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MILESTONE\tTARGET\tTIME")
	printMilestone(w, "10% cooled (t90)", ms.T90)
	printMilestone(w, "50% cooled (t50)", ms.T50)
	printMilestone(w, "90% cooled (t10)", ms.T10)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nfinal temperature: %.2f K\n", traj.Final())
	fmt.Printf("energy radiated: %.0f J\n", analysis.EnergyRadiated(traj, p))

	return nil
}

func printMilestone(w *tabwriter.Writer, label string, m analysis.Milestone) {
	if m.Reached {
		fmt.Fprintf(w, "%s\t%.1f K\t%.1f s\n", label, m.Target, m.Time)
	} else {
		fmt.Fprintf(w, "%s\t%.1f K\tnot reached\n", label, m.Target)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	axis := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	values, err := parseValues(sweepValues, axis)
	if err != nil {
		return err
	}

	sw := sweep.New(p, cfg.Grid(), cfg.Tolerance)
	ctx := context.Background()

	var runs []sweep.Run
	switch axis {
	case "emissivity":
		runs, err = sw.Emissivity(ctx, values)
	case "mass":
		runs, err = sw.Mass(ctx, values)
	case "cp":
		runs, err = sw.SpecificHeat(ctx, values)
	default:
		return fmt.Errorf("unknown sweep axis: %s (want emissivity, mass, or cp)", axis)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tT50 TARGET\tHALF-COOLING TIME\tFINAL TEMP\n", strings.ToUpper(axis))
	for _, r := range runs {
		if r.Milestones.T50.Reached {
			fmt.Fprintf(w, "%.2f\t%.1f K\t%.1f s\t%.1f K\n",
				r.Value, r.Milestones.T50.Target, r.Milestones.T50.Time, r.Trajectory.Final())
		} else {
			fmt.Fprintf(w, "%.2f\t%.1f K\tnot reached\t%.1f K\n",
				r.Value, r.Milestones.T50.Target, r.Trajectory.Final())
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	series := make([][]float64, len(runs))
	for i, r := range runs {
		series[i] = r.Trajectory.Temps
	}
	fmt.Println()
	fmt.Println(viz.OverlayPlot(series, fmt.Sprintf("temperature (K) per %s value", axis)))

	return nil
}

func parseValues(raw, axis string) ([]float64, error) {
	if raw == "" {
		// Default sweep values per axis.
		switch axis {
		case "cp":
			return []float64{200, 300, 400, 500, 600}, nil
		default:
			return []float64{0.2, 0.4, 0.6, 0.8, 1.0}, nil
		}
	}

	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad sweep value %q: %w", part, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func paramsFromMeta(meta *storage.RunMetadata) (model.Params, error) {
	cfg := &config.Config{
		InitialTemp:     meta.InitialTemp,
		AmbientTemp:     meta.AmbientTemp,
		Emissivity:      meta.Emissivity,
		EmissivityModel: meta.EmissivityModel,
		SurfaceArea:     meta.SurfaceArea,
		Mass:            meta.Mass,
		SpecificHeat:    meta.SpecificHeat,
	}
	return cfg.Params()
}

func metaFromConfig(cfg *config.Config) storage.RunMetadata {
	return storage.RunMetadata{
		Solver:          cfg.Solver,
		EmissivityModel: cfg.EmissivityModel,
		Emissivity:      cfg.Emissivity,
		InitialTemp:     cfg.InitialTemp,
		AmbientTemp:     cfg.AmbientTemp,
		SurfaceArea:     cfg.SurfaceArea,
		Mass:            cfg.Mass,
		SpecificHeat:    cfg.SpecificHeat,
		TotalTime:       cfg.TotalTime,
		TimeStep:        cfg.TimeStep,
		Tolerance:       cfg.Tolerance,
	}
}

func loadTrajectory(st *storage.Store, runID string) (*storage.RunMetadata, *thermo.Trajectory, *storage.Series, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(series.Times) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, &thermo.Trajectory{Times: series.Times, Temps: series.Temps}, series, nil
}

func runCrossing(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, traj, _, err := loadTrajectory(st, args[0])
	if err != nil {
		return err
	}

	p, err := paramsFromMeta(meta)
	if err != nil {
		return err
	}

	t, ok := analysis.CrossingTime(traj, p, crossTarget)
	fmt.Println(crossingReport(p, crossTarget, meta.TotalTime, t, ok))
	return nil
}

// crossingReport phrases a crossing result. An undefined crossing has two
// distinct causes: a target outside the open cooling interval can never be
// crossed, while an in-range target simply was not reached before the
// horizon.
func crossingReport(p model.Params, target, horizon, t float64, ok bool) string {
	if ok {
		return fmt.Sprintf("temperature reaches %.1f K after %.1f s", target, t)
	}
	if target >= p.Initial || target <= p.Ambient {
		return fmt.Sprintf("target %.1f K is outside the cooling range (%.1f K, %.1f K)",
			target, p.Ambient, p.Initial)
	}
	return fmt.Sprintf("target %.1f K is never reached within the %.0f s horizon", target, horizon)
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
	fmt.Fprintln(w, "ID\tTIME\tT0\tAMBIENT\tEMISSIVITY\tDURATION\tSOLVER")

	for _, run := range runs {
		eps := fmt.Sprintf("%.2f", run.Emissivity)
		if run.EmissivityModel == "oxidized" {
			eps = "oxidized"
		}
		fmt.Fprintf(w, "%s\t%s\t%.0fK\t%.0fK\t%s\t%.0fs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.InitialTemp,
			run.AmbientTemp,
			eps,
			run.TotalTime,
			run.Solver,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, _, series, err := loadTrajectory(st, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(series.Times))

	fmt.Println(viz.TemperaturePlot(series.Temps, meta.AmbientTemp))
	fmt.Println()
	fmt.Println(viz.FluxPlot(series.Flux))
	fmt.Println()
	fmt.Println(viz.RatePlot(series.Rates))

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
	_, _, series, err := loadTrajectory(st, args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "temperature", "heat_flux", "cooling_rate"}); err != nil {
		return err
	}

	for i := range series.Times {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 6, 64),
			strconv.FormatFloat(series.Temps[i], 'f', 6, 64),
			strconv.FormatFloat(series.Flux[i], 'f', 6, 64),
			strconv.FormatFloat(series.Rates[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, _, series, err := loadTrajectory(st, args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, series)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, traj, _, err := loadTrajectory(st, args[0])
	if err != nil {
		return err
	}

	svg := export.CoolingCurveSVG(traj, meta.AmbientTemp, 800, 400)
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to plot", args[0])
	}

	out := svgOut
	if out == "" {
		out = meta.ID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	p, traj, err := integrate(cfg)
	if err != nil {
		return err
	}

	flux := analysis.HeatFlux(traj, p)
	rates := analysis.CoolingRate(traj)

	m := viz.NewModel(traj, flux, rates, p, frameRate)
	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

func compareSolvers(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	fmt.Printf("comparing solvers (step=%.1fs, duration=%.0fs, tol=%.0e)\n\n",
		cfg.TimeStep, cfg.TotalTime, cfg.Tolerance)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tFINAL TEMP\tT50\tTIME")

	for _, name := range []string{"rk45", "rk4"} {
		sv, err := getSolver(name)
		if err != nil {
			return err
		}

		start := time.Now()
		traj, err := sv.Solve(p.Derivative(), p.Initial, cfg.Grid(), cfg.Tolerance)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		ms := analysis.ComputeMilestones(traj, p)
		t50 := "not reached"
		if ms.T50.Reached {
			t50 = fmt.Sprintf("%.1f s", ms.T50.Time)
		}
		fmt.Fprintf(w, "%s\t%.3f K\t%s\t%v\n", name, traj.Final(), t50, elapsed)
	}

	return w.Flush()
}

func compareEmissivity(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.EmissivityModel = "constant"
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	sw := sweep.New(p, cfg.Grid(), cfg.Tolerance)
	cmp, err := sw.CompareEmissivity(context.Background(), model.Oxidized())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMISSIVITY\tT90\tT50\tT10\tFINAL TEMP")
	printComparisonRow(w, fmt.Sprintf("constant %.2f", cfg.Emissivity), cmp.ConstantMilestones, cmp.Constant)
	printComparisonRow(w, "oxidized", cmp.VariableMilestones, cmp.Variable)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	if cmp.Crosses {
		fmt.Printf("cooling curves cross at %.1f K after %.1f s\n", cmp.CrossTemp, cmp.CrossTime)
	} else {
		fmt.Println("cooling curves do not cross within the horizon")
	}

	fmt.Println()
	fmt.Println(viz.OverlayPlot([][]float64{cmp.Constant.Temps, cmp.Variable.Temps},
		"temperature (K), constant vs oxidized emissivity"))

	return nil
}

func printComparisonRow(w *tabwriter.Writer, label string, ms analysis.Milestones, tr *thermo.Trajectory) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f K\n", label,
		milestoneCell(ms.T90), milestoneCell(ms.T50), milestoneCell(ms.T10), tr.Final())
}

func milestoneCell(m analysis.Milestone) string {
	if m.Reached {
		return fmt.Sprintf("%.1f s", m.Time)
	}
	return "not reached"
}
