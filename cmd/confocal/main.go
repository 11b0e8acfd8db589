package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/confocal/internal/automation"
	"github.com/san-kum/confocal/internal/config"
	"github.com/san-kum/confocal/internal/export"
	"github.com/san-kum/confocal/internal/field"
	"github.com/san-kum/confocal/internal/gui"
	"github.com/san-kum/confocal/internal/storage"
	"github.com/san-kum/confocal/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	traceLevel string
	// Scene parameters
	zoom       float64
	ellipses   int
	hyperbolae int
	resolution int
	focal      float64
	step       float64
	wrapFactor float64
	theme      string
	width      float64
	height     float64
	// Output
	output     string
	format     string
	fullscreen bool
	// Trace
	ticks     int
	direction string
	saveDir   string
	runsDir   string
)

var tracers = []string{"confocal.geometry", "confocal.field", "confocal.viz", "confocal.gui", "confocal.automation"}

// main registers the confocal commands and flags, opens the terminal
// viewer when no subcommand is given and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "confocal",
		Short: "interactive confocal ellipses and hyperbolae",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setTraceLevel(traceLevel)
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "error", "trace level (error, info, debug)")
	rootCmd.PersistentFlags().Float64Var(&zoom, "zoom", config.DefaultZoomFactor, "zoom factor")
	rootCmd.PersistentFlags().IntVar(&ellipses, "ellipses", 10, "number of ellipses")
	rootCmd.PersistentFlags().IntVar(&hyperbolae, "hyperbolae", 24, "number of hyperbolae")
	rootCmd.PersistentFlags().IntVar(&resolution, "resolution", 100, "samples per curve")
	rootCmd.PersistentFlags().Float64Var(&focal, "focal", config.DefaultFocal, "initial focal distance")
	rootCmd.PersistentFlags().Float64Var(&step, "step", config.DefaultStep, "focal distance step per tick")
	rootCmd.PersistentFlags().Float64Var(&wrapFactor, "wrap", config.DefaultWrapFactor, "wrap limit as a multiple of viewport width")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.PersistentFlags().Float64Var(&width, "width", config.DefaultWidth, "viewport width in pixels")
	rootCmd.PersistentFlags().Float64Var(&height, "height", config.DefaultHeight, "viewport height in pixels")
	rootCmd.PersistentFlags().BoolVar(&fullscreen, "fullscreen", false, "start fullscreen")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal viewer",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "window viewer",
		RunE:  runGUI,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the scene to SVG",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export scene points",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "plot the focal distance over repeated input",
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&ticks, "ticks", 500, "number of update ticks")
	traceCmd.Flags().StringVar(&direction, "direction", "right", "direction held (left, right)")
	traceCmd.Flags().StringVar(&saveDir, "save", "", "save the run under this directory")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "replay scripted input from a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().StringVar(&saveDir, "save", "", "save the run under this directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  runRuns,
	}
	runsCmd.Flags().StringVar(&runsDir, "dir", "runs", "runs directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s %d ellipses, %d hyperbolae, resolution %d\n", name, p.Ellipses, p.Hyperbolae, p.Resolution)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, renderCmd, exportCmd, traceCmd, scriptCmd, runsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setTraceLevel(name string) error {
	var level tracing.TraceLevel
	switch name {
	case "error":
		level = tracing.LevelError
	case "info":
		level = tracing.LevelInfo
	case "debug":
		level = tracing.LevelDebug
	default:
		return fmt.Errorf("unknown trace level: %s", name)
	}
	for _, key := range tracers {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}

// loadConfig starts from the preset or defaults, applies the config file,
// then any flags set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("zoom") {
		cfg.ZoomFactor = zoom
	}
	if flags.Changed("ellipses") {
		cfg.Ellipses = ellipses
	}
	if flags.Changed("hyperbolae") {
		cfg.Hyperbolae = hyperbolae
	}
	if flags.Changed("resolution") {
		cfg.Resolution = resolution
	}
	if flags.Changed("focal") {
		cfg.FocalDistance = focal
	}
	if flags.Changed("step") {
		cfg.Step = step
	}
	if flags.Changed("wrap") {
		cfg.WrapFactor = wrapFactor
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, err := cfg.Generator()
	if err != nil {
		return err
	}
	return viz.Run(viz.NewApp(gen, cfg.Settings(), viz.GetTheme(cfg.Theme)), fullscreen)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, err := cfg.Generator()
	if err != nil {
		return err
	}
	return gui.Run(gen, cfg.Settings(), int(cfg.Viewport.Width), int(cfg.Viewport.Height), fullscreen)
}

// newController builds a controller on the configured viewport whose
// renderer is discarded; one-shot commands read its state directly.
func newController(cmd *cobra.Command) (*field.Controller, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	gen, err := cfg.Generator()
	if err != nil {
		return nil, nil, err
	}
	ctrl := field.New(gen, cfg.Settings(), cfg.Viewport.Width, cfg.Viewport.Height)
	if err := ctrl.Start(); err != nil {
		return nil, nil, err
	}
	return ctrl, cfg, nil
}

func openOutput() (io.WriteCloser, error) {
	if output == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(output)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func runRender(cmd *cobra.Command, args []string) error {
	ctrl, cfg, err := newController(cmd)
	if err != nil {
		return err
	}
	w, err := openOutput()
	if err != nil {
		return err
	}
	defer w.Close()

	return export.WriteSVG(w, ctrl.Scene(), ctrl.Bounds().Layout(), int(cfg.Viewport.Width), int(cfg.Viewport.Height))
}

func runExport(cmd *cobra.Command, args []string) error {
	ctrl, _, err := newController(cmd)
	if err != nil {
		return err
	}
	w, err := openOutput()
	if err != nil {
		return err
	}
	defer w.Close()

	switch format {
	case "csv":
		return export.WriteCSV(w, ctrl.Scene())
	case "json":
		return export.WriteJSON(w, ctrl.FocalDistance(), ctrl.Scene(), ctrl.Bounds().Layout())
	default:
		return fmt.Errorf("unknown format: %s (available: csv, json)", format)
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	dir, err := field.ParseDirection(direction)
	if err != nil {
		return err
	}
	return runRecorded(cmd, automation.Hold(dir, ticks))
}

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	return runRecorded(cmd, scenario)
}

// runRecorded drives a headless controller through scenario, plots the
// focal distance and optionally saves the session.
func runRecorded(cmd *cobra.Command, scenario *automation.Scenario) error {
	ctrl, _, err := newController(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rec, err := automation.RunScenario(ctx, scenario, ctrl)
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(rec.Focal(),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("focal distance, %s (limit ±%.0f)", scenario.Name, ctrl.Limit())),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Printf("final: %s\n", ctrl.Label())
	fmt.Printf("wraps: %d\n", rec.Wraps())

	if saveDir == "" {
		return nil
	}
	st := storage.New(saveDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(rec, ctrl)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	fmt.Printf("saved: %s\n", filepath.Join(saveDir, runID))
	return nil
}

func runRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(runsDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%-32s %s  %4d samples  %2d wraps  %s\n",
			run.ID, run.Timestamp.Format("2006-01-02 15:04:05"), run.Samples, run.Wraps, run.Final)
	}
	return nil
}
