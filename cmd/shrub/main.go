// Command shrub generates and renders 3-D turtle visualizations of
// Collatz-type sequences.
//
// With no subcommand it launches the interactive terminal explorer. The
// render subcommand keeps the original script's positional form:
//
//	shrub render [n_starts] [max_start] [rule]
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/collatzlab/shrub/internal/collatz"
	"github.com/collatzlab/shrub/internal/config"
	"github.com/collatzlab/shrub/internal/export"
	"github.com/collatzlab/shrub/internal/server"
	"github.com/collatzlab/shrub/internal/shrub"
	"github.com/collatzlab/shrub/internal/tui"
	"github.com/collatzlab/shrub/internal/viz"
)

var (
	verbose    bool
	configFile string
	preset     string

	leftDeg      float64
	rightDeg     float64
	headingDeg   float64
	verticalStep float64
	policy       string
	seed         int64
	maxIter      int
	hero         int64
	workers      int

	canvasWidth  int
	canvasHeight int

	addr    string
	outFile string
	rule    string
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

func execute() error {
	rootCmd := &cobra.Command{
		Use:   "shrub",
		Short: "3-D turtle visualizations of Collatz-type sequences",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := baseConfig()
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a named preset")

	renderCmd := &cobra.Command{
		Use:   "render [n_starts] [max_start] [rule]",
		Short: "grow a shrub and draw it in the terminal",
		Args:  cobra.MaximumNArgs(3),
		RunE:  runRender,
	}
	addRunFlags(renderCmd)
	renderCmd.Flags().IntVar(&canvasWidth, "width", 100, "canvas width (cells)")
	renderCmd.Flags().IntVar(&canvasHeight, "height", 40, "canvas height (cells)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := baseConfig()
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "browser-based explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.New(log.Default()).ListenAndServe(addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", defaultAddr(), "listen address")

	orbitCmd := &cobra.Command{
		Use:   "orbit [start]",
		Short: "plot the value sequence of one starting integer",
		Args:  cobra.ExactArgs(1),
		RunE:  runOrbit,
	}
	orbitCmd.Flags().StringVar(&rule, "rule", "binary", "recurrence rule")
	orbitCmd.Flags().IntVar(&maxIter, "max-iterations", config.DefaultMaxIterations, "iteration ceiling")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-10s %d starts below %d, %s, %s rise\n",
					name, p.Count, p.MaxStart, p.Rule, p.VerticalPolicy)
			}
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [n_starts] [max_start] [rule]",
		Short: "grow a shrub and write it to an SVG or PNG file",
		Args:  cobra.MaximumNArgs(3),
		RunE:  runExport,
	}
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "shrub.svg", "output file (.svg or .png)")
	exportCmd.Flags().IntVar(&canvasWidth, "width", 1600, "image width (px)")
	exportCmd.Flags().IntVar(&canvasHeight, "height", 1200, "image height (px)")

	rootCmd.AddCommand(renderCmd, tuiCmd, serveCmd, orbitCmd, presetsCmd, exportCmd)

	return rootCmd.Execute()
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&leftDeg, "left", config.DefaultLeftDeg, "left turn (deg)")
	cmd.Flags().Float64Var(&rightDeg, "right", config.DefaultRightDeg, "right turn (deg)")
	cmd.Flags().Float64Var(&headingDeg, "heading", config.DefaultHeadingDeg, "initial heading (deg)")
	cmd.Flags().Float64Var(&verticalStep, "vertical-step", config.DefaultVerticalStep, "vertical rise")
	cmd.Flags().StringVar(&policy, "vertical-policy", "fixed", "vertical policy (fixed|proportional)")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "sampling seed")
	cmd.Flags().IntVar(&maxIter, "max-iterations", config.DefaultMaxIterations, "iteration ceiling")
	cmd.Flags().Int64Var(&hero, "hero", 0, "reference start (0 = rule default)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = all cores)")
}

// baseConfig layers preset and config file under any later flag overrides.
func baseConfig() (*config.Config, error) {
	cfg := config.Default()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)",
				preset, strings.Join(config.ListPresets(), ", "))
		}
		*cfg = *p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

// runConfig builds the pipeline config for commands taking the original
// script's positional form plus tuning flags.
func runConfig(cmd *cobra.Command, args []string) (shrub.Config, error) {
	cfg, err := baseConfig()
	if err != nil {
		return shrub.Config{}, err
	}

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return shrub.Config{}, fmt.Errorf("n_starts must be an integer, got %q", args[0])
		}
		cfg.Count = n
	}
	if len(args) > 1 {
		// The originals accept scientific notation like 1e6 here.
		f, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return shrub.Config{}, fmt.Errorf("max_start must be a number, got %q", args[1])
		}
		cfg.MaxStart = int64(f)
	}
	if len(args) > 2 {
		cfg.Rule = args[2]
	}

	override := func(name string, fn func()) {
		if cmd.Flags().Changed(name) {
			fn()
		}
	}
	override("left", func() { cfg.LeftDeg = leftDeg })
	override("right", func() { cfg.RightDeg = rightDeg })
	override("heading", func() { cfg.HeadingDeg = headingDeg })
	override("vertical-step", func() { cfg.VerticalStep = verticalStep })
	override("vertical-policy", func() { cfg.VerticalPolicy = policy })
	override("seed", func() { cfg.Seed = seed })
	override("max-iterations", func() { cfg.MaxIterations = maxIter })
	override("hero", func() { cfg.Hero = hero })
	override("workers", func() { cfg.Workers = workers })

	return cfg.ToRun()
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := shrub.Grow(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	log.Debug("grown", "lines", len(res.Lines), "elapsed", time.Since(start).Round(time.Millisecond))

	canvas := viz.NewCanvas(canvasWidth, canvasHeight)
	viz.RenderShrub(canvas, viz.FromResult(res), viz.NewCamera())
	fmt.Print(canvas.Render())
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd, args)
	if err != nil {
		return err
	}

	res, err := shrub.Grow(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	cam := viz.NewCamera()
	switch {
	case strings.HasSuffix(outFile, ".svg"):
		if err := os.WriteFile(outFile, []byte(export.SVG(res, cam, canvasWidth, canvasHeight)), 0644); err != nil {
			return err
		}
	case strings.HasSuffix(outFile, ".png"):
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.PNG(f, res, cam, canvasWidth, canvasHeight); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format: %s (want .svg or .png)", outFile)
	}

	log.Info("wrote", "file", outFile, "lines", len(res.Lines))
	return nil
}

func runOrbit(cmd *cobra.Command, args []string) error {
	start, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || start < 1 {
		return fmt.Errorf("start must be a positive integer, got %q", args[0])
	}
	r, err := collatz.ParseRule(rule)
	if err != nil {
		return err
	}

	orbit, err := collatz.Orbit(start, r, maxIter)
	if err != nil {
		return err
	}

	data := make([]float64, len(orbit))
	peak := int64(0)
	for i, v := range orbit {
		data[i] = float64(v)
		if v > peak {
			peak = v
		}
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("orbit of %d (%s)", start, r)),
	)
	fmt.Println(graph)
	fmt.Printf("\nstopping time: %d\npeak value: %d\n", len(orbit)-1, peak)
	return nil
}

// defaultAddr honors the PORT convention of the original deployment.
func defaultAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
