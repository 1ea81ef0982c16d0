package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/config"
	"github.com/umuturukk/de-propulsion-v2.0/internal/data"
	"github.com/umuturukk/de-propulsion-v2.0/internal/logging"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
)

var (
	configFile string
	logLevel   string
	curveDir   string
	preset     string
)

var rootCmd = &cobra.Command{
	Use:          "deprop",
	Short:        "Diesel-electric propulsion fuel optimizer",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_, flush := logging.Setup(logLevel)
		cobra.OnFinalize(flush)
	},
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(curveCmd)
	rootCmd.AddCommand(powerFlowCmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to project YAML (defaults to the built-in reference vessel)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&curveDir, "curve-dir", "./curves", "Directory of curve preset YAML files")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "Curve preset to apply over the configured curves")
}

// loadProject returns the configured project with --preset applied to its curves.
func loadProject() (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if preset == "" {
		return cfg, nil
	}

	presets, err := data.LoadCurvePresets(curveDir)
	if err != nil {
		return nil, err
	}
	p, err := data.FindCurvePreset(presets, preset)
	if err != nil {
		return nil, err
	}
	overlay := make(map[model.CurveKey]config.CurvePoints, len(p.Curves))
	for k, c := range p.Curves {
		overlay[k] = c.Map()
	}
	cfg.Curves = config.MergeCurves(cfg.Curves, overlay)
	return cfg, cfg.Validate()
}

func newOptimizer(cfg *config.Config) (*combination.Optimizer, error) {
	cc, err := sfoc.NewClassCurves(cfg.CurveSet())
	if err != nil {
		return nil, err
	}
	return combination.NewOptimizer(cc, combination.WithPolicy(cfg.Policy)), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
