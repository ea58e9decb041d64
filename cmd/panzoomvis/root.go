package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/engine"
	"github.com/elektrokombinacija/gio-panzoom/internal/logging"
	"github.com/elektrokombinacija/gio-panzoom/internal/metrics"
	"github.com/elektrokombinacija/gio-panzoom/internal/vis"
)

var rootCmd = &cobra.Command{
	Use:   "panzoomvis",
	Short: "Pan, zoom and pinch around a demo board",
	Long: `panzoomvis shows a board of named elements inside a viewport that follows
wheel, drag, pinch and double-click input. Options are read from a YAML file.`,
	SilenceUsage: true,
	RunE:         runVis,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML options file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
	rootCmd.Flags().Int("width", 1200, "window width in dp")
	rootCmd.Flags().Int("height", 800, "window height in dp")

	rootCmd.AddCommand(validateCmd)
}

// loadOptions reads --config, or returns the defaults when it is unset.
func loadOptions(cmd *cobra.Command) (config.Options, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.DefaultOptions(), nil
	}
	return config.Load(path)
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	s, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(s)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

func runVis(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	var rec engine.Recorder
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		reg := prometheus.NewRegistry()
		r, err := metrics.NewRecorder(reg)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		rec = r

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			logger.Info("serving metrics", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Pan/Zoom"),
			app.Size(unit.Dp(width), unit.Dp(height)),
		)

		application := vis.NewApp(opts, logger, rec)
		if err := application.Run(window); err != nil {
			logger.Error("window closed with error", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}
