package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/gio-panzoom/internal/sim"
)

var replayCmd = &cobra.Command{
	Use:   "replay SCRIPT",
	Short: "Run a scripted gesture sequence headlessly and report the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		script, err := sim.LoadScript(args[0])
		if err != nil {
			return err
		}
		trace, _ := cmd.Flags().GetBool("trace")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		res, err := sim.RunScript(sim.Config{Script: script, Logger: logger, Trace: trace}, timeout)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
		}

		m := res.Metrics
		fmt.Fprintf(cmd.OutOrStdout(), "%d steps, %d frames, %.0fms simulated\n", m.Steps, m.Frames, m.SimulatedMs)
		fmt.Fprintf(cmd.OutOrStdout(), "final: scale %.4g x %.2f y %.2f\n", m.Final.Scale, m.Final.X, m.Final.Y)
		if m.Rejected > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "rejected: %d\n", m.Rejected)
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().String("out", "", "write the full result as JSON to this file")
	replayCmd.Flags().Bool("trace", false, "include every accepted transform in the result")
	replayCmd.Flags().Duration("timeout", 30*time.Second, "wall-clock limit for the run")
	rootCmd.AddCommand(replayCmd)
}
