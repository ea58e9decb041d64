package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an options file and print every problem found",
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		if err := opts.Validate(); err != nil {
			return fmt.Errorf("invalid options:\n%w", err)
		}
		lo, hi := opts.ScaleRange()
		fmt.Fprintf(cmd.OutOrStdout(), "ok: scale [%g, %g], initial %s\n", lo, hi, opts.Initial())
		return nil
	},
}
