package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"restitch/internal/sweep"
)

func newSweepCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove stale intermediate files from the temp directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			removed, err := sweep.New(cfg, sweep.WithLogger(logger)).Run()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch removed {
			case 0:
				fmt.Fprintln(out, "Nothing to remove")
			case 1:
				fmt.Fprintln(out, "Removed 1 stale artifact")
			default:
				fmt.Fprintf(out, "Removed %d stale artifacts\n", removed)
			}
			return nil
		},
	}
}
