package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"restitch/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check tools, directories, and disk space",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, result := range preflight.Run(cfg) {
				status := "OK"
				if !result.Passed {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(out, "%-6s %-20s %s\n", status, result.Name, result.Detail)
			}
			if failed > 0 {
				return fmt.Errorf("%d preflight check(s) failed", failed)
			}
			return nil
		},
	}
}
