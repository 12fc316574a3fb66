package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"restitch/internal/encoders"
)

func newEncodersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "encoders",
		Short: "Show which AAC encoder this installation will use",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runner, err := ctx.newRunner()
			if err != nil {
				return err
			}

			resolved := encoders.NewResolver(runner, logger).Resolve(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Codec:       %s\n", resolved.Codec)
			fmt.Fprintf(out, "Bitrate:     %s\n", resolved.Bitrate)
			fmt.Fprintf(out, "Sample rate: %d Hz\n", resolved.SampleRate)
			if resolved.Profile != "" {
				fmt.Fprintf(out, "Profile:     %s\n", resolved.Profile)
			}
			if resolved.Fallback {
				fmt.Fprintln(out, "Note: preferred encoder unavailable, using the fallback")
			}
			return nil
		},
	}
}
