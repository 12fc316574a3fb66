package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"restitch/internal/runlog"
)

const runTimeFormat = "2006-01-02 15:04:05"

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent reconstruction runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runlog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			title := cases.Title(language.Und)
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				detail := run.OutputPath
				if run.Status == runlog.StatusFailed {
					detail = run.ErrorMessage
				}
				rows = append(rows, []string{
					run.RunID,
					title.String(string(run.Kind)),
					title.String(string(run.Status)),
					run.Stage,
					run.InputPath,
					detail,
					run.UpdatedAt.Local().Format(runTimeFormat),
				})
			}
			headers := []string{"Run", "Kind", "Status", "Stage", "Input", "Result", "Updated"}
			fmt.Fprintln(out, renderTable(out, headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
