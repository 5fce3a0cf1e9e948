package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiorip/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var noDisc bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run preflight checks for the drive, disc, and output paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cmd.Context(), cfg, !noDisc)
			for _, r := range results {
				kind := statusOK
				switch {
				case !r.Passed && r.Optional:
					kind = statusWarn
				case !r.Passed:
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d check(s) failed", len(failed))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noDisc, "no-disc", false, "Skip the loaded-disc check")
	return cmd
}
