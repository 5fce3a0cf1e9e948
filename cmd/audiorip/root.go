package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)
	rip := &ripOptions{}

	rootCmd := &cobra.Command{
		Use:           "audiorip",
		Short:         "Rip audio CD tracks to PCM or WAVE files",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRip(cmd, ctx, rip)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.StringVarP(&flags.device, "device", "d", "", "CD-ROM device (default /dev/sr0)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log track lengths, read ranges, and progress")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Only log errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	bindRipFlags(rootCmd, rip)

	rootCmd.AddCommand(newRipCommand(ctx))
	rootCmd.AddCommand(newTOCCommand(ctx))
	rootCmd.AddCommand(newSpindownCommand(ctx))
	rootCmd.AddCommand(newEjectCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newVerifyCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
