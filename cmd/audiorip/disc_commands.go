package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiorip/internal/disc"
	"audiorip/internal/logging"
	"audiorip/internal/toc"
)

// Swapped out in tests.
var (
	openSession      = disc.OpenSession
	checkDriveStatus = disc.CheckDriveStatus
	newEjector       = disc.NewEjector
)

func newTOCCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toc",
		Short: "Print the disc's track table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			session, err := openSession(disc.SessionOptions{
				Device:  cfg.Device.Path,
				LockDir: cfg.Paths.StateDir,
				SpinUp:  cfg.Device.SpinUp,
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			defer session.Close()

			ranges, err := toc.BuildTrackTable(session.Device())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ranges) == 0 {
				fmt.Fprintln(out, "No tracks on disc")
				return nil
			}
			rows := make([][]string, 0, len(ranges))
			for _, r := range ranges {
				rows = append(rows, []string{
					fmt.Sprintf("%d", r.Track),
					r.StartTimecode.String(),
					fmt.Sprintf("%d", r.Start),
					fmt.Sprintf("%d", r.Frames()),
					formatTrackLength(r),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]column{num("Track"), num("Start"), num("Frame"), num("Frames"), num("Length")},
				rows,
			))
			total := toc.TotalFrames(ranges)
			fmt.Fprintf(out, "%d tracks, %d frames\n", len(ranges), total)
			return nil
		},
	}
}

func newSpindownCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "spindown",
		Short: "Stop the drive motor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			session, err := openSession(disc.SessionOptions{
				Device:   cfg.Device.Path,
				LockDir:  cfg.Paths.StateDir,
				SpinDown: true,
				Logger:   logger,
			})
			if err != nil {
				return err
			}
			if err := session.Close(); err != nil {
				return err
			}
			logging.NewComponentLogger(logger, "cli").Info("drive spun down",
				logging.Device(cfg.Device.Path))
			return nil
		},
	}
}

func newEjectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "eject",
		Short: "Eject the disc",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			device := ctx.devicePath()
			if err := newEjector().Eject(cmd.Context(), device); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ejected %s\n", device)
			return nil
		},
	}
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show drive status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			device := ctx.devicePath()
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			status, err := checkDriveStatus(device)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine(device, statusError, err.Error(), colorize))
				return fmt.Errorf("query drive status: %w", err)
			}
			fmt.Fprintln(out, renderStatusLine(device, driveStatusKind(status), status.String(), colorize))
			return nil
		},
	}
}
