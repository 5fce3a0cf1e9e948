package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"audiorip/internal/catalog"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var pruneOlderThan time.Duration

	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "List past rip sessions, or the tracks of one session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Catalog.Enabled {
				return fmt.Errorf("catalog is disabled (set catalog.enabled = true)")
			}
			store, err := catalog.Open(cmd.Context(), cfg.Catalog.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if pruneOlderThan > 0 {
				n, err := store.Prune(cmd.Context(), time.Now().Add(-pruneOlderThan))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Pruned %d session(s)\n", n)
				return nil
			}
			if len(args) == 1 {
				return printSessionTracks(cmd, store, args[0])
			}

			sessions, err := store.ListSessions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No rip sessions recorded")
				return nil
			}
			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				rows = append(rows, []string{
					s.ID,
					humanize.Time(s.StartedAt),
					s.Device,
					s.Format,
					fmt.Sprintf("%d", s.TrackCount),
					string(s.Status),
					s.OutputDir,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]column{col("Session"), col("Started"), col("Device"), col("Format"), num("Tracks"), col("Status"), col("Output")},
				rows,
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum sessions to list (0 for all)")
	cmd.Flags().DurationVar(&pruneOlderThan, "prune-older-than", 0, "Delete sessions started longer ago than this duration")
	return cmd
}

func printSessionTracks(cmd *cobra.Command, store *catalog.Store, id string) error {
	session, err := store.GetSession(cmd.Context(), id)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session %s not found", id)
	}
	tracks, err := store.Tracks(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s on %s (%s), %s\n", session.ID, session.Device, session.Status, humanize.Time(session.StartedAt))
	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.Track),
			fmt.Sprintf("%d", t.Frames()),
			humanize.Bytes(uint64(t.Bytes)),
			t.Duration.Round(time.Millisecond).String(),
			string(t.Status),
			t.Path,
			t.ErrorMessage,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]column{num("Track"), num("Frames"), num("Size"), num("Took"), col("Status"), col("Path"), col("Error")},
		rows,
	))
	return nil
}
