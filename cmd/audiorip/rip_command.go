package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"audiorip/internal/catalog"
	"audiorip/internal/config"
	"audiorip/internal/container"
	"audiorip/internal/disc"
	"audiorip/internal/logging"
	"audiorip/internal/preflight"
	"audiorip/internal/ripping"
	"audiorip/internal/toc"
)

type ripOptions struct {
	format    string
	output    string
	tracks    []int
	wait      bool
	overwrite bool
	stdout    bool
}

func bindRipFlags(cmd *cobra.Command, opts *ripOptions) {
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "", "Output format: wav or raw (default wav)")
	f.StringVarP(&opts.output, "output", "o", "", "Output directory (default current directory)")
	f.IntSliceVarP(&opts.tracks, "track", "t", nil, "Rip only this track (repeatable)")
	f.BoolVar(&opts.wait, "wait", false, "Wait for a disc to be inserted before ripping")
	f.BoolVar(&opts.overwrite, "overwrite", false, "Replace existing output files")
	f.BoolVar(&opts.stdout, "stdout", false, "Write a single track to standard output")
}

func newRipCommand(ctx *commandContext) *cobra.Command {
	opts := &ripOptions{}
	cmd := &cobra.Command{
		Use:   "rip",
		Short: "Rip tracks from the disc (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRip(cmd, ctx, opts)
		},
	}
	bindRipFlags(cmd, opts)
	return cmd
}

func runRip(cmd *cobra.Command, ctx *commandContext, opts *ripOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	logger = logging.NewComponentLogger(logger, "cli")

	kind, err := resolveKind(cfg, opts.format)
	if err != nil {
		return err
	}
	outputDir := cfg.Output.Dir
	if opts.output != "" {
		outputDir, err = config.ExpandPath(opts.output)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", outputDir, err)
		}
	}
	wait := opts.wait || cfg.Device.WaitForMedia

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := preflight.RunAll(runCtx, cfg, !wait)
	if outputDir != cfg.Output.Dir {
		checks = append(checks, preflight.CheckDirectoryAccess("Output directory", outputDir))
	}
	if failed := preflight.Failed(checks); len(failed) > 0 {
		parts := make([]string, 0, len(failed))
		for _, r := range failed {
			parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
		return fmt.Errorf("preflight failed: %s", strings.Join(parts, "; "))
	}

	if wait {
		if err := waitForDisc(runCtx, cfg, logger); err != nil {
			return err
		}
	}

	var rec ripping.Recorder
	if cfg.Catalog.Enabled {
		store, err := catalog.Open(runCtx, cfg.Catalog.Path)
		if err != nil {
			logging.WarnWithContext(logger, "catalog unavailable; history not recorded", "catalog_open_failed",
				logging.String("path", cfg.Catalog.Path),
				logging.Error(err),
				logging.Hint("delete the catalog file or set catalog.enabled = false"),
			)
		} else {
			defer store.Close()
			rec = store
		}
	}

	session, err := disc.OpenSession(disc.SessionOptions{
		Device:   cfg.Device.Path,
		LockDir:  cfg.Paths.StateDir,
		SpinUp:   cfg.Device.SpinUp,
		SpinDown: cfg.Device.SpinDownOnExit,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()
	// Spin down and release the drive as soon as an interrupt arrives; the
	// in-flight read fails and the session loop stops before the next track.
	abortOnSignal := context.AfterFunc(runCtx, func() {
		logger.Info("interrupted; spinning down drive")
		_ = session.Abort()
	})
	defer abortOnSignal()

	ripper := ripping.NewRipper(session.Device(), cfg.Extraction.ChunkFrames, logger)

	if opts.stdout {
		return streamTrack(runCtx, cmd.OutOrStdout(), ripper, opts.tracks, kind)
	}

	progress := newProgressReporter(cmd.ErrOrStderr(), !ctx.flags.quiet && !ctx.flags.verbose)
	ripper.OnProgress = progress.update
	summary, ripErr := ripper.RipDisc(runCtx, ripping.Options{
		Device:          cfg.Device.Path,
		OutputDir:       outputDir,
		Kind:            kind,
		NameFormat:      cfg.Output.NameFormat,
		Tracks:          opts.tracks,
		ContinueOnError: cfg.Output.ContinueOnError,
		Overwrite:       opts.overwrite || cfg.Output.Overwrite,
		TrackLogLevel:   progress.trackLogLevel(),
		OnTrackStart:    progress.start,
		OnTrackDone:     func(ripping.TrackOutcome) { progress.finish() },
	}, rec)

	if !ctx.flags.quiet && len(summary.Outcomes) > 0 {
		printSummary(cmd.OutOrStdout(), summary)
	}
	if summary.Aborted || runCtx.Err() != nil {
		return fmt.Errorf("rip interrupted: %w", context.Canceled)
	}
	return ripErr
}

func resolveKind(cfg *config.Config, flag string) (container.Kind, error) {
	name := cfg.Output.Format
	if strings.TrimSpace(flag) != "" {
		name = flag
	}
	return container.ParseKind(name)
}

func waitForDisc(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	waitCtx := ctx
	if secs := cfg.Device.WaitTimeoutSeconds; secs > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
		defer cancel()
	}
	logger.Info("waiting for disc", logging.Device(cfg.Device.Path))
	status, err := disc.WaitForMedia(waitCtx, cfg.Device.Path, logger)
	if err != nil {
		return fmt.Errorf("wait for disc: %w", err)
	}
	logger.Debug("disc ready", logging.String("status", status.String()))
	return nil
}

func streamTrack(ctx context.Context, w io.Writer, ripper *ripping.Ripper, tracks []int, kind container.Kind) error {
	ranges, err := ripper.BuildTrackTable()
	if err != nil {
		return err
	}
	selected, err := ripping.SelectTracks(ranges, tracks)
	if err != nil {
		return err
	}
	if len(selected) != 1 {
		return errors.New("--stdout needs exactly one track; pass --track")
	}
	_, err = ripper.StreamTrack(ctx, selected[0], w, kind)
	return err
}

func printSummary(w io.Writer, summary ripping.Summary) {
	rows := make([][]string, 0, len(summary.Outcomes))
	var total int64
	for _, o := range summary.Outcomes {
		total += o.Bytes
		rows = append(rows, []string{
			fmt.Sprintf("%d", o.Range.Track),
			formatTrackLength(o.Range),
			humanize.Bytes(uint64(o.Bytes)),
			string(o.Status),
			o.Path,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]column{num("Track"), num("Length"), num("Size"), col("Status"), col("Path")},
		rows,
	))
	fmt.Fprintf(w, "%d ripped, %d failed, %s written (session %s)\n",
		summary.Ripped(), summary.Failed(), humanize.Bytes(uint64(total)), summary.SessionID)
}

func formatTrackLength(r toc.Range) string {
	d := r.Duration().Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
