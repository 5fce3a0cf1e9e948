package ripping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"audiorip/internal/catalog"
	"audiorip/internal/container"
	"audiorip/internal/disc"
	"audiorip/internal/logging"
	"audiorip/internal/services"
	"audiorip/internal/toc"
)

// Recorder persists session outcomes. *catalog.Store implements it.
type Recorder interface {
	BeginSession(ctx context.Context, device, format, outputDir string) (*catalog.Session, error)
	SetTrackCount(ctx context.Context, sessionID string, count int) error
	RecordTrack(ctx context.Context, track catalog.Track) error
	FinishSession(ctx context.Context, sessionID string, status catalog.Status) error
}

// Options configures RipDisc.
type Options struct {
	Device          string
	OutputDir       string
	Kind            container.Kind
	NameFormat      string
	Tracks          []int
	ContinueOnError bool
	Overwrite       bool

	// TrackLogLevel is the level of the per-track start and finish lines.
	// The zero value is slog.LevelInfo.
	TrackLogLevel slog.Level

	// OnTrackStart is called before each track is read.
	OnTrackStart func(rng toc.Range, dest string)
	// OnTrackDone is called after each track attempt.
	OnTrackDone func(TrackOutcome)
}

// TrackOutcome is the result of one track attempt.
type TrackOutcome struct {
	Range    toc.Range
	Path     string
	Status   catalog.Status
	Bytes    int64
	Duration time.Duration
	Err      error
}

// Summary describes a finished session.
type Summary struct {
	SessionID string
	Ranges    []toc.Range
	Outcomes  []TrackOutcome
	Aborted   bool
}

// Failed returns the number of tracks that did not rip.
func (s Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status.IsFailure() {
			n++
		}
	}
	return n
}

// Ripped returns the number of tracks written successfully.
func (s Summary) Ripped() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == catalog.StatusRipped {
			n++
		}
	}
	return n
}

// Status is the session status recorded in the catalog.
func (s Summary) Status() catalog.Status {
	switch {
	case s.Aborted:
		return catalog.StatusAborted
	case s.Failed() > 0:
		return catalog.StatusFailed
	default:
		return catalog.StatusRipped
	}
}

// Err joins the errors of failed tracks, or returns nil.
func (s Summary) Err() error {
	var errs []error
	for _, o := range s.Outcomes {
		if o.Status.IsFailure() && o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d tracks failed: %w", len(errs), len(s.Outcomes), errors.Join(errs...))
}

// SelectTracks returns the ranges for the requested track numbers in
// ascending order. An empty request selects every track.
func SelectTracks(ranges []toc.Range, tracks []int) ([]toc.Range, error) {
	if len(tracks) == 0 {
		return ranges, nil
	}
	wanted := slices.Clone(tracks)
	slices.Sort(wanted)
	wanted = slices.Compact(wanted)

	selected := make([]toc.Range, 0, len(wanted))
	for _, n := range wanted {
		idx := slices.IndexFunc(ranges, func(r toc.Range) bool { return r.Track == n })
		if idx < 0 {
			return nil, services.Wrap(services.ErrValidation, "rip", "select tracks",
				fmt.Sprintf("track %d not on disc (disc has %d tracks)", n, len(ranges)), nil)
		}
		selected = append(selected, ranges[idx])
	}
	return selected, nil
}

// TrackPath returns the output path for a track.
func TrackPath(dir, nameFormat string, track int, kind container.Kind) string {
	return filepath.Join(dir, fmt.Sprintf(nameFormat, track)+kind.Extension())
}

// RipDisc reads the table of contents and rips the selected tracks in order.
// A table-of-contents failure is returned directly; track failures are
// collected in the summary and, when ContinueOnError is false, end the
// session after the first one. rec may be nil.
func (r *Ripper) RipDisc(ctx context.Context, opts Options, rec Recorder) (Summary, error) {
	var summary Summary

	if rec != nil {
		session, err := rec.BeginSession(ctx, opts.Device, opts.Kind.String(), opts.OutputDir)
		if err != nil {
			logging.WarnWithContext(r.logger, "catalog unavailable; history not recorded", "catalog_begin_failed",
				logging.Error(err),
				logging.Hint("check catalog.path or disable the catalog"),
				logging.Impact("this rip will not appear in history"),
			)
			rec = nil
		} else {
			summary.SessionID = session.ID
		}
	}
	if summary.SessionID == "" {
		summary.SessionID = uuid.NewString()
	}
	ctx = services.WithSessionID(ctx, summary.SessionID)
	logger := logging.WithContext(ctx, r.logger)

	finish := func(status catalog.Status) {
		if rec == nil {
			return
		}
		if err := rec.FinishSession(context.WithoutCancel(ctx), summary.SessionID, status); err != nil {
			logger.Debug("finish session failed", logging.Error(err))
		}
	}

	ranges, err := r.BuildTrackTable()
	if err != nil {
		finish(catalog.StatusFailed)
		return summary, err
	}
	summary.Ranges = ranges
	if rec != nil {
		if err := rec.SetTrackCount(ctx, summary.SessionID, len(ranges)); err != nil {
			logger.Debug("record track count failed", logging.Error(err))
		}
	}
	logger.Info("disc read", logging.Int("tracks", len(ranges)), logging.Int("frames", toc.TotalFrames(ranges)))

	selected, err := SelectTracks(ranges, opts.Tracks)
	if err != nil {
		finish(catalog.StatusFailed)
		return summary, err
	}

	nameFormat := opts.NameFormat
	if nameFormat == "" {
		nameFormat = "track%d"
	}

	for _, rng := range selected {
		if ctx.Err() != nil {
			summary.Aborted = true
			logger.Info("session interrupted", logging.Int("remaining", len(selected)-len(summary.Outcomes)))
			break
		}

		outcome := r.ripOne(ctx, rng, TrackPath(opts.OutputDir, nameFormat, rng.Track, opts.Kind), opts)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if rec != nil {
			r.record(ctx, rec, summary.SessionID, outcome)
		}
		if opts.OnTrackDone != nil {
			opts.OnTrackDone(outcome)
		}
		if outcome.Status == catalog.StatusAborted {
			summary.Aborted = true
			logger.Info("session interrupted", logging.Int("remaining", len(selected)-len(summary.Outcomes)))
			break
		}
		if outcome.Status.IsFailure() && !opts.ContinueOnError {
			logger.Info("stopping after failed track", logging.Track(rng.Track))
			break
		}
	}

	finish(summary.Status())
	return summary, summary.Err()
}

func (r *Ripper) ripOne(ctx context.Context, rng toc.Range, dest string, opts Options) TrackOutcome {
	ctx = services.WithTrack(ctx, rng.Track)
	logger := logging.WithContext(ctx, r.logger)
	outcome := TrackOutcome{Range: rng, Path: dest}

	if !opts.Overwrite {
		if _, err := os.Stat(dest); err == nil {
			outcome.Status = catalog.StatusSkipped
			outcome.Err = services.Wrap(services.ErrValidation, "rip", "destination", dest+" already exists", nil)
			logging.WarnWithContext(logger, "track skipped; output exists", "track_skipped",
				logging.String("path", dest),
				logging.Hint("pass --overwrite or set output.overwrite = true"),
				logging.Impact("existing file left unchanged"),
			)
			return outcome
		}
	}

	if opts.OnTrackStart != nil {
		opts.OnTrackStart(rng, dest)
	}
	logger.LogAttrs(ctx, opts.TrackLogLevel, "ripping track", logging.String("path", dest), logging.Duration("length", rng.Duration()))

	started := time.Now()
	res, err := r.ripTrack(ctx, rng, dest, opts.Kind)
	outcome.Duration = time.Since(started)
	outcome.Bytes = res.Bytes
	if err != nil {
		outcome.Err = err
		if ctx.Err() != nil || errors.Is(err, disc.ErrClosed) {
			outcome.Status = catalog.StatusAborted
			logging.WarnWithContext(logger, "track interrupted", "track_aborted",
				logging.Error(err),
				logging.String("path", dest),
				logging.Impact("partial output left in place"),
			)
			return outcome
		}
		outcome.Status = services.FailureStatus(err)
		logging.ErrorWithContext(logger, "track failed", "track_"+string(outcome.Status),
			logging.Error(err),
			logging.String("path", dest),
			logging.Hint(hintFor(err)),
		)
		return outcome
	}

	outcome.Status = catalog.StatusRipped
	logger.LogAttrs(ctx, opts.TrackLogLevel, "track ripped",
		logging.String("path", dest),
		logging.Int64("bytes", res.Bytes),
		logging.Duration("elapsed", outcome.Duration),
	)
	return outcome
}

func (r *Ripper) record(ctx context.Context, rec Recorder, sessionID string, o TrackOutcome) {
	entry := catalog.Track{
		SessionID:  sessionID,
		Track:      o.Range.Track,
		StartFrame: int64(o.Range.Start),
		EndFrame:   int64(o.Range.End),
		Bytes:      o.Bytes,
		Status:     o.Status,
		Duration:   o.Duration,
	}
	if o.Status != catalog.StatusSkipped {
		entry.Path = o.Path
	}
	if o.Err != nil {
		entry.ErrorMessage = o.Err.Error()
	}
	if err := rec.RecordTrack(context.WithoutCancel(ctx), entry); err != nil {
		r.logger.Debug("record track failed", logging.Error(err))
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, services.ErrRead):
		return "clean the disc and retry; a repeated failure at the same offset indicates physical damage"
	case errors.Is(err, services.ErrWrite):
		return "check free space and permissions on the output directory"
	default:
		return "check logs for details"
	}
}
