package ripping

import (
	"context"
	"io"
	"iter"
	"log/slog"

	"audiorip/internal/container"
	"audiorip/internal/disc"
	"audiorip/internal/extract"
	"audiorip/internal/logging"
	"audiorip/internal/services"
	"audiorip/internal/toc"
)

// ProgressFunc receives frames completed and total frames for a track after
// every chunk.
type ProgressFunc func(track, done, total int)

// Ripper reads tracks from a single device.
type Ripper struct {
	device    disc.Device
	extractor *extract.Extractor
	logger    *slog.Logger

	// OnProgress, when set, is called after every chunk.
	OnProgress ProgressFunc
}

// NewRipper builds a ripper that reads chunkFrames frames per request.
func NewRipper(device disc.Device, chunkFrames int, logger *slog.Logger) *Ripper {
	return &Ripper{
		device:    device,
		extractor: extract.New(device, chunkFrames),
		logger:    logging.NewComponentLogger(logger, "ripper"),
	}
}

// BuildTrackTable reads the disc's table of contents.
func (r *Ripper) BuildTrackTable() ([]toc.Range, error) {
	ranges, err := toc.BuildTrackTable(r.device)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("table of contents read", logging.Int("tracks", len(ranges)))
	for _, rng := range ranges {
		r.logger.Debug("track range",
			logging.Track(rng.Track),
			logging.Int("frames", rng.Frames()),
			logging.String("start", rng.StartTimecode.String()),
		)
	}
	return ranges, nil
}

// RipTrack extracts rng and writes it to dest in the given container.
func (r *Ripper) RipTrack(rng toc.Range, dest string, kind container.Kind) error {
	_, err := r.ripTrack(context.Background(), rng, dest, kind)
	return err
}

// StreamTrack extracts rng and writes it to w, e.g. standard output.
func (r *Ripper) StreamTrack(ctx context.Context, rng toc.Range, w io.Writer, kind container.Kind) (container.Result, error) {
	return container.Stream(rng, r.chunks(ctx, rng, "-"), w, kind)
}

func (r *Ripper) ripTrack(ctx context.Context, rng toc.Range, dest string, kind container.Kind) (container.Result, error) {
	return container.Write(rng, r.chunks(ctx, rng, dest), dest, kind)
}

// chunks wraps the extractor's sequence with progress reporting.
func (r *Ripper) chunks(ctx context.Context, rng toc.Range, dest string) iter.Seq2[extract.Chunk, error] {
	ctx = services.WithTrack(ctx, rng.Track)
	logger := logging.WithContext(services.WithStage(ctx, "extract"), r.logger)
	logger.Debug("reading track",
		logging.Int("start_frame", int(rng.Start)),
		logging.Int("end_frame", int(rng.End)),
		logging.String("path", dest),
	)

	total := rng.Frames()
	sampler := logging.NewProgressSampler(10)
	return func(yield func(extract.Chunk, error) bool) {
		for chunk, err := range r.extractor.Extract(rng) {
			if err == nil {
				done := chunk.Offset + chunk.Frames
				if r.OnProgress != nil {
					r.OnProgress(rng.Track, done, total)
				}
				if sampler.ShouldLog(rng.Track, done, total) {
					logger.Debug("progress", logging.Int("done", done), logging.Int("total", total))
				}
			}
			if !yield(chunk, err) {
				return
			}
		}
	}
}
