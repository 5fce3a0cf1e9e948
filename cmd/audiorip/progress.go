package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"audiorip/internal/toc"
)

// progressReporter draws one bar per track on an interactive terminal and
// does nothing otherwise.
type progressReporter struct {
	w       io.Writer
	enabled bool
	bar     *progressbar.ProgressBar
}

func newProgressReporter(w io.Writer, enabled bool) *progressReporter {
	return &progressReporter{w: w, enabled: enabled && shouldColorize(w)}
}

func (p *progressReporter) start(rng toc.Range, dest string) {
	if !p.enabled {
		return
	}
	p.bar = progressbar.NewOptions(rng.Frames(),
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(fmt.Sprintf("track %2d %s", rng.Track, filepath.Base(dest))),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progressReporter) update(_, done, _ int) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Set(done)
}

func (p *progressReporter) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}

// trackLogLevel keeps per-track log lines off the console while a bar is
// drawn on the same terminal.
func (p *progressReporter) trackLogLevel() slog.Level {
	if p.enabled {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
