package container

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// Kind selects the output container.
type Kind int

const (
	// Raw is headerless interleaved stereo 16-bit little-endian PCM at 44.1 kHz.
	Raw Kind = iota
	// Wave is Raw preceded by a 44-byte RIFF/WAVE header.
	Wave
)

var folder = cases.Fold()

// String returns the canonical format name.
func (k Kind) String() string {
	switch k {
	case Raw:
		return "raw"
	case Wave:
		return "wav"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Extension returns the file extension, including the dot.
func (k Kind) Extension() string {
	switch k {
	case Wave:
		return ".wav"
	default:
		return ".pcm"
	}
}

// HeaderSize returns the number of bytes written before the audio payload.
func (k Kind) HeaderSize() int {
	if k == Wave {
		return WaveHeaderSize
	}
	return 0
}

// ParseKind maps a format name to a Kind. Names are case-insensitive:
// wav and wave select Wave; pcm, raw, and cdda select Raw.
func ParseKind(name string) (Kind, error) {
	switch folder.String(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "."))) {
	case "wav", "wave":
		return Wave, nil
	case "pcm", "raw", "cdda":
		return Raw, nil
	default:
		return Raw, fmt.Errorf("unsupported container format %q (want wav or raw)", name)
	}
}

// KindForPath selects a Kind from a destination's extension.
func KindForPath(path string) (Kind, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return Raw, fmt.Errorf("cannot infer container format from %q: no extension", path)
	}
	return ParseKind(ext)
}
