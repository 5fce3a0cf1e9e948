package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"audiorip/internal/msf"
)

// WaveHeaderSize is the size of the canonical PCM RIFF/WAVE header.
const WaveHeaderSize = 44

// CD-DA sample format.
const (
	Channels      = 2
	SampleRate    = 44100
	BitsPerSample = 16
	BlockAlign    = Channels * BitsPerSample / 8
	ByteRate      = SampleRate * BlockAlign
	formatPCM     = 1
	fmtChunkSize  = 16
)

// waveHeader is the on-disk layout, encoded little-endian field by field.
type waveHeader struct {
	RIFF          [4]byte
	RIFFSize      uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

// WaveHeader returns the 44-byte header for a payload of frames CD-DA frames.
// A negative count is treated as zero.
func WaveHeader(frames int) []byte {
	dataSize := uint32(msf.Frame(max(frames, 0)).Bytes())
	h := waveHeader{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:      dataSize + WaveHeaderSize - 8,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       fmtChunkSize,
		AudioFormat:   formatPCM,
		Channels:      Channels,
		SampleRate:    SampleRate,
		ByteRate:      ByteRate,
		BlockAlign:    BlockAlign,
		BitsPerSample: BitsPerSample,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
	var buf bytes.Buffer
	buf.Grow(WaveHeaderSize)
	_ = binary.Write(&buf, binary.LittleEndian, &h)
	return buf.Bytes()
}

// WaveInfo is a parsed WAVE header.
type WaveInfo struct {
	RIFFSize      uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// IsCDDA reports whether the header describes 16-bit stereo 44.1 kHz PCM
// with consistent size fields.
func (w WaveInfo) IsCDDA() bool {
	return w.AudioFormat == formatPCM &&
		w.Channels == Channels &&
		w.SampleRate == SampleRate &&
		w.ByteRate == ByteRate &&
		w.BlockAlign == BlockAlign &&
		w.BitsPerSample == BitsPerSample &&
		w.RIFFSize == w.DataSize+WaveHeaderSize-8
}

// Frames returns the number of whole CD-DA frames in the data chunk.
func (w WaveInfo) Frames() int {
	return int(w.DataSize) / msf.BytesPerFrame
}

// ReadWaveHeader parses a canonical 44-byte header written by WaveHeader.
func ReadWaveHeader(r io.Reader) (WaveInfo, error) {
	var h waveHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return WaveInfo{}, fmt.Errorf("read wave header: %w", err)
	}
	switch {
	case string(h.RIFF[:]) != "RIFF":
		return WaveInfo{}, fmt.Errorf("not a RIFF file (magic %q)", h.RIFF[:])
	case string(h.WAVE[:]) != "WAVE":
		return WaveInfo{}, fmt.Errorf("not a WAVE file (form %q)", h.WAVE[:])
	case string(h.Fmt[:]) != "fmt " || h.FmtSize != fmtChunkSize:
		return WaveInfo{}, fmt.Errorf("unexpected fmt chunk %q size %d", h.Fmt[:], h.FmtSize)
	case string(h.Data[:]) != "data":
		return WaveInfo{}, fmt.Errorf("unexpected chunk %q where data was expected", h.Data[:])
	}
	return WaveInfo{
		RIFFSize:      h.RIFFSize,
		AudioFormat:   h.AudioFormat,
		Channels:      h.Channels,
		SampleRate:    h.SampleRate,
		ByteRate:      h.ByteRate,
		BlockAlign:    h.BlockAlign,
		BitsPerSample: h.BitsPerSample,
		DataSize:      h.DataSize,
	}, nil
}
