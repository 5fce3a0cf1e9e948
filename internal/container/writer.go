package container

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"

	"audiorip/internal/extract"
	"audiorip/internal/services"
	"audiorip/internal/toc"
)

// WriteError reports a destination that could not be created or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is matches services.ErrWrite.
func (e *WriteError) Is(target error) bool { return target == services.ErrWrite }

// Result summarizes a completed write.
type Result struct {
	Path   string
	Frames int
	Bytes  int64
}

// Write creates dest and streams chunks into it, preceded by a WAVE header
// when kind is Wave. Errors from chunks are returned unchanged; the file
// written so far stays on disk.
func Write(r toc.Range, chunks iter.Seq2[extract.Chunk, error], dest string, kind Kind) (Result, error) {
	file, err := os.Create(dest)
	if err != nil {
		return Result{Path: dest}, &WriteError{Path: dest, Err: err}
	}
	res, err := stream(r, chunks, file, kind)
	res.Path = dest
	if closeErr := file.Close(); closeErr != nil && err == nil {
		err = &WriteError{Path: dest, Err: closeErr}
	}
	return res, err
}

// Stream writes to an arbitrary writer, e.g. standard output.
func Stream(r toc.Range, chunks iter.Seq2[extract.Chunk, error], w io.Writer, kind Kind) (Result, error) {
	return stream(r, chunks, w, kind)
}

func stream(r toc.Range, chunks iter.Seq2[extract.Chunk, error], w io.Writer, kind Kind) (Result, error) {
	var res Result
	out := bufio.NewWriterSize(w, 64*1024)
	wrap := func(err error) error {
		name := "output"
		if f, ok := w.(*os.File); ok {
			name = f.Name()
		}
		return &WriteError{Path: name, Err: err}
	}

	if kind == Wave {
		n, err := out.Write(WaveHeader(r.Frames()))
		res.Bytes += int64(n)
		if err != nil {
			return res, wrap(err)
		}
	}

	for chunk, err := range chunks {
		if err != nil {
			if flushErr := out.Flush(); flushErr != nil {
				return res, wrap(flushErr)
			}
			return res, err
		}
		n, werr := out.Write(chunk.Data)
		res.Bytes += int64(n)
		if werr != nil {
			return res, wrap(werr)
		}
		res.Frames += chunk.Frames
	}

	if err := out.Flush(); err != nil {
		return res, wrap(err)
	}
	return res, nil
}
