package ioutil

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Sink wraps the destination an extracted container entry is streamed
// into, optionally compressing it on the way down.
type Sink interface {
	// Wrap returns the writer extraction should write through. Closing
	// it flushes the compressor; it does not close the underlying writer.
	Wrap(w io.Writer) (io.WriteCloser, error)
	// Ext is the suffix appended to the entry's filename ("" for raw).
	Ext() string
}

type RawSink struct{}

func (RawSink) Wrap(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

func (RawSink) Ext() string { return "" }

type ZstdSink struct{}

func (ZstdSink) Wrap(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

func (ZstdSink) Ext() string { return ".zst" }

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
