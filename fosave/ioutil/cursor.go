package ioutil

import (
	"encoding/binary"
	"io"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
	"github.com/pkg/errors"
)

// Cursor is a sequential, fallible reader over a fixed byte source.
// Reads are exact: asking for n bytes either yields n bytes or fails
// with format.ErrUnexpectedEOF. No buffering beyond the source's own;
// correctness over throughput.
type Cursor struct {
	src io.ReadSeeker
	off int64
}

func NewCursor(src io.ReadSeeker) *Cursor {
	return &Cursor{src: src}
}

// Offset is the current absolute read position, used for error context.
func (c *Cursor) Offset() int64 {
	return c.off
}

// ReadBytes reads exactly n bytes. Running out of input is
// format.ErrUnexpectedEOF; any other read failure is passed through so
// an I/O problem is never misreported as truncation.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(c.src, buf)
	c.off += int64(got)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, errors.Wrapf(format.ErrUnexpectedEOF,
			"at offset %d: wanted %d bytes, got %d", c.off-int64(got), n, got)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %d bytes at offset %d", n, c.off-int64(got))
	}
	return buf, nil
}

func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// ReadDivider consumes one byte and requires it to be the 0x7C separator
// used between flat-save header fields.
func (c *Cursor) ReadDivider() error {
	b, err := c.ReadBytes(1)
	if err != nil {
		return err
	}
	if b[0] != format.DIVIDER {
		return errors.Wrapf(format.ErrMalformedFraming,
			"at offset %d: expected divider 0x%02X, found 0x%02X", c.off-1, format.DIVIDER, b[0])
	}
	return nil
}

// Seek moves to an absolute offset.
func (c *Cursor) Seek(off int64) error {
	n, err := c.src.Seek(off, io.SeekStart)
	if err != nil {
		return errors.Wrapf(err, "seek to %d", off)
	}
	c.off = n
	return nil
}

// Skip moves n bytes forward from the current position.
func (c *Cursor) Skip(n int64) error {
	pos, err := c.src.Seek(n, io.SeekCurrent)
	if err != nil {
		return errors.Wrapf(err, "skip %d bytes at offset %d", n, c.off)
	}
	c.off = pos
	return nil
}
