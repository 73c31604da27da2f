package ioutil

import (
	"encoding/hex"
	"hash"
	"io"
)

// ChecksumSink tees everything written through it into a hash, so an
// entry or screenshot payload can be fingerprinted while (or instead
// of) being extracted.
type ChecksumSink struct {
	dst io.Writer
	h   hash.Hash
}

func NewChecksumSink(dst io.Writer, h hash.Hash) *ChecksumSink {
	return &ChecksumSink{dst: dst, h: h}
}

func (s *ChecksumSink) Write(b []byte) (int, error) {
	s.h.Write(b)
	return s.dst.Write(b)
}

func (s *ChecksumSink) Sum() []byte {
	return s.h.Sum(nil)
}

// HexSum is Sum rendered for terminal output.
func (s *ChecksumSink) HexSum() string {
	return hex.EncodeToString(s.Sum())
}
