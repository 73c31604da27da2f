package pixel

import (
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
	"github.com/pkg/errors"
)

// The game writes screenshots deliberately scrambled: channel bytes are
// stored (B, R, G) per pixel, and each channel is additionally rotated
// within its scanline by a fixed amount. Both stages here are pure and
// return a fresh buffer; composing their inverses reproduces the stored
// bytes exactly.

type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
)

// Per-channel left rotation applied at save time, in pixels. Format
// constants, not knobs.
const (
	SHIFT_R = 3
	SHIFT_G = 4
	SHIFT_B = 4
)

// ReorderChannels converts stored (B, R, G) pixel bytes to (R, G, B).
func ReorderChannels(buf []byte) []byte {
	out := make([]byte, len(buf))
	for i := 0; i+2 < len(buf); i += 3 {
		out[i+0] = buf[i+2]
		out[i+1] = buf[i+0]
		out[i+2] = buf[i+1]
	}
	return out
}

// ShiftChannel left-rotates one channel of every scanline by shiftPx
// pixels. The rotation is over the channel's strided subsequence of the
// row (stride 3, length width). shiftPx is reduced modulo width; a
// reduced amount of 0 leaves every byte in place.
func ShiftChannel(buf []byte, width, height int, ch Channel, shiftPx int) []byte {
	out := make([]byte, len(buf))
	copy(out, buf)
	if width <= 0 {
		return out
	}

	shift := shiftPx % width
	if shift < 0 {
		shift += width
	}
	if shift == 0 {
		return out
	}

	rowStride := width * 3
	for y := 0; y < height; y++ {
		row := y * rowStride
		for x := 0; x < width; x++ {
			src := row + ((x+shift)%width)*3 + int(ch)
			dst := row + x*3 + int(ch)
			out[dst] = buf[src]
		}
	}
	return out
}

// Unscramble reconstructs a displayable RGB buffer from the raw
// screenshot bytes. The input length must be exactly width*height*3;
// anything else is a hard error, never truncated or padded.
func Unscramble(buf []byte, width, height int) ([]byte, error) {
	want := width * height * 3
	if len(buf) != want {
		return nil, errors.Wrapf(format.ErrSizeMismatch,
			"got %d bytes, want %d (%dx%dx3)", len(buf), want, width, height)
	}

	out := ReorderChannels(buf)
	out = ShiftChannel(out, width, height, ChannelR, SHIFT_R)
	out = ShiftChannel(out, width, height, ChannelG, SHIFT_G)
	out = ShiftChannel(out, width, height, ChannelB, SHIFT_B)
	return out, nil
}
