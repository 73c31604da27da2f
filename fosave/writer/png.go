package writer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"unicode"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
	"github.com/pkg/errors"
)

// ImageName builds the deterministic output filename for a decoded save:
// fo3_<index>_<w>x<h>[_<player>].png, with the player name sanitized
// down to filesystem-safe characters.
func ImageName(hdr *format.SaveHeader) string {
	base := fmt.Sprintf("fo3_%03d_%dx%d", hdr.SaveIndex, hdr.Width, hdr.Height)
	if name := SanitizeName(hdr.PlayerName); name != "" {
		base += "_" + name
	}
	return base + ".png"
}

// SanitizeName keeps letters, digits, space, hyphen and underscore,
// trims the edges, then turns the remaining spaces into underscores.
func SanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

// WritePNG encodes a width*height*3 RGB buffer as a PNG file at path.
func WritePNG(path string, width, height int, rgb []byte) error {
	if len(rgb) != width*height*3 {
		return errors.Wrapf(format.ErrSizeMismatch,
			"got %d bytes, want %d (%dx%dx3)", len(rgb), width*height*3, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := (y*width + x) * 3
			dst := y*img.Stride + x*4
			img.Pix[dst+0] = rgb[src+0]
			img.Pix[dst+1] = rgb[src+1]
			img.Pix[dst+2] = rgb[src+2]
			img.Pix[dst+3] = 0xFF
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create image file")
	}
	if err = png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrap(err, "encode png")
	}
	return f.Close()
}
