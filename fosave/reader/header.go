package reader

import (
	"bytes"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/ioutil"
	"github.com/pkg/errors"
)

// ReadSaveHeader decodes the flat-save header from a cursor positioned
// at the start of the file. Failures are terminal: no partial header is
// ever returned.
func ReadSaveHeader(cur *ioutil.Cursor) (*format.SaveHeader, error) {

	magic, err := cur.ReadBytes(len(format.MAGIC_SAVE))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, []byte(format.MAGIC_SAVE)) {
		return nil, errors.Wrapf(format.ErrBadMagic,
			"expected %q, got %q", format.MAGIC_SAVE, magic)
	}

	hdr := &format.SaveHeader{}

	if hdr.HeaderSize, err = cur.ReadU32(); err != nil {
		return nil, err
	}
	if hdr.Unknown1, err = cur.ReadU32(); err != nil {
		return nil, err
	}

	if err = cur.ReadDivider(); err != nil {
		return nil, err
	}
	val, err := cur.ReadU32()
	if err != nil {
		return nil, err
	}
	if val > format.MAX_SANE_WIDTH {
		// Legacy layout: an extra 60-byte block sits before the real
		// width. Skip it and read again.
		if err = cur.Skip(format.LEGACY_PAD_LEN); err != nil {
			return nil, err
		}
		if err = cur.ReadDivider(); err != nil {
			return nil, err
		}
		if hdr.Width, err = cur.ReadU32(); err != nil {
			return nil, err
		}
	} else {
		hdr.Width = val
	}

	if hdr.Height, err = readDividedU32(cur); err != nil {
		return nil, err
	}
	if hdr.SaveIndex, err = readDividedU32(cur); err != nil {
		return nil, err
	}
	if hdr.PlayerName, err = readDividedString(cur); err != nil {
		return nil, err
	}
	if hdr.PlayerKarma, err = readDividedString(cur); err != nil {
		return nil, err
	}
	if hdr.PlayerLevel, err = readDividedU32(cur); err != nil {
		return nil, err
	}
	if hdr.PlayerLocation, err = readDividedString(cur); err != nil {
		return nil, err
	}
	if hdr.Playtime, err = readDividedString(cur); err != nil {
		return nil, err
	}

	return hdr, nil
}

// ReadScreenshot seeks to the header's screenshot offset and reads the
// exact pixel payload. A short payload is an error, never a short buffer.
func ReadScreenshot(cur *ioutil.Cursor, hdr *format.SaveHeader) ([]byte, error) {
	if err := cur.Seek(hdr.ScreenshotOffset()); err != nil {
		return nil, err
	}
	return cur.ReadBytes(hdr.ScreenshotLen())
}

func readDividedU32(cur *ioutil.Cursor) (uint32, error) {
	if err := cur.ReadDivider(); err != nil {
		return 0, err
	}
	return cur.ReadU32()
}

// readDividedString reads a divider, a u16 length, another divider, then
// the text itself. A zero length decodes to "" without touching the
// source.
func readDividedString(cur *ioutil.Cursor) (string, error) {
	if err := cur.ReadDivider(); err != nil {
		return "", err
	}
	size, err := cur.ReadU16()
	if err != nil {
		return "", err
	}
	if err = cur.ReadDivider(); err != nil {
		return "", err
	}
	if size == 0 {
		return "", nil
	}
	raw, err := cur.ReadBytes(int(size))
	if err != nil {
		return "", err
	}
	return decodeText(raw), nil
}

// decodeText decodes header text permissively: each byte maps to the
// corresponding Unicode code point, so nothing is ever undecodable.
func decodeText(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}
