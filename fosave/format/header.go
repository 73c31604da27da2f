package format

// SaveHeader is the decoded flat-save header. It is built once per decode
// and never mutated afterwards.
type SaveHeader struct {
	Width     uint32
	Height    uint32
	SaveIndex uint32

	PlayerName     string
	PlayerKarma    string
	PlayerLevel    uint32
	PlayerLocation string
	Playtime       string

	// Raw header-size field. Screenshot data begins at 4 + HeaderSize,
	// regardless of how far the header parse got: optional trailing
	// fields may exist beyond what we decode.
	HeaderSize uint32
	// Second header field, unvalidated. Kept as metadata only.
	Unknown1 uint32
}

// ScreenshotOffset is the absolute offset of the pixel data.
func (h *SaveHeader) ScreenshotOffset() int64 {
	return 4 + int64(h.HeaderSize)
}

// ScreenshotLen is the exact byte length of the pixel buffer.
func (h *SaveHeader) ScreenshotLen() int {
	return int(h.Width) * int(h.Height) * 3
}
