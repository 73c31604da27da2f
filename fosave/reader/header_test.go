package reader_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/ioutil"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/reader"
)

type saveSpec struct {
	width, height uint32
	saveIndex     uint32
	name          string
	karma         string
	level         uint32
	location      string
	playtime      string
	legacy        bool
	pixels        []byte
}

// buildSave assembles a synthetic flat save: magic, header-size field,
// unknown field, divider-framed header fields, then the raw pixel bytes
// at exactly 4 + headerSize.
func buildSave(s saveSpec) []byte {
	var fields bytes.Buffer

	u32 := func(v uint32) { binary.Write(&fields, binary.LittleEndian, v) }
	u16 := func(v uint16) { binary.Write(&fields, binary.LittleEndian, v) }
	div := func() { fields.WriteByte(format.DIVIDER) }
	str := func(txt string) {
		div()
		u16(uint16(len(txt)))
		div()
		fields.WriteString(txt)
	}

	div()
	if s.legacy {
		u32(format.MAX_SANE_WIDTH + 1)
		fields.Write(make([]byte, format.LEGACY_PAD_LEN))
		div()
	}
	u32(s.width)
	div()
	u32(s.height)
	div()
	u32(s.saveIndex)
	str(s.name)
	str(s.karma)
	div()
	u32(s.level)
	str(s.location)
	str(s.playtime)

	// screenshot data begins at 4 + headerSize
	headerSize := uint32(11 + 4 + fields.Len())

	var out bytes.Buffer
	out.WriteString(format.MAGIC_SAVE)
	binary.Write(&out, binary.LittleEndian, headerSize)
	binary.Write(&out, binary.LittleEndian, uint32(0x30)) // unknown1
	out.Write(fields.Bytes())
	out.Write(s.pixels)
	return out.Bytes()
}

func TestReadSaveHeader_Fields(t *testing.T) {
	spec := saveSpec{
		width: 256, height: 144, saveIndex: 12,
		name: "Lone Wanderer", karma: "Very Good", level: 17,
		location: "Megaton", playtime: "10.02.37",
	}
	data := buildSave(spec)

	cur := ioutil.NewCursor(bytes.NewReader(data))
	hdr, err := reader.ReadSaveHeader(cur)
	if err != nil {
		t.Fatalf("ReadSaveHeader: %v", err)
	}

	if hdr.Width != spec.width || hdr.Height != spec.height {
		t.Errorf("dimensions: got %dx%d, want %dx%d", hdr.Width, hdr.Height, spec.width, spec.height)
	}
	if hdr.SaveIndex != spec.saveIndex {
		t.Errorf("save index: got %d, want %d", hdr.SaveIndex, spec.saveIndex)
	}
	if hdr.PlayerName != spec.name || hdr.PlayerKarma != spec.karma {
		t.Errorf("player: got %q/%q, want %q/%q", hdr.PlayerName, hdr.PlayerKarma, spec.name, spec.karma)
	}
	if hdr.PlayerLevel != spec.level || hdr.PlayerLocation != spec.location || hdr.Playtime != spec.playtime {
		t.Errorf("metadata: got %d/%q/%q", hdr.PlayerLevel, hdr.PlayerLocation, hdr.Playtime)
	}
	if hdr.ScreenshotOffset() != 4+int64(hdr.HeaderSize) {
		t.Errorf("screenshot offset: got %d, want %d", hdr.ScreenshotOffset(), 4+hdr.HeaderSize)
	}
	if hdr.ScreenshotOffset() != int64(len(data)) {
		t.Errorf("screenshot offset %d should point at end of built header (%d)", hdr.ScreenshotOffset(), len(data))
	}
}

func TestReadSaveHeader_LegacyLayout(t *testing.T) {
	// A first width value above the threshold means an extra 60-byte
	// block sits before the real width; the decoder must skip it and
	// recover the real width unchanged.
	data := buildSave(saveSpec{width: 1920, height: 1080, legacy: true})

	hdr, err := reader.ReadSaveHeader(ioutil.NewCursor(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("ReadSaveHeader: %v", err)
	}
	if hdr.Width != 1920 || hdr.Height != 1080 {
		t.Fatalf("got %dx%d, want 1920x1080", hdr.Width, hdr.Height)
	}
}

func TestReadSaveHeader_EmptyStrings(t *testing.T) {
	data := buildSave(saveSpec{width: 4, height: 4})

	hdr, err := reader.ReadSaveHeader(ioutil.NewCursor(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("ReadSaveHeader: %v", err)
	}
	if hdr.PlayerName != "" || hdr.PlayerKarma != "" || hdr.PlayerLocation != "" || hdr.Playtime != "" {
		t.Fatalf("zero-length text fields must decode to empty strings, got %+v", hdr)
	}
}

func TestReadSaveHeader_BadMagic(t *testing.T) {
	data := buildSave(saveSpec{width: 4, height: 4})
	copy(data, "FO4SAVEGAME")

	_, err := reader.ReadSaveHeader(ioutil.NewCursor(bytes.NewReader(data)))
	if !errors.Is(err, format.ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestReadSaveHeader_BadDivider(t *testing.T) {
	data := buildSave(saveSpec{width: 4, height: 4})
	// first divider sits right after magic + two u32 fields
	data[11+4+4] = 0x00

	_, err := reader.ReadSaveHeader(ioutil.NewCursor(bytes.NewReader(data)))
	if !errors.Is(err, format.ErrMalformedFraming) {
		t.Fatalf("expected ErrMalformedFraming, got %v", err)
	}
}

func TestReadSaveHeader_Truncated(t *testing.T) {
	data := buildSave(saveSpec{width: 4, height: 4})

	_, err := reader.ReadSaveHeader(ioutil.NewCursor(bytes.NewReader(data[:20])))
	if !errors.Is(err, format.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadScreenshot(t *testing.T) {
	pixels := bytes.Repeat([]byte{1, 2, 3}, 4*2)
	data := buildSave(saveSpec{width: 4, height: 2, pixels: pixels})

	cur := ioutil.NewCursor(bytes.NewReader(data))
	hdr, err := reader.ReadSaveHeader(cur)
	if err != nil {
		t.Fatalf("ReadSaveHeader: %v", err)
	}
	got, err := reader.ReadScreenshot(cur, hdr)
	if err != nil {
		t.Fatalf("ReadScreenshot: %v", err)
	}
	if !bytes.Equal(got, pixels) {
		t.Fatalf("screenshot bytes differ")
	}
}

func TestReadScreenshot_Truncated(t *testing.T) {
	// One byte short of the declared pixel length must be an error,
	// never a short buffer.
	pixels := bytes.Repeat([]byte{9}, 4*2*3)
	data := buildSave(saveSpec{width: 4, height: 2, pixels: pixels})
	data = data[:len(data)-1]

	cur := ioutil.NewCursor(bytes.NewReader(data))
	hdr, err := reader.ReadSaveHeader(cur)
	if err != nil {
		t.Fatalf("ReadSaveHeader: %v", err)
	}
	got, err := reader.ReadScreenshot(cur, hdr)
	if !errors.Is(err, format.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v (buf %d bytes)", err, len(got))
	}
	if got != nil {
		t.Fatalf("no partial buffer may be returned, got %d bytes", len(got))
	}
}
