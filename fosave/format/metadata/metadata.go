package metadata

import (
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
)

// SaveMetadata is the CBOR sidecar written next to an extracted image.
// Everything the header decoder recovers, in a machine-readable record.
type SaveMetadata struct {
	Width     uint32 `cbor:"0,keyasint"`
	Height    uint32 `cbor:"1,keyasint"`
	SaveIndex uint32 `cbor:"2,keyasint"`
	Name      string `cbor:"3,keyasint,omitempty"`
	Karma     string `cbor:"4,keyasint,omitempty"`
	Level     uint32 `cbor:"5,keyasint"`
	Location  string `cbor:"6,keyasint,omitempty"`
	Playtime  string `cbor:"7,keyasint,omitempty"`
}

func FromHeader(hdr *format.SaveHeader) SaveMetadata {
	return SaveMetadata{
		Width:     hdr.Width,
		Height:    hdr.Height,
		SaveIndex: hdr.SaveIndex,
		Name:      hdr.PlayerName,
		Karma:     hdr.PlayerKarma,
		Level:     hdr.PlayerLevel,
		Location:  hdr.PlayerLocation,
		Playtime:  hdr.Playtime,
	}
}
