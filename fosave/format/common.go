package format

import (
	"github.com/pkg/errors"
)

/*

Two container families exist. PC saves are a flat file starting with the
FO3SAVEGAME token; Xbox 360 saves wrap the same payload in a CON package,
a simplified FAT-like filesystem of 4096-byte clusters with 8192-byte
index blocks interleaved into the data region.

*/

const (
	MAGIC_SAVE = "FO3SAVEGAME"
	MAGIC_CON  = "CON "

	// Field separator used throughout the flat save header.
	DIVIDER byte = 0x7C
)

const (
	// Start of the CON directory table, also the base of cluster addressing.
	TABLE_START int64 = 49152
	// One cluster of payload data.
	CLUSTER_SIZE int64 = 4096
	// One interleaved index block.
	INDEX_BLOCK_SIZE int64 = 8192
	// One directory table record.
	ENTRY_SIZE int64 = 64
	// Fixed width of the name field inside a record.
	NAME_FIELD_LEN = 38
	// Clusters covered by a single index block.
	CLUSTERS_PER_INDEX = 170
)

const (
	// A width above this is taken to mean the legacy header layout, which
	// carries an extra block before the real width. Not a heuristic to
	// tune: both layouts must decode exactly as the game wrote them.
	MAX_SANE_WIDTH = 16384
	// Size of that extra block.
	LEGACY_PAD_LEN = 60
)

// The well-known entry inside a CON package holding the flat save payload.
const PAYLOAD_ENTRY_NAME = "Savegame.dat"

var (
	ErrBadMagic             = errors.New("bad format signature")
	ErrMalformedFraming     = errors.New("expected divider byte absent")
	ErrUnexpectedEOF        = errors.New("unexpected end of input")
	ErrSizeMismatch         = errors.New("pixel buffer length does not match dimensions")
	ErrUnsupportedContainer = errors.New("unrecognized container family")
)
