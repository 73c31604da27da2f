package format

// DOSTime is a DOS-packed date-time, decoded.
type DOSTime struct {
	Year   int // >= 1980
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int // always even; DOS stores 2-second granularity
}

// DOSTimeFromU32 unpacks the (date<<16 | time) encoding used by the
// directory table records.
func DOSTimeFromU32(v uint32) DOSTime {
	d := (v >> 16) & 0xFFFF
	t := v & 0xFFFF
	return DOSTime{
		Year:   int((d>>9)&0x7F) + 1980,
		Month:  int((d >> 5) & 0x0F),
		Day:    int(d & 0x1F),
		Hour:   int((t >> 11) & 0x1F),
		Minute: int((t >> 5) & 0x3F),
		Second: int(t&0x1F) * 2,
	}
}

// Entry is one slot of the CON directory table. Entries are immutable
// once decoded; the whole table is read at open and held for the life
// of the container.
type Entry struct {
	Name string
	// Unknown i32 between the name and the block-length hint.
	Unknown int32
	// Declared block count. When positive it caps the whole-block loop
	// during extraction, defending against a Size that disagrees.
	BlockLen int32
	// First logical cluster. The record stores cluster<<8; the low byte
	// is flag/reserved data, not part of the address.
	Cluster uint32
	// Slot index of the parent entry. Metadata only, never traversed:
	// the table is a flat list and extraction is flattened too.
	Parent   uint16
	Size     uint32
	Created  DOSTime
	Modified DOSTime
}

// IsDir reports whether the entry is a directory. The format has no
// distinct marker: a directory is exactly a record with zero size and
// zero start cluster. A zero-size record with a nonzero cluster is a
// file.
func (e *Entry) IsDir() bool {
	return e.Size == 0 && e.Cluster == 0
}
