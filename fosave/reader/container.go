package reader

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/ioutil"
	"github.com/pkg/errors"
)

// Container is an open CON package: the file handle, its total size,
// and the directory table in slot order. One extraction at a time per
// container; the handle is shared by every read.
type Container struct {
	f       *os.File
	size    int64
	entries []format.Entry
}

// OpenContainer validates the package magic and reads the whole
// directory table. The caller owns the returned container and must
// Close it.
func OpenContainer(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open container")
	}

	c := &Container{f: f}

	if c.size, err = f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "stat container")
	}

	cur := ioutil.NewCursor(f)
	if err = cur.Seek(0); err != nil {
		f.Close()
		return nil, err
	}
	magic, err := cur.ReadBytes(len(format.MAGIC_CON))
	if err != nil {
		f.Close()
		return nil, err
	}
	if !bytes.Equal(magic, []byte(format.MAGIC_CON)) {
		f.Close()
		return nil, errors.Wrapf(format.ErrBadMagic,
			"expected %q, got %q", format.MAGIC_CON, magic)
	}

	if c.entries, err = readEntries(cur); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) Close() error {
	return c.f.Close()
}

// Entries returns the directory table in slot order.
func (c *Container) Entries() []format.Entry {
	return c.entries
}

// Lookup finds an entry by name.
func (c *Container) Lookup(name string) (format.Entry, bool) {
	for _, e := range c.entries {
		if e.Name == name {
			return e, true
		}
	}
	return format.Entry{}, false
}

// readEntries scans fixed-size table slots from TABLE_START until the
// first record whose name field is empty. The empty name terminates the
// table; it is not an error. A short read mid-scan is.
func readEntries(cur *ioutil.Cursor) ([]format.Entry, error) {
	var entries []format.Entry
	for idx := int64(0); ; idx++ {
		if err := cur.Seek(format.TABLE_START + idx*format.ENTRY_SIZE); err != nil {
			return nil, err
		}
		name, err := readEntryName(cur)
		if err != nil {
			return nil, err
		}
		if name == "" {
			break
		}
		e, err := readEntryBody(cur, name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func readEntryName(cur *ioutil.Cursor) (string, error) {
	raw, err := cur.ReadBytes(format.NAME_FIELD_LEN)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(raw, 0); i != -1 {
		raw = raw[:i]
	}
	return strings.TrimSpace(decodeName(raw)), nil
}

// decodeName decodes the name bytes as UTF-8, replacing anything invalid.
func decodeName(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "�")
}

func readEntryBody(cur *ioutil.Cursor, name string) (format.Entry, error) {
	e := format.Entry{Name: name}
	var err error
	if e.Unknown, err = cur.ReadI32(); err != nil {
		return e, err
	}
	if e.BlockLen, err = cur.ReadI32(); err != nil {
		return e, err
	}
	rawCluster, err := cur.ReadU32()
	if err != nil {
		return e, err
	}
	// Low byte is flags/reserved, not address.
	e.Cluster = rawCluster >> 8
	if e.Parent, err = cur.ReadU16(); err != nil {
		return e, err
	}
	if e.Size, err = cur.ReadU32(); err != nil {
		return e, err
	}
	dt1, err := cur.ReadU32()
	if err != nil {
		return e, err
	}
	dt2, err := cur.ReadU32()
	if err != nil {
		return e, err
	}
	e.Created = format.DOSTimeFromU32(dt1)
	e.Modified = format.DOSTimeFromU32(dt2)
	return e, nil
}

// clusterOffset maps a logical cluster index to its physical file
// offset. An 8192-byte index block is interleaved after every 170
// clusters, and a second level after every 170 groups of 170; both
// correction terms apply only once their group counter is nonzero.
func clusterOffset(cluster uint32) int64 {
	num := format.TABLE_START + int64(cluster)*format.CLUSTER_SIZE
	n2 := int64(cluster / format.CLUSTERS_PER_INDEX)
	n3 := n2 / format.CLUSTERS_PER_INDEX
	if n2 > 0 {
		num += (n2 + 1) * format.INDEX_BLOCK_SIZE
	}
	if n3 > 0 {
		num += (n3 + 1) * format.INDEX_BLOCK_SIZE
	}
	return num
}

// ExtractEntry streams one entry's payload into dst. Directories
// produce nothing. Offset and range anomalies mid-chain are benign
// truncation: extraction stops, it does not fail. Package files
// legitimately end mid-chain for small entries.
func (c *Container) ExtractEntry(e format.Entry, dst io.Writer) error {
	if e.IsDir() || e.Size == 0 {
		return nil
	}

	size := int64(e.Size)
	fullBlocks := size >> 12
	if e.BlockLen > 0 && int64(e.BlockLen) < fullBlocks {
		fullBlocks = int64(e.BlockLen)
	}
	remainder := size - fullBlocks*format.CLUSTER_SIZE

	buf := make([]byte, format.CLUSTER_SIZE)
	lastOff := int64(-1)

	for i := int64(0); i < fullBlocks; i++ {
		off := clusterOffset(e.Cluster + uint32(i))

		if off <= lastOff {
			break
		}
		lastOff = off

		if off >= c.size {
			remainder = 0
			break
		}
		toRead := format.CLUSTER_SIZE
		if c.size-off < toRead {
			toRead = c.size - off
		}
		if toRead <= 0 {
			remainder = 0
			break
		}

		if err := c.copyRange(dst, off, buf[:toRead]); err != nil {
			return err
		}
		if toRead < format.CLUSTER_SIZE {
			remainder = 0
			break
		}
	}

	if remainder > 0 {
		off := clusterOffset(e.Cluster + uint32(fullBlocks))
		if off < c.size {
			toRead := remainder
			if c.size-off < toRead {
				toRead = c.size - off
			}
			if toRead > 0 {
				// A capped block loop leaves a remainder larger than one
				// cluster; the tail is read contiguously in one go.
				tail := buf
				if toRead > int64(len(tail)) {
					tail = make([]byte, toRead)
				}
				if err := c.copyRange(dst, off, tail[:toRead]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// copyRange reads len(buf) bytes at off and writes them to dst. The
// length is pre-clipped to the file size, so a short read here is a
// real I/O failure, not format truncation.
func (c *Container) copyRange(dst io.Writer, off int64, buf []byte) error {
	if _, err := c.f.Seek(off, io.SeekStart); err != nil {
		return errors.Wrapf(err, "seek to cluster at %d", off)
	}
	if _, err := io.ReadFull(c.f, buf); err != nil {
		return errors.Wrapf(err, "read cluster at %d", off)
	}
	if _, err := dst.Write(buf); err != nil {
		return errors.Wrap(err, "write extracted block")
	}
	return nil
}

// ExtractAll writes every file entry under dir, flattened: one output
// file per entry, named by the entry's decoded filename plus the sink's
// suffix. Parent directories are created as needed.
func (c *Container) ExtractAll(dir string, sink ioutil.Sink) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create extraction dir")
	}
	for _, e := range c.entries {
		if e.IsDir() {
			continue
		}
		if err := c.extractToFile(e, filepath.Join(dir, e.Name+sink.Ext()), sink); err != nil {
			return errors.Wrapf(err, "extract %q", e.Name)
		}
	}
	return nil
}

func (c *Container) extractToFile(e format.Entry, path string, sink ioutil.Sink) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w, err := sink.Wrap(f)
	if err != nil {
		f.Close()
		return err
	}
	if err = c.ExtractEntry(e, w); err != nil {
		w.Close()
		f.Close()
		return err
	}
	if err = w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
