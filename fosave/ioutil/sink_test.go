package ioutil_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/ioutil"
	"github.com/klauspost/compress/zstd"
)

func TestChecksumSink(t *testing.T) {
	var dst bytes.Buffer
	sink := ioutil.NewChecksumSink(&dst, sha256.New())

	payload := []byte("savegame payload")
	if _, err := sink.Write(payload); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(dst.Bytes(), payload) {
		t.Errorf("payload must pass through unchanged")
	}
	want := sha256.Sum256(payload)
	if sink.HexSum() != hex.EncodeToString(want[:]) {
		t.Errorf("checksum mismatch: got %s", sink.HexSum())
	}
}

func TestRawSink(t *testing.T) {
	var dst bytes.Buffer
	w, err := ioutil.RawSink{}.Wrap(&dst)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("abc"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if dst.String() != "abc" {
		t.Errorf("got %q", dst.String())
	}
	if ext := (ioutil.RawSink{}).Ext(); ext != "" {
		t.Errorf("raw sink suffix should be empty, got %q", ext)
	}
}

func TestZstdSink_RoundTrip(t *testing.T) {
	var dst bytes.Buffer
	w, err := ioutil.ZstdSink{}.Wrap(&dst)
	if err != nil {
		t.Fatal(err)
	}
	payload := bytes.Repeat([]byte("cluster"), 1000)
	if _, err := w.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	zr, err := zstd.NewReader(&dst)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	var got bytes.Buffer
	if _, err := got.ReadFrom(zr); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), payload) {
		t.Errorf("zstd round trip differs")
	}
}
