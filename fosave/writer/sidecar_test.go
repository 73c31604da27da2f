package writer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format/metadata"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/writer"
	"github.com/fxamacker/cbor/v2"
)

func TestWriteSidecar(t *testing.T) {
	hdr := &format.SaveHeader{
		Width: 640, Height: 480, SaveIndex: 3,
		PlayerName: "Courier", PlayerKarma: "Neutral", PlayerLevel: 21,
		PlayerLocation: "Goodsprings", Playtime: "02.11.05",
	}
	path := filepath.Join(t.TempDir(), "save.meta.cbor")
	if err := writer.WriteSidecar(path, hdr); err != nil {
		t.Fatalf("WriteSidecar: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got metadata.SaveMetadata
	if err := cbor.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal sidecar: %v", err)
	}
	if got != metadata.FromHeader(hdr) {
		t.Fatalf("sidecar round trip differs: %+v", got)
	}
}
