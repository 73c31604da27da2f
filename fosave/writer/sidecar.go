package writer

import (
	"os"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format/metadata"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// WriteSidecar writes the decoded header fields as a CBOR record next
// to the image, for tooling that wants the metadata without re-parsing
// the save.
func WriteSidecar(path string, hdr *format.SaveHeader) error {
	data, err := cbor.Marshal(metadata.FromHeader(hdr))
	if err != nil {
		return errors.Wrap(err, "marshal sidecar metadata")
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write sidecar")
	}
	return nil
}
