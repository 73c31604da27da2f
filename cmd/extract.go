package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/format"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/ioutil"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/pixel"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/reader"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/writer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type saveFamily int

const (
	familyUnknown saveFamily = iota
	familyFlat
	familyCON
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <save>...",
	Short: "Recover the screenshot from one or more saves",
	Long: `Decode each save and write its embedded screenshot as a PNG.
CON packages are unpacked first and their flat save payload decoded in turn.
One input failing does not stop the batch.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outDir, _ := cmd.Flags().GetString("out")
		sidecar, _ := cmd.Flags().GetBool("sidecar")

		failed := 0
		for _, path := range args {
			if err := extractOne(path, outDir, sidecar); err != nil {
				cmd.PrintErrf("%s: %v\n", path, err)
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func extractOne(path, outDir string, sidecar bool) error {
	family, err := sniffFamily(path)
	if err != nil {
		return err
	}

	savePath := path
	if family == familyCON {
		if savePath, err = unpackPayload(path, outDir); err != nil {
			return err
		}
	}
	return decodeImage(savePath, outDir, sidecar)
}

// sniffFamily decides the container family from the leading magic bytes
// alone; nothing else is consulted.
func sniffFamily(path string) (saveFamily, error) {
	f, err := os.Open(path)
	if err != nil {
		return familyUnknown, err
	}
	defer f.Close()

	head := make([]byte, len(format.MAGIC_SAVE))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return familyUnknown, errors.Wrap(err, "read leading bytes")
	}
	head = head[:n]

	switch {
	case len(head) >= len(format.MAGIC_CON) && string(head[:len(format.MAGIC_CON)]) == format.MAGIC_CON:
		return familyCON, nil
	case string(head) == format.MAGIC_SAVE:
		return familyFlat, nil
	default:
		return familyUnknown, errors.Wrapf(format.ErrUnsupportedContainer,
			"leading bytes %q match no known family", head)
	}
}

// unpackPayload extracts a CON package into outDir and returns the path
// of the flat save payload inside it.
func unpackPayload(path, outDir string) (string, error) {
	con, err := reader.OpenContainer(path)
	if err != nil {
		return "", err
	}
	defer con.Close()

	if err = con.ExtractAll(outDir, ioutil.RawSink{}); err != nil {
		return "", err
	}
	if _, ok := con.Lookup(format.PAYLOAD_ENTRY_NAME); !ok {
		return "", errors.Wrapf(format.ErrUnsupportedContainer,
			"package holds no %s entry", format.PAYLOAD_ENTRY_NAME)
	}
	return filepath.Join(outDir, format.PAYLOAD_ENTRY_NAME), nil
}

func decodeImage(savePath, outDir string, sidecar bool) error {
	f, err := os.Open(savePath)
	if err != nil {
		return err
	}
	defer f.Close()

	cur := ioutil.NewCursor(f)
	hdr, err := reader.ReadSaveHeader(cur)
	if err != nil {
		return err
	}

	fmt.Printf("[%s] %dx%d\n", filepath.Base(savePath), hdr.Width, hdr.Height)

	raw, err := reader.ReadScreenshot(cur, hdr)
	if err != nil {
		return err
	}
	rgb, err := pixel.Unscramble(raw, int(hdr.Width), int(hdr.Height))
	if err != nil {
		return err
	}

	if err = os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	outPath := filepath.Join(outDir, writer.ImageName(hdr))
	if err = writer.WritePNG(outPath, int(hdr.Width), int(hdr.Height), rgb); err != nil {
		return err
	}
	fmt.Println("Saved", outPath)

	if sidecar {
		metaPath := outPath + ".meta.cbor"
		if err = writer.WriteSidecar(metaPath, hdr); err != nil {
			return err
		}
		fmt.Println("Saved", metaPath)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("out", "o", "extracted_images", "Directory to write images (and unpacked payloads) into")
	extractCmd.Flags().Bool("sidecar", false, "Also write decoded header metadata as a CBOR sidecar")
}
