package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/ioutil"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/reader"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Investigate the contents of a save or CON package",
	Long: `Show the decoded header of a flat save, or the directory table of
a CON package, without writing any image.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		checksum, _ := cmd.Flags().GetBool("checksum")

		if inspectAll(cmd, args, checksum) > 0 {
			os.Exit(1)
		}
	},
}

// inspectAll inspects every input and reports how many failed. One bad
// input does not stop the batch.
func inspectAll(cmd *cobra.Command, paths []string, checksum bool) int {
	failed := 0
	for _, filename := range paths {
		fmt.Println(filename)
		if err := inspectOne(filename, checksum); err != nil {
			cmd.PrintErrf("%s: %v\n", filename, err)
			failed++
		}
	}
	return failed
}

func inspectOne(path string, checksum bool) error {
	family, err := sniffFamily(path)
	if err != nil {
		return err
	}
	if family == familyCON {
		return inspectContainer(path, checksum)
	}
	return inspectSave(path, checksum)
}

func inspectSave(path string, checksum bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cur := ioutil.NewCursor(f)
	hdr, err := reader.ReadSaveHeader(cur)
	if err != nil {
		return err
	}
	spew.Dump(hdr)
	fmt.Printf("screenshot: offset %d, %d bytes\n", hdr.ScreenshotOffset(), hdr.ScreenshotLen())

	if checksum {
		raw, err := reader.ReadScreenshot(cur, hdr)
		if err != nil {
			return err
		}
		sum := blake2b.Sum256(raw)
		fmt.Printf("screenshot blake2b-256: %x\n", sum)
	}
	return nil
}

func inspectContainer(path string, checksum bool) error {
	con, err := reader.OpenContainer(path)
	if err != nil {
		return err
	}
	defer con.Close()

	for _, e := range con.Entries() {
		kind := "FILE"
		if e.IsDir() {
			kind = "DIR "
		}
		fmt.Printf("%s %10d  cl=%6d  parent=%d  %s\n", kind, e.Size, e.Cluster, e.Parent, e.Name)

		if checksum && !e.IsDir() {
			hasher, err := blake2b.New256(nil)
			if err != nil {
				return err
			}
			sink := ioutil.NewChecksumSink(io.Discard, hasher)
			if err := con.ExtractEntry(e, sink); err != nil {
				return err
			}
			fmt.Printf("     blake2b-256: %s\n", sink.HexSum())
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("checksum", false, "Print a BLAKE2b-256 checksum of each payload")
}
