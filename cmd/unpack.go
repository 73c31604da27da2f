package cmd

import (
	"fmt"

	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/ioutil"
	"github.com/GamesPastOrg/Fallout-Save-Image-Extractor/fosave/reader"
	"github.com/spf13/cobra"
)

// unpackCmd represents the unpack command
var unpackCmd = &cobra.Command{
	Use:   "unpack <con-file>",
	Short: "Unwrap a CON package without decoding the save",
	Long: `List and extract every entry of a CON package into the output
directory, flattened. Directory entries produce no output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")
		compress, _ := cmd.Flags().GetBool("compress")

		con, err := reader.OpenContainer(args[0])
		if err != nil {
			return err
		}
		defer con.Close()

		for _, e := range con.Entries() {
			kind := "FILE"
			if e.IsDir() {
				kind = "DIR "
			}
			fmt.Printf("%s %10d  cl=%6d  %s\n", kind, e.Size, e.Cluster, e.Name)
		}

		var sink ioutil.Sink = ioutil.RawSink{}
		if compress {
			sink = ioutil.ZstdSink{}
		}
		return con.ExtractAll(outDir, sink)
	},
}

func init() {
	rootCmd.AddCommand(unpackCmd)
	unpackCmd.Flags().StringP("out", "o", "extracted_images", "Directory to extract entries into")
	unpackCmd.Flags().Bool("compress", false, "Store extracted entries zstd-compressed (.zst)")
}
