package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fosx",
	Short: "fosx pulls embedded screenshots out of Fallout 3 / New Vegas saves",
	Long: `fosx decodes PC (.fos) saves and Xbox 360 (.fxs) CON packages,
recovers the screenshot embedded in the save header, undoes the
channel scrambling, and writes a PNG per input.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write detailed information to the terminal")
}
