package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Prints the bulletins currently listed and which of them are new. Nothing is downloaded or saved.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, true)
	},
}
