package main

import (
	"os"

	"github.com/spf13/cobra"
)

// mergeCmd runs the full pass: after classification every eligible pull
// request is merged.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the pull requests that meet the label and approval criteria",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runPass(cmd, true))
	},
}
