package main

import (
	"os"

	"github.com/spf13/cobra"
)

// checkCmd runs a report-only pass: pull requests are fetched and
// classified but nothing is merged.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which pull requests are blocked or ready to merge",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runPass(cmd, false))
	},
}
