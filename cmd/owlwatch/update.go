package main

import (
	"fmt"
	"os"

	"github.com/owlwatch/owlwatch/internal/common/output"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer owlwatch release",
	Run:   runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	loadConfig()

	outcome, err := newChecker().CheckForUpdate(commandContext(cmd))
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}

	if outcome.UpdateAvailable {
		output.Box("Update available", fmt.Sprintf("%s -> %s", outcome.Current, outcome.Latest))
		return
	}
	output.PrintSuccess("owlwatch %s is up to date", outcome.Current)
}
