package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"platcheck"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of platcheck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("platcheck version %s\n", strings.TrimSpace(platcheck.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
