package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cipherloom-go/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cipherloom",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cipherloom version %s (%s)\n", config.Version, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
