package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cipherloom-go/internal/encryption"
)

var squareCmd = &cobra.Command{
	Use:   "square [key]",
	Short: "Print the Playfair key square for a key",
	Long: `Prints the 5x5 square that 'encrypt --cipher playfair --key <key>' would
use, one row per line. J shares the cell of I. Without a key the plain
alphabetical square is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := ""
		if len(args) == 1 {
			key = args[0]
		}
		pf, err := encryption.NewPlayfair(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pf.Square())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(squareCmd)
}
