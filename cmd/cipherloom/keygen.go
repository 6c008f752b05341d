package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cipherloom-go/internal/keysched"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen <passphrase>",
	Short: "Derive a monoalphabetic cipher alphabet from a passphrase",
	Long: `Prints the 26-letter alphabet that 'encrypt --cipher monoalphabetic
--passphrase <passphrase>' would use, so it can be stored or shared.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alpha, err := keysched.DeriveAlphabet(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), alpha)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
