package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cipherloom-go/internal/encryption"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available ciphers and configured presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CIPHER\tPARAMS\tDESCRIPTION")
		for _, info := range encryption.Describe() {
			params := strings.Join(info.Params, ",")
			if params == "" {
				params = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Kind, params, info.Description)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(cfg.Cipher.Presets) > 0 {
			names := make([]string, 0, len(cfg.Cipher.Presets))
			for name := range cfg.Cipher.Presets {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(w)
			fmt.Fprintln(w, "PRESET\tCIPHER\tDESCRIPTION")
			for _, name := range names {
				p := cfg.Cipher.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Cipher, p.Describe)
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
