package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cipherloom-go/internal/config"
	"github.com/cipherloom-go/internal/encryption"
)

// paramFlags maps cipher flags to Params keys
var paramFlags = map[string]string{
	"shift":         "shift",
	"key":           "key",
	"a":             "a",
	"b":             "b",
	"ascending":     "ascending",
	"initial-shift": "initial_shift",
	"alphabet":      "alphabet",
	"passphrase":    "passphrase",
	"filler":        "filler",
	"remove-filler": "remove_filler",
	"raw":           "raw",
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [message]",
	Short: "Encrypt a message",
	Long:  `Encrypts the message given as argument, or standard input when none is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(cmd, encryption.DirEncrypt, args)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [message]",
	Short: "Decrypt a message",
	Long:  `Decrypts the message given as argument, or standard input when none is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(cmd, encryption.DirDecrypt, args)
	},
}

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		addCipherFlags(c.Flags())
		rootCmd.AddCommand(c)
	}
}

func addCipherFlags(fs *pflag.FlagSet) {
	fs.StringP("cipher", "c", "", "Cipher name (see 'cipherloom list')")
	fs.StringP("preset", "p", "", "Preset name from the config file")
	fs.Int("shift", 0, "Shift for caesar")
	fs.StringP("key", "k", "", "Key for vigenere, transposition, hill and playfair")
	fs.Int("a", 0, "Multiplier for affine")
	fs.Int("b", 0, "Offset for affine")
	fs.Bool("ascending", true, "Shift direction for trithemius")
	fs.Int("initial-shift", 0, "Initial shift for trithemius")
	fs.String("alphabet", "", "Cipher alphabet for monoalphabetic")
	fs.String("passphrase", "", "Derive the monoalphabetic alphabet from a passphrase")
	fs.String("filler", "", "Filler letter for transposition, hill and playfair")
	fs.Bool("remove-filler", false, "Strip fillers when decrypting")
	fs.Bool("raw", false, "Transpose every character, not only letters")
}

// changedParams collects the cipher flags set on the command line
func changedParams(fs *pflag.FlagSet) map[string]interface{} {
	raw := make(map[string]interface{})
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := paramFlags[f.Name]; ok {
			raw[key] = f.Value.String()
		}
	})
	return raw
}

// resolveCipher picks the cipher kind and params from --cipher or --preset
// plus the individual flags, which override preset params
func resolveCipher(cmd *cobra.Command) (encryption.Kind, encryption.Params, error) {
	fs := cmd.Flags()
	name, _ := fs.GetString("cipher")
	preset, _ := fs.GetString("preset")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", encryption.Params{}, err
	}
	params := baseParams(cfg)
	if preset != "" {
		p, ok := cfg.Preset(preset)
		if !ok {
			return "", params, fmt.Errorf("unknown preset: %s", preset)
		}
		if params, err = params.Merge(p.Params); err != nil {
			return "", params, err
		}
		if name == "" {
			name = p.Cipher
		}
	}
	if name == "" {
		return "", params, fmt.Errorf("one of --cipher or --preset is required")
	}

	kind, err := encryption.ParseKind(name)
	if err != nil {
		return "", params, err
	}
	params, err = params.Merge(changedParams(fs))
	if err != nil {
		return "", params, err
	}
	return kind, params, nil
}

func runCipher(cmd *cobra.Command, dir encryption.Direction, args []string) error {
	kind, params, err := resolveCipher(cmd)
	if err != nil {
		return err
	}

	message, err := readMessage(cmd, args)
	if err != nil {
		return err
	}

	out, err := encryption.Run(cmd.Context(), kind, dir, message, params)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// readMessage returns the first argument, or standard input without its
// trailing newline
func readMessage(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// baseParams returns the params every cipher run starts from
func baseParams(cfg *config.Config) encryption.Params {
	base := encryption.DefaultParams()
	if cfg.Cipher.DefaultFiller != "" {
		base.Filler = cfg.Cipher.DefaultFiller
	}
	return base
}
