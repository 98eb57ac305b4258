package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the rijndael command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rijndael",
		Short: "AES (Rijndael) block cipher built from first principles",
		Long: `Rijndael implements the AES block cipher from the ground up: GF(2^8)
arithmetic, a computed S-box, key expansion for 128, 192 and 256-bit keys,
and single-block encryption and decryption.

Features:
- One-block encrypt/decrypt with a raw key or a precomputed key schedule
- Inspection of S-box, log/antilog and round constant tables
- Field arithmetic with three independent inverse algorithms
- Built-in self test against FIPS-197 vectors
- Key custody: BIP-39 phrases, Shamir splitting, passphrase keyfiles`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		NewEncryptCommand(),
		NewDecryptCommand(),
		NewExpandCommand(),
		NewTablesCommand(),
		NewFieldCommand(),
		NewSelfTestCommand(),
		NewKeyCommand(),
		NewInfoCommand(),
		NewConfigCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Encoding for blocks and keys: hex or base64")
	rootCmd.PersistentFlags().String("key-policy", "", "Key length policy: strict or pad")
	rootCmd.PersistentFlags().Bool("pad-key", false, "Pad short keys to the next AES size (same as --key-policy pad)")

	return rootCmd
}
