package cli

import (
	"fmt"
	"log/slog"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/spf13/cobra"
)

type blockResult struct {
	Operation string `json:"operation"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Format    string `json:"format"`
	Rounds    int    `json:"rounds"`
}

func NewEncryptCommand() *cobra.Command {
	var (
		keys        keyOptions
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "encrypt BLOCK",
		Short: "Encrypt one 16-byte block",
		Long: `Encrypt a single 16-byte block with AES-128, AES-192 or AES-256.
The variant follows from the key length, or from the length of the key
schedule when --expanded-key is given.

The block is read in the input format (hex by default) and the result is
written in the output format. No chaining mode or padding is applied.`,
		Example: `  # FIPS-197 Appendix C.1
  rijndael encrypt 00112233445566778899aabbccddeeff --key 000102030405060708090a0b0c0d0e0f

  # Reuse a precomputed schedule
  rijndael encrypt 00112233445566778899aabbccddeeff --expanded-key "$(rijndael expand --key 2b7e... --raw)"

  # Key from the keyfile, result in base64
  rijndael encrypt 00112233445566778899aabbccddeeff --use-keyfile -o base64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlock(cmd, "encrypt", args[0], inputFormat, &keys)
		},
	}

	addKeyFlags(cmd, &keys, true)
	cmd.Flags().StringVar(&inputFormat, "input-format", "hex", "Encoding of BLOCK: hex or base64")

	return cmd
}

func NewDecryptCommand() *cobra.Command {
	var (
		keys        keyOptions
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "decrypt BLOCK",
		Short: "Decrypt one 16-byte block",
		Long: `Decrypt a single 16-byte block produced by 'rijndael encrypt' or any
other AES implementation, using the same key or key schedule.`,
		Example: `  # FIPS-197 Appendix C.1
  rijndael decrypt 69c4e0d86a7b0430d8cdb78070b4c55a --key 000102030405060708090a0b0c0d0e0f

  # Prompt for the key without echo
  rijndael decrypt 69c4e0d86a7b0430d8cdb78070b4c55a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlock(cmd, "decrypt", args[0], inputFormat, &keys)
		},
	}

	addKeyFlags(cmd, &keys, true)
	cmd.Flags().StringVar(&inputFormat, "input-format", "hex", "Encoding of BLOCK: hex or base64")

	return cmd
}

func runBlock(cmd *cobra.Command, operation, input, inputFormat string, keys *keyOptions) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	block, err := validation.DecodeBlock(input, inputFormat)
	if err != nil {
		return err
	}

	key, expanded, err := resolveKey(cmd, s, keys)
	if err != nil {
		return err
	}

	// Expanding once here lets the round count be reported; the result is
	// identical to passing the raw key through.
	if expanded == nil {
		if expanded, err = rijndael.ExpandKey(key); err != nil {
			return err
		}
	}
	rounds, err := rijndael.Rounds(expanded)
	if err != nil {
		return err
	}

	var out []byte
	switch operation {
	case "encrypt":
		out, err = rijndael.Encrypt(block, nil, expanded)
	case "decrypt":
		out, err = rijndael.Decrypt(block, nil, expanded)
	default:
		return fmt.Errorf("unknown operation %q", operation)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", operation, err)
	}

	slog.Debug("Block processed", "operation", operation, "rounds", rounds, "schedule_bytes", len(expanded))

	encoded := encodeBytes(out, s.Output)
	if s.JSON {
		return writeJSON(cmd.OutOrStdout(), blockResult{
			Operation: operation,
			Input:     encodeBytes(block, s.Output),
			Output:    encoded,
			Format:    s.Output,
			Rounds:    rounds,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), encoded)
	return nil
}
