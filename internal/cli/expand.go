package cli

import (
	"fmt"

	"github.com/Davincible/rijndael/pkg/config"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type scheduleResult struct {
	KeyBits   int      `json:"key_bits"`
	Rounds    int      `json:"rounds"`
	Schedule  string   `json:"schedule"`
	RoundKeys []string `json:"round_keys"`
}

func NewExpandCommand() *cobra.Command {
	var (
		keys keyOptions
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print the key schedule for a key",
		Long: `Expand a 128, 192 or 256-bit key into its round keys and print them,
one row per round as four 32-bit words.

Round keys are printed in the --output encoding. Use --raw to print the
whole schedule as one string; in hex it can be passed to encrypt or
decrypt with --expanded-key.`,
		Example: `  # FIPS-197 Appendix A.1
  rijndael expand --key 2b7e151628aed2a6abf7158809cf4f3c

  # Schedule as a single hex string
  rijndael expand --key 2b7e151628aed2a6abf7158809cf4f3c --raw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			key, _, err := resolveKey(cmd, s, &keys)
			if err != nil {
				return err
			}

			expanded, err := rijndael.ExpandKey(key)
			if err != nil {
				return err
			}
			rounds, err := rijndael.Rounds(expanded)
			if err != nil {
				return err
			}

			result := scheduleResult{
				KeyBits:  len(key) * 8,
				Rounds:   rounds,
				Schedule: encodeBytes(expanded, s.Output),
			}
			for r := 0; r <= rounds; r++ {
				rk := expanded[r*rijndael.BlockSize : (r+1)*rijndael.BlockSize]
				result.RoundKeys = append(result.RoundKeys, encodeBytes(rk, s.Output))
			}

			out := cmd.OutOrStdout()
			switch {
			case s.JSON:
				return writeJSON(out, result)
			case raw:
				fmt.Fprintln(out, result.Schedule)
				return nil
			}

			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Fprintf(out, "AES-%d key schedule: %d rounds, %d bytes\n\n", result.KeyBits, rounds, len(expanded))
			for r, rk := range result.RoundKeys {
				if s.Output == config.OutputHex {
					fmt.Fprintf(out, "round %2d: %s %s %s %s\n", r, rk[0:8], rk[8:16], rk[16:24], rk[24:32])
					continue
				}
				fmt.Fprintf(out, "round %2d: %s\n", r, rk)
			}
			return nil
		},
	}

	addKeyFlags(cmd, &keys, false)
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the schedule as one string")

	return cmd
}
