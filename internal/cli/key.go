package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/crypto/mnemonic"
	"github.com/Davincible/rijndael/pkg/crypto/shamir"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/Davincible/rijndael/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type keyResult struct {
	Key         string   `json:"key,omitempty"`
	Bits        int      `json:"bits"`
	Fingerprint string   `json:"fingerprint"`
	Mnemonic    string   `json:"mnemonic,omitempty"`
	Shares      []string `json:"shares,omitempty"`
	Threshold   int      `json:"threshold,omitempty"`
	Keyfile     string   `json:"keyfile,omitempty"`
}

func NewKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Generate, back up and store cipher keys",
		Long: `Key custody helpers. A key can be written down as a BIP-39 phrase, split
into Shamir shares held by different people, or stored on disk sealed
under a passphrase.`,
	}

	cmd.AddCommand(
		newKeyGenerateCommand(),
		newKeyMnemonicCommand(),
		newKeyRestoreCommand(),
		newKeySplitCommand(),
		newKeyCombineCommand(),
		newKeySaveCommand(),
		newKeyLoadCommand(),
		newKeyDeleteCommand(),
	)

	return cmd
}

func newKeyGenerateCommand() *cobra.Command {
	var withWords bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random key",
		Example: `  # 256-bit key with its backup phrase
  rijndael key generate --key-size 32 --words`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if err := validation.ValidateKeySize(s.KeySize); err != nil {
				return err
			}

			key, err := secure.RandomBytes(s.KeySize)
			if err != nil {
				return err
			}
			defer secure.Zero(key)

			result := keyResult{
				Key:         encodeBytes(key, s.Output),
				Bits:        len(key) * 8,
				Fingerprint: mnemonic.Fingerprint(key),
			}
			if withWords {
				m, err := mnemonic.FromKey(key)
				if err != nil {
					return err
				}
				result.Mnemonic = m.Words()
			}

			return printKeyResult(cmd, s, result)
		},
	}

	cmd.Flags().Int("key-size", 0, "Key size in bytes: 16, 24 or 32 (default from config)")
	cmd.Flags().BoolVar(&withWords, "words", false, "Also print the key as a BIP-39 phrase")

	return cmd
}

func newKeyMnemonicCommand() *cobra.Command {
	var keys keyOptions

	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Encode a key as a BIP-39 phrase",
		Long: `Encode a 128, 192 or 256-bit key as 12, 18 or 24 BIP-39 words. The phrase
holds the key itself, so guard it like the key.`,
		Example: `  rijndael key mnemonic --key 000102030405060708090a0b0c0d0e0f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			key, _, err := resolveKey(cmd, s, &keys)
			if err != nil {
				return err
			}
			defer secure.Zero(key)

			m, err := mnemonic.FromKey(key)
			if err != nil {
				return err
			}

			if s.JSON {
				return writeJSON(cmd.OutOrStdout(), keyResult{
					Bits:        len(key) * 8,
					Fingerprint: mnemonic.Fingerprint(key),
					Mnemonic:    m.Words(),
				})
			}

			out := cmd.OutOrStdout()
			color.New(color.FgGreen, color.Bold).Fprintf(out, "%d-word phrase for %d-bit key %s:\n\n",
				m.WordCount(), len(key)*8, mnemonic.Fingerprint(key))
			wrapWords(out, m.WordList(), 4)
			return nil
		},
	}

	addKeyFlags(cmd, &keys, false)

	return cmd
}

func newKeyRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [WORDS...]",
		Short: "Recover a key from its BIP-39 phrase",
		Example: `  rijndael key restore abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			words := strings.Join(args, " ")
			if words == "" {
				if words, err = readSecret(cmd, "Enter phrase: "); err != nil {
					return err
				}
			}

			m, err := mnemonic.FromWords(words)
			if err != nil {
				return err
			}
			key, err := m.Key()
			if err != nil {
				return err
			}
			defer secure.Zero(key)

			return printKeyResult(cmd, s, keyResult{
				Key:         encodeBytes(key, s.Output),
				Bits:        len(key) * 8,
				Fingerprint: mnemonic.Fingerprint(key),
			})
		},
	}

	return cmd
}

func newKeySplitCommand() *cobra.Command {
	var (
		keys      keyOptions
		parts     int
		threshold int
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a key into Shamir shares",
		Long: `Split a key into PARTS shares so that any THRESHOLD of them rebuild it and
fewer reveal nothing about it.`,
		Example: `  # 3-of-5 split of the stored key
  rijndael key split --use-keyfile --parts 5 --threshold 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if err := validation.ValidateSplitParams(parts, threshold); err != nil {
				return err
			}

			key, _, err := resolveKey(cmd, s, &keys)
			if err != nil {
				return err
			}
			defer secure.Zero(key)

			shares, err := shamir.SplitKey(key, shamir.Config{Parts: parts, Threshold: threshold})
			if err != nil {
				return err
			}

			result := keyResult{
				Bits:        len(key) * 8,
				Fingerprint: mnemonic.Fingerprint(key),
				Threshold:   threshold,
			}
			for _, share := range shares {
				result.Shares = append(result.Shares, share.Hex())
			}

			slog.Debug("Key split", "parts", parts, "threshold", threshold)

			if s.JSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			out := cmd.OutOrStdout()
			color.New(color.FgGreen, color.Bold).Fprintf(out, "Split %d-bit key %s into %d shares, any %d rebuild it\n\n",
				result.Bits, result.Fingerprint, parts, threshold)
			for i, share := range result.Shares {
				fmt.Fprintf(out, "Share %d: %s\n", i+1, share)
			}
			fmt.Fprintln(out)
			color.New(color.FgRed, color.Bold).Fprintln(out, "Store each share in a different place.")
			return nil
		},
	}

	addKeyFlags(cmd, &keys, false)
	cmd.Flags().IntVarP(&parts, "parts", "n", 3, "Number of shares to create")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "Shares needed to rebuild the key")

	return cmd
}

func newKeyCombineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine SHARE SHARE [SHARE...]",
		Short: "Rebuild a key from Shamir shares",
		Long: `Rebuild a key from hex shares printed by 'rijndael key split'. Supplying
fewer shares than the threshold produces a wrong key without an error;
compare the fingerprint with the one printed at split time.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			shares, err := shamir.ParseShares(args)
			if err != nil {
				return err
			}

			key, err := shamir.CombineKey(shares)
			if err != nil {
				return err
			}
			defer secure.Zero(key)

			return printKeyResult(cmd, s, keyResult{
				Key:         encodeBytes(key, s.Output),
				Bits:        len(key) * 8,
				Fingerprint: mnemonic.Fingerprint(key),
			})
		},
	}

	return cmd
}

func newKeySaveCommand() *cobra.Command {
	var (
		keys  keyOptions
		force bool
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store a key in the passphrase-protected keyfile",
		Long: `Seal a key under a passphrase and write it to the keyfile. The passphrase
is stretched with PBKDF2-SHA256 and the key is sealed with AES-256-GCM.`,
		Example: `  rijndael key save --key 000102030405060708090a0b0c0d0e0f
  rijndael key save --keyfile ./backup.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			kf := storage.NewKeyfile(s.KeyfilePath, s.KDFIterations)
			if kf.Exists() && !force {
				return fmt.Errorf("keyfile %s already exists (use --force to overwrite)", kf.Path())
			}

			key, _, err := resolveKey(cmd, s, &keys)
			if err != nil {
				return err
			}
			km := secure.FromBytes(key)
			secure.Zero(key)
			defer km.Destroy()

			passphrase, err := readSecret(cmd, "New passphrase: ")
			if err != nil {
				return err
			}
			if err := validation.ValidatePassphrase(passphrase); err != nil {
				return err
			}
			confirm, err := readSecret(cmd, "Confirm passphrase: ")
			if err != nil {
				return err
			}
			if !secure.ConstantTimeCompare([]byte(passphrase), []byte(confirm)) {
				return fmt.Errorf("passphrases do not match")
			}

			result := keyResult{Keyfile: kf.Path(), Bits: km.Len() * 8}
			err = km.With(func(k []byte) error {
				result.Fingerprint = mnemonic.Fingerprint(k)
				return kf.Save(k, []byte(passphrase))
			})
			if err != nil {
				return err
			}

			slog.Debug("Keyfile written", "path", kf.Path(), "iterations", s.KDFIterations)

			if s.JSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(), "Saved %d-bit key %s to %s\n",
				result.Bits, result.Fingerprint, result.Keyfile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&keys.keyHex, "key", "k", "", "Cipher key in hex (prompted if omitted)")
	cmd.Flags().String("keyfile", "", "Keyfile path (default from config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing keyfile")

	return cmd
}

func newKeyLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Print the key stored in the keyfile",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			key, err := loadKeyfile(cmd, s)
			if err != nil {
				return err
			}
			defer secure.Zero(key)

			return printKeyResult(cmd, s, keyResult{
				Key:         encodeBytes(key, s.Output),
				Bits:        len(key) * 8,
				Fingerprint: mnemonic.Fingerprint(key),
				Keyfile:     s.KeyfilePath,
			})
		},
	}

	cmd.Flags().String("keyfile", "", "Keyfile path (default from config)")

	return cmd
}

func newKeyDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Overwrite and remove the keyfile",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			kf := storage.NewKeyfile(s.KeyfilePath, s.KDFIterations)
			if !kf.Exists() {
				return fmt.Errorf("no keyfile at %s", kf.Path())
			}
			if !force {
				return fmt.Errorf("refusing to delete %s without --force", kf.Path())
			}

			if err := kf.Delete(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", kf.Path())
			return nil
		},
	}

	cmd.Flags().String("keyfile", "", "Keyfile path (default from config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Confirm deletion")

	return cmd
}

func printKeyResult(cmd *cobra.Command, s *settings, result keyResult) error {
	if s.JSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan)

	cyan.Fprint(out, "Key:         ")
	fmt.Fprintln(out, result.Key)
	cyan.Fprint(out, "Bits:        ")
	fmt.Fprintln(out, result.Bits)
	cyan.Fprint(out, "Fingerprint: ")
	fmt.Fprintln(out, result.Fingerprint)
	if result.Keyfile != "" {
		cyan.Fprint(out, "Keyfile:     ")
		fmt.Fprintln(out, result.Keyfile)
	}
	if result.Mnemonic != "" {
		fmt.Fprintln(out)
		cyan.Fprintln(out, "Phrase:")
		wrapWords(out, strings.Fields(result.Mnemonic), 4)
	}
	return nil
}
