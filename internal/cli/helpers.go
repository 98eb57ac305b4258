package cli

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/config"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/storage"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// keyOptions are the key source flags shared by encrypt, decrypt and expand.
type keyOptions struct {
	keyHex      string
	expandedHex string
	useKeyfile  bool
}

func addKeyFlags(cmd *cobra.Command, o *keyOptions, withSchedule bool) {
	cmd.Flags().StringVarP(&o.keyHex, "key", "k", "", "Cipher key in hex (16, 24 or 32 bytes)")
	if withSchedule {
		cmd.Flags().StringVarP(&o.expandedHex, "expanded-key", "e", "", "Key schedule in hex (176, 208 or 240 bytes), takes precedence over --key")
	}
	cmd.Flags().BoolVar(&o.useKeyfile, "use-keyfile", false, "Load the key from the passphrase-protected keyfile")
	cmd.Flags().String("keyfile", "", "Keyfile path (default from config)")
}

// resolveKey returns either a cipher key or an expanded key, never both.
// Sources in order: --expanded-key, --key, the keyfile, an interactive prompt.
func resolveKey(cmd *cobra.Command, s *settings, o *keyOptions) (key, expanded []byte, err error) {
	if o.expandedHex != "" {
		if o.keyHex != "" {
			slog.Debug("Both key and expanded key supplied, using expanded key")
		}
		expanded, err = validation.DecodeExpandedKey(o.expandedHex)
		if err != nil {
			return nil, nil, err
		}
		return nil, expanded, nil
	}

	switch {
	case o.keyHex != "":
		key, err = validation.DecodeKey(o.keyHex)
	case o.useKeyfile:
		key, err = loadKeyfile(cmd, s)
	default:
		var input string
		input, err = readSecret(cmd, "Enter key (hex): ")
		if err == nil {
			key, err = validation.DecodeKey(input)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	key, err = applyKeyPolicy(key, s.KeyPolicy)
	if err != nil {
		return nil, nil, err
	}
	return key, nil, nil
}

func applyKeyPolicy(key []byte, policy string) ([]byte, error) {
	if policy == config.KeyPolicyPad {
		padded, err := rijndael.PadKey(key)
		if err != nil {
			return nil, err
		}
		if len(padded) != len(key) {
			slog.Debug("Key padded", "from", len(key), "to", len(padded))
		}
		return padded, nil
	}

	if _, err := rijndael.ExpandedKeySize(len(key)); err != nil {
		return nil, fmt.Errorf("%w (use --pad-key to pad short keys)", err)
	}
	return key, nil
}

func loadKeyfile(cmd *cobra.Command, s *settings) ([]byte, error) {
	kf := storage.NewKeyfile(s.KeyfilePath, s.KDFIterations)
	if !kf.Exists() {
		return nil, fmt.Errorf("no keyfile at %s (create one with 'rijndael key save')", kf.Path())
	}

	passphrase, err := readSecret(cmd, "Keyfile passphrase: ")
	if err != nil {
		return nil, err
	}

	key, err := kf.Load([]byte(passphrase))
	if err != nil {
		return nil, err
	}
	slog.Debug("Key loaded from keyfile", "path", kf.Path(), "bits", len(key)*8)
	return key, nil
}

// readSecret prompts on stderr and reads one line without echo when stdin is
// a terminal. Piped input is read a line at a time.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := readLine(in)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readLine reads up to and excluding '\n' one byte at a time so that
// consecutive prompts on the same reader do not swallow each other's input.
func readLine(r io.Reader) (string, error) {
	var (
		sb  strings.Builder
		buf [1]byte
	)
	for {
		n, err := r.Read(buf[:])
		if n == 1 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) {
			if sb.Len() == 0 {
				return "", fmt.Errorf("no input: %w", err)
			}
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

func encodeBytes(data []byte, format string) string {
	if format == config.OutputBase64 {
		return base64.StdEncoding.EncodeToString(data)
	}
	return hex.EncodeToString(data)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// wrapWords prints words in rows of perLine, numbered.
func wrapWords(w io.Writer, words []string, perLine int) {
	for i := 0; i < len(words); i += perLine {
		end := i + perLine
		if end > len(words) {
			end = len(words)
		}
		var row []string
		for j := i; j < end; j++ {
			row = append(row, fmt.Sprintf("%2d. %-10s", j+1, words[j]))
		}
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(row, " "), " "))
	}
}
