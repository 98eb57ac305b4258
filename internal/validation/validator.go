package validation

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
)

var (
	hexPattern  = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	bytePattern = regexp.MustCompile(`^(0[xX])?[0-9a-fA-F]{1,2}$`)
)

func ValidateHex(input string) error {
	input = stripHex(input)
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}

	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}

	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}

	return nil
}

// DecodeHex accepts hex with optional 0x prefix and embedded spaces, colons
// or newlines, the way test vectors are usually printed.
func DecodeHex(input string) ([]byte, error) {
	if err := ValidateHex(input); err != nil {
		return nil, err
	}
	return hex.DecodeString(stripHex(input))
}

// DecodeBlock decodes one cipher block from hex or base64.
func DecodeBlock(input, format string) ([]byte, error) {
	var (
		block []byte
		err   error
	)

	switch format {
	case "hex":
		block, err = DecodeHex(input)
	case "base64":
		block, err = base64.StdEncoding.DecodeString(strings.TrimSpace(input))
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s block: %w", format, err)
	}

	if len(block) != rijndael.BlockSize {
		return nil, fmt.Errorf("%w: got %d bytes", rijndael.ErrBlockSize, len(block))
	}

	return block, nil
}

// DecodeKey decodes a hex key. Length is checked by the caller, which knows
// whether padding is allowed.
func DecodeKey(input string) ([]byte, error) {
	key, err := DecodeHex(input)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}
	return key, nil
}

// DecodeExpandedKey decodes a hex key schedule and checks it is 176, 208 or
// 240 bytes long.
func DecodeExpandedKey(input string) ([]byte, error) {
	expanded, err := DecodeHex(input)
	if err != nil {
		return nil, fmt.Errorf("invalid expanded key format: %w", err)
	}

	if _, err := rijndael.Rounds(expanded); err != nil {
		return nil, err
	}

	return expanded, nil
}

// ParseByte parses a field element written as "57", "0x57" or "0X57".
func ParseByte(input string) (byte, error) {
	input = strings.TrimSpace(input)
	if !bytePattern.MatchString(input) {
		return 0, fmt.Errorf("invalid field element %q: want one hex byte such as 0x57", input)
	}

	input = strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X")
	v, err := strconv.ParseUint(input, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid field element %q: %w", input, err)
	}

	return byte(v), nil
}

func ValidateSplitParams(parts, threshold int) error {
	if parts < 2 || parts > 255 {
		return fmt.Errorf("parts must be between 2 and 255 (got %d)", parts)
	}

	if threshold < 2 || threshold > parts {
		return fmt.Errorf("threshold must be between 2 and %d (got %d)", parts, threshold)
	}

	return nil
}

func ValidatePassphrase(passphrase string) error {
	if len(passphrase) == 0 {
		return fmt.Errorf("passphrase cannot be empty")
	}

	if len(passphrase) > 256 {
		return fmt.Errorf("passphrase too long (max 256 characters)")
	}

	for i, ch := range passphrase {
		if ch == 0 {
			return fmt.Errorf("passphrase contains null character at position %d", i)
		}
	}

	return nil
}

func ValidateKeySize(size int) error {
	if _, err := rijndael.ExpandedKeySize(size); err != nil {
		return fmt.Errorf("key size must be 16, 24 or 32 bytes: %w", err)
	}
	return nil
}

func stripHex(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X")
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, input)
}
