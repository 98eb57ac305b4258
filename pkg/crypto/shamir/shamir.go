// Package shamir splits an AES key into threshold shares so no single holder
// can use it alone.
package shamir

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/hashicorp/vault/shamir"
)

// Share is one piece of a split key. Data carries the share bytes followed by
// the x-coordinate byte, as produced by the underlying scheme.
type Share struct {
	Index byte
	Data  []byte
}

type Config struct {
	Parts     int
	Threshold int
}

func (c *Config) Validate() error {
	if c.Parts < 2 {
		return fmt.Errorf("parts must be at least 2, got %d", c.Parts)
	}
	if c.Threshold < 2 {
		return fmt.Errorf("threshold must be at least 2, got %d", c.Threshold)
	}
	if c.Threshold > c.Parts {
		return fmt.Errorf("threshold (%d) cannot be greater than parts (%d)", c.Threshold, c.Parts)
	}
	if c.Parts > 255 {
		return fmt.Errorf("parts cannot exceed 255, got %d", c.Parts)
	}
	return nil
}

// SplitKey splits a 16, 24 or 32-byte key into config.Parts shares, any
// config.Threshold of which rebuild it.
func SplitKey(key []byte, config Config) ([]Share, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if _, err := rijndael.ExpandedKeySize(len(key)); err != nil {
		return nil, err
	}

	shares, err := shamir.Split(key, config.Parts, config.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to split key: %w", err)
	}

	result := make([]Share, len(shares))
	for i, share := range shares {
		result[i] = Share{
			Index: byte(i + 1),
			Data:  share,
		}
	}

	return result, nil
}

// CombineKey rebuilds a key from shares. Fewer shares than the threshold
// yield a wrong key rather than an error; the length check only catches
// shares that came from different splits or were truncated.
func CombineKey(shares []Share) ([]byte, error) {
	if len(shares) < 2 {
		return nil, fmt.Errorf("at least 2 shares are required for reconstruction")
	}

	expectedLen := len(shares[0].Data)
	shareBytes := make([][]byte, len(shares))
	for i, share := range shares {
		if err := VerifyShare(share, expectedLen); err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		shareBytes[i] = share.Data
	}

	key, err := shamir.Combine(shareBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to combine shares: %w", err)
	}

	if _, err := rijndael.ExpandedKeySize(len(key)); err != nil {
		return nil, fmt.Errorf("combined secret is not a cipher key: %w", err)
	}

	return key, nil
}

func VerifyShare(share Share, expectedLen int) error {
	if len(share.Data) != expectedLen {
		return fmt.Errorf("invalid share length: expected %d, got %d", expectedLen, len(share.Data))
	}
	if share.Index == 0 {
		return fmt.Errorf("share index cannot be 0")
	}
	return nil
}

func (s Share) Hex() string {
	return hex.EncodeToString(s.Data)
}

// ParseShares decodes hex shares as printed by Hex, numbering them in order.
func ParseShares(encoded []string) ([]Share, error) {
	shares := make([]Share, 0, len(encoded))
	for i, e := range encoded {
		data, err := hex.DecodeString(strings.TrimSpace(e))
		if err != nil {
			return nil, fmt.Errorf("share %d: invalid hex: %w", i+1, err)
		}
		if len(data) < rijndael.Key128+1 {
			return nil, fmt.Errorf("share %d: too short (%d bytes)", i+1, len(data))
		}
		shares = append(shares, Share{Index: byte(i + 1), Data: data})
	}
	return shares, nil
}
