// Package mnemonic renders cipher keys as BIP-39 word lists so they can be
// written down and typed back in. A 128, 192 or 256-bit key maps to 12, 18 or
// 24 words; the last word carries a checksum.
package mnemonic

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/tyler-smith/go-bip39"
)

type Mnemonic struct {
	words []string
}

// Generate draws a fresh random key of keyBits and returns its phrase.
func Generate(keyBits int) (*Mnemonic, error) {
	if _, err := rijndael.ExpandedKeySize(keyBits / 8); err != nil || keyBits%8 != 0 {
		return nil, fmt.Errorf("key bits must be 128, 192 or 256, got %d", keyBits)
	}

	entropy, err := bip39.NewEntropy(keyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate entropy: %w", err)
	}

	return FromKey(entropy)
}

// FromKey encodes an AES key. Only 16, 24 and 32-byte keys are accepted.
func FromKey(key []byte) (*Mnemonic, error) {
	if _, err := rijndael.ExpandedKeySize(len(key)); err != nil {
		return nil, err
	}

	phrase, err := bip39.NewMnemonic(key)
	if err != nil {
		return nil, fmt.Errorf("failed to encode key: %w", err)
	}

	return &Mnemonic{
		words: strings.Split(phrase, " "),
	}, nil
}

// FromWords parses a phrase. Surrounding and repeated whitespace is ignored
// and words are matched case-insensitively.
func FromWords(words string) (*Mnemonic, error) {
	fields := strings.Fields(strings.ToLower(words))
	if _, err := KeyBitsFromWordCount(len(fields)); err != nil {
		return nil, err
	}

	phrase := strings.Join(fields, " ")
	if !bip39.IsMnemonicValid(phrase) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}

	return &Mnemonic{words: fields}, nil
}

func (m *Mnemonic) Words() string {
	return strings.Join(m.words, " ")
}

func (m *Mnemonic) WordList() []string {
	result := make([]string, len(m.words))
	copy(result, m.words)
	return result
}

func (m *Mnemonic) WordCount() int {
	return len(m.words)
}

// Key decodes the phrase back into the key bytes.
func (m *Mnemonic) Key() ([]byte, error) {
	key, err := bip39.EntropyFromMnemonic(m.Words())
	if err != nil {
		return nil, fmt.Errorf("failed to decode key from mnemonic: %w", err)
	}
	return key, nil
}

// Fingerprint is the first four bytes of SHA-256 over the key, in hex. It
// lets two holders confirm they hold the same key without revealing it.
func (m *Mnemonic) Fingerprint() (string, error) {
	key, err := m.Key()
	if err != nil {
		return "", err
	}
	return Fingerprint(key), nil
}

func Fingerprint(key []byte) string {
	h := sha256.Sum256(key)
	return hex.EncodeToString(h[:4])
}

func KeyBitsFromWordCount(wordCount int) (int, error) {
	switch wordCount {
	case 12:
		return 128, nil
	case 18:
		return 192, nil
	case 24:
		return 256, nil
	default:
		return 0, fmt.Errorf("mnemonic must have 12, 18 or 24 words (got %d)", wordCount)
	}
}
