package rijndael

import (
	"fmt"

	"github.com/Davincible/rijndael/pkg/crypto/gf"
)

const wordLen = 4

// ExpandedKeySize returns the schedule length for a key of keyLen bytes:
// 176, 208 or 240 bytes, one 16-byte round key per round plus the initial one.
func ExpandedKeySize(keyLen int) (int, error) {
	switch keyLen {
	case Key128:
		return 176, nil
	case Key192:
		return 208, nil
	case Key256:
		return 240, nil
	default:
		return 0, fmt.Errorf("%w: %d bytes", ErrKeySize, keyLen)
	}
}

// Rounds derives the round count from the length of an expanded key.
func Rounds(expandedKey []byte) (int, error) {
	switch len(expandedKey) {
	case 176:
		return 10, nil
	case 208:
		return 12, nil
	case 240:
		return 14, nil
	default:
		return 0, fmt.Errorf("%w: %d bytes", ErrScheduleSize, len(expandedKey))
	}
}

// ExpandKey expands a 16, 24 or 32-byte cipher key into its key schedule.
//
// The schedule is built four bytes at a time. Each new word is the word
// keyLen bytes back XORed with the previous word, which first goes through
// the schedule core (rotate, substitute, add round constant) at every
// multiple of the key length, and for 256-bit keys through a bare
// substitution halfway between two such multiples.
func ExpandKey(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrMissingKey
	}
	size, err := ExpandedKeySize(len(key))
	if err != nil {
		return nil, err
	}

	n := len(key)
	exp := make([]byte, size)
	copy(exp, key)

	var word [wordLen]byte
	iteration := 0
	for off := n; off < size; off += wordLen {
		copy(word[:], exp[off-wordLen:off])

		switch {
		case off%n == 0:
			scheduleCore(&word, iteration)
			iteration++
		case n == Key256 && off%n == n/2:
			subWord(&word)
		}

		for i := 0; i < wordLen; i++ {
			exp[off+i] = exp[off+i-n] ^ word[i]
		}
	}

	return exp, nil
}

func scheduleCore(word *[wordLen]byte, iteration int) {
	rotWord(word)
	subWord(word)
	word[0] ^= gf.Rcon(iteration)
}

// rotWord rotates the word one byte to the left.
func rotWord(word *[wordLen]byte) {
	word[0], word[1], word[2], word[3] = word[1], word[2], word[3], word[0]
}

func subWord(word *[wordLen]byte) {
	for i := range word {
		word[i] = sBox[word[i]]
	}
}

// PadKey normalises a key of unsupported length to the next valid size by
// appending pad bytes whose value is their own index: a 10-byte key becomes
// key || 0a 0b 0c 0d 0e 0f. Keys already 16, 24 or 32 bytes long are copied
// unchanged. Empty keys and keys longer than 32 bytes are rejected.
//
// The cipher functions never pad on their own; callers opt in by calling
// PadKey first.
func PadKey(key []byte) ([]byte, error) {
	var target int
	switch n := len(key); {
	case n == 0:
		return nil, ErrMissingKey
	case n <= Key128:
		target = Key128
	case n <= Key192:
		target = Key192
	case n <= Key256:
		target = Key256
	default:
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrKeySize, n, Key256)
	}

	padded := make([]byte, target)
	copy(padded, key)
	for i := len(key); i < target; i++ {
		padded[i] = byte(i)
	}
	return padded, nil
}
