package rijndael

import (
	"crypto/cipher"

	"github.com/Davincible/rijndael/pkg/secure"
)

var _ cipher.Block = (*Cipher)(nil)

// Cipher is an AES block cipher bound to one key schedule. The round keys
// are laid out once, so encrypting many blocks does not repeat the work.
// A Cipher is safe for concurrent use until Destroy is called.
type Cipher struct {
	expanded []byte
	rks      []State
}

// NewCipher expands key and returns a Cipher for it.
func NewCipher(key []byte) (*Cipher, error) {
	expanded, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	return newCipher(expanded)
}

// NewCipherFromSchedule returns a Cipher for a precomputed expanded key.
// The schedule is copied.
func NewCipherFromSchedule(expandedKey []byte) (*Cipher, error) {
	if len(expandedKey) == 0 {
		return nil, ErrMissingKey
	}
	expanded := make([]byte, len(expandedKey))
	copy(expanded, expandedKey)
	return newCipher(expanded)
}

func newCipher(expanded []byte) (*Cipher, error) {
	rounds, err := Rounds(expanded)
	if err != nil {
		return nil, err
	}
	return &Cipher{
		expanded: expanded,
		rks:      roundKeys(expanded, rounds),
	}, nil
}

func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Rounds returns the number of rounds, 10, 12 or 14, or 0 once destroyed.
func (c *Cipher) Rounds() int {
	if c.rks == nil {
		return 0
	}
	return len(c.rks) - 1
}

// Encrypt encrypts the first block of src into dst. Like every
// cipher.Block it panics when either buffer is shorter than a block, and
// it panics when the Cipher has been destroyed.
func (c *Cipher) Encrypt(dst, src []byte) {
	c.checkLive()
	checkBuffers(dst, src)
	var s State
	s.load(src[:BlockSize])
	encryptState(&s, c.rks)
	s.store(dst[:BlockSize])
}

// Decrypt decrypts the first block of src into dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	c.checkLive()
	checkBuffers(dst, src)
	var s State
	s.load(src[:BlockSize])
	decryptState(&s, c.rks)
	s.store(dst[:BlockSize])
}

// Destroy wipes the key schedule. The Cipher must not be used afterwards.
func (c *Cipher) Destroy() {
	secure.Zero(c.expanded)
	for i := range c.rks {
		secure.Zero(c.rks[i][:])
	}
	c.expanded = nil
	c.rks = nil
}

func (c *Cipher) checkLive() {
	if c.rks == nil {
		panic("rijndael: use of destroyed Cipher")
	}
}

func checkBuffers(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
}
