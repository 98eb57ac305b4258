// Package storage keeps cipher keys on disk sealed under a passphrase.
package storage

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	SaltSize          = 32
	KEKSize           = rijndael.Key256
	DefaultIterations = 100000
	MinIterations     = 10000

	keyfileVersion = 1
)

// additional data bound into every seal so a keyfile cannot be replayed as
// some other GCM-sealed blob
var keyfileAAD = []byte("rijndael-keyfile-v1")

var (
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")
	ErrDecrypt         = errors.New("keyfile authentication failed: wrong passphrase or corrupted file")
)

// Keyfile is a passphrase-sealed AES key stored as JSON. The key-encryption
// key comes from PBKDF2-SHA256 over the NFKD-normalised passphrase and seals
// the key with AES-GCM running on this module's own block cipher.
type Keyfile struct {
	path       string
	iterations int
}

type sealedKey struct {
	Version    int    `json:"version"`
	KeyBits    int    `json:"key_bits"`
	Iterations int    `json:"iterations"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// NewKeyfile returns a Keyfile at path. Iterations below MinIterations fall
// back to DefaultIterations. Load always uses the count stored in the file.
func NewKeyfile(path string, iterations int) *Keyfile {
	if iterations < MinIterations {
		iterations = DefaultIterations
	}
	return &Keyfile{
		path:       path,
		iterations: iterations,
	}
}

func (k *Keyfile) Path() string {
	return k.path
}

func (k *Keyfile) Save(key, passphrase []byte) error {
	if len(passphrase) == 0 {
		return ErrEmptyPassphrase
	}
	if _, err := rijndael.ExpandedKeySize(len(key)); err != nil {
		return err
	}

	salt, err := secure.RandomBytes(SaltSize)
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := newSealer(passphrase, salt, k.iterations)
	if err != nil {
		return err
	}

	nonce, err := secure.RandomBytes(gcm.NonceSize())
	if err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := sealedKey{
		Version:    keyfileVersion,
		KeyBits:    len(key) * 8,
		Iterations: k.iterations,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, key, keyfileAAD),
	}

	data, err := json.MarshalIndent(sealed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keyfile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(k.path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(k.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write keyfile: %w", err)
	}

	return nil
}

func (k *Keyfile) Load(passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}

	data, err := os.ReadFile(k.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyfile: %w", err)
	}

	var sealed sealedKey
	if err := json.Unmarshal(data, &sealed); err != nil {
		return nil, fmt.Errorf("failed to parse keyfile: %w", err)
	}

	if sealed.Version != keyfileVersion {
		return nil, fmt.Errorf("unsupported keyfile version %d", sealed.Version)
	}
	if sealed.Iterations < MinIterations {
		return nil, fmt.Errorf("keyfile iteration count %d below minimum %d", sealed.Iterations, MinIterations)
	}
	if len(sealed.Salt) != SaltSize {
		return nil, fmt.Errorf("keyfile salt must be %d bytes, got %d", SaltSize, len(sealed.Salt))
	}

	gcm, err := newSealer(passphrase, sealed.Salt, sealed.Iterations)
	if err != nil {
		return nil, err
	}

	if len(sealed.Nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("keyfile nonce must be %d bytes, got %d", gcm.NonceSize(), len(sealed.Nonce))
	}

	key, err := gcm.Open(nil, sealed.Nonce, sealed.Ciphertext, keyfileAAD)
	if err != nil {
		return nil, ErrDecrypt
	}

	if len(key)*8 != sealed.KeyBits {
		secure.Zero(key)
		return nil, fmt.Errorf("keyfile declares %d-bit key but holds %d bits", sealed.KeyBits, len(key)*8)
	}

	return key, nil
}

func (k *Keyfile) Exists() bool {
	_, err := os.Stat(k.path)
	return err == nil
}

// Delete overwrites the file with random bytes before removing it.
func (k *Keyfile) Delete() error {
	if !k.Exists() {
		return nil
	}

	data, err := os.ReadFile(k.path)
	if err != nil {
		return fmt.Errorf("failed to read file for secure deletion: %w", err)
	}

	if _, err := rand.Read(data); err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}

	if err := os.WriteFile(k.path, data, 0600); err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}

	return os.Remove(k.path)
}

func newSealer(passphrase, salt []byte, iterations int) (cipher.AEAD, error) {
	kek := pbkdf2.Key(norm.NFKD.Bytes(passphrase), salt, iterations, KEKSize, sha256.New)
	defer secure.Zero(kek)

	block, err := rijndael.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}
