// Package rijndael implements the AES block cipher (Rijndael with a 128-bit
// block) from first principles on top of package gf: S-box construction,
// key expansion, the four round transformations and their composition into
// encryption and decryption of a single 16-byte block.
//
// All lookup tables are built during package initialisation and are never
// written afterwards, so every function here is safe for concurrent use.
// Table lookups are indexed by secret data; this package makes no attempt
// to hide cache timing.
//
// Modes of operation are not provided. Cipher satisfies crypto/cipher.Block,
// so the standard library's modes can be layered on top of it.
package rijndael

const (
	// BlockSize is the AES block size in bytes
	BlockSize = 16

	Key128 = 16
	Key192 = 24
	Key256 = 32
)
