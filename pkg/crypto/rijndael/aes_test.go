package rijndael

import (
	"crypto/aes"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownAnswers = []struct {
	name       string
	key        string
	plaintext  string
	ciphertext string
}{
	{
		name:       "128-bit zero key, zero block",
		key:        "00000000000000000000000000000000",
		plaintext:  "00000000000000000000000000000000",
		ciphertext: "66e94bd4ef8a2c3b884cfa59ca342b2e",
	},
	{
		name:       "FIPS-197 C.1 AES-128",
		key:        "000102030405060708090a0b0c0d0e0f",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "69c4e0d86a7b0430d8cdb78070b4c55a",
	},
	{
		name:       "FIPS-197 C.2 AES-192",
		key:        "000102030405060708090a0b0c0d0e0f1011121314151617",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "dda97ca4864cdfe06eaf70a0ec0d7191",
	},
	{
		name:       "FIPS-197 C.3 AES-256",
		key:        "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "8ea2b7ca516745bfeafc49904b496089",
	},
	{
		name:       "FIPS-197 Appendix B",
		key:        fipsKey,
		plaintext:  fipsPlaintext,
		ciphertext: "3925841d02dc09fbdc118597196a0b32",
	},
	{
		name:       "SP 800-38A F.1.1 block 1",
		key:        fipsKey,
		plaintext:  "6bc1bee22e409f96e93d7e117393172a",
		ciphertext: "3ad77bb40d7a3660a89ecaf32466ef97",
	},
	{
		name:       "SP 800-38A F.1.1 block 2",
		key:        fipsKey,
		plaintext:  "ae2d8a571e03ac9c9eb76fac45af8e51",
		ciphertext: "f5d3d58503b9699de785895a96fdbaaf",
	},
}

func TestKnownAnswers(t *testing.T) {
	for _, tt := range knownAnswers {
		t.Run(tt.name, func(t *testing.T) {
			key := mustHex(t, tt.key)
			pt := mustHex(t, tt.plaintext)

			ct, err := Encrypt(pt, key, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.ciphertext, hex.EncodeToString(ct))

			back, err := Decrypt(ct, key, nil)
			require.NoError(t, err)
			assert.Equal(t, pt, back)
		})
	}
}

func TestKnownAnswersWithExpandedKey(t *testing.T) {
	for _, tt := range knownAnswers {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := ExpandKey(mustHex(t, tt.key))
			require.NoError(t, err)

			ct, err := Encrypt(mustHex(t, tt.plaintext), nil, exp)
			require.NoError(t, err)
			assert.Equal(t, tt.ciphertext, hex.EncodeToString(ct))

			pt, err := Decrypt(ct, nil, exp)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, hex.EncodeToString(pt))
		})
	}
}

func TestExpandedKeyTakesPrecedence(t *testing.T) {
	exp, err := ExpandKey(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	require.NoError(t, err)

	ct, err := Encrypt(mustHex(t, "00112233445566778899aabbccddeeff"), make([]byte, 16), exp)
	require.NoError(t, err)
	assert.Equal(t, "69c4e0d86a7b0430d8cdb78070b4c55a", hex.EncodeToString(ct))
}

func TestRoundTripMatchesStandardLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(2001))

	for _, keyLen := range []int{Key128, Key192, Key256} {
		for i := 0; i < 64; i++ {
			key := make([]byte, keyLen)
			block := make([]byte, BlockSize)
			rng.Read(key)
			rng.Read(block)

			ref, err := aes.NewCipher(key)
			require.NoError(t, err)
			want := make([]byte, BlockSize)
			ref.Encrypt(want, block)

			ct, err := Encrypt(block, key, nil)
			require.NoError(t, err)
			require.Equal(t, want, ct, "key %x block %x", key, block)

			pt, err := Decrypt(ct, key, nil)
			require.NoError(t, err)
			require.Equal(t, block, pt)
		}
	}
}

func TestEncryptDoesNotModifyInput(t *testing.T) {
	block := mustHex(t, fipsPlaintext)
	_, err := Encrypt(block, mustHex(t, fipsKey), nil)
	require.NoError(t, err)
	assert.Equal(t, fipsPlaintext, hex.EncodeToString(block))
}

func TestEncryptErrors(t *testing.T) {
	block := make([]byte, BlockSize)

	tests := []struct {
		name        string
		block       []byte
		key         []byte
		expandedKey []byte
		want        error
	}{
		{"no key material", block, nil, nil, ErrMissingKey},
		{"empty key and schedule", block, []byte{}, []byte{}, ErrMissingKey},
		{"short key", block, make([]byte, 10), nil, ErrKeySize},
		{"long key", block, make([]byte, 40), nil, ErrKeySize},
		{"unrecognised schedule", block, nil, make([]byte, 100), ErrScheduleSize},
		{"schedule one byte short", block, nil, make([]byte, 175), ErrScheduleSize},
		{"short block", make([]byte, 15), make([]byte, 16), nil, ErrBlockSize},
		{"long block", make([]byte, 32), make([]byte, 16), nil, ErrBlockSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Encrypt(tt.block, tt.key, tt.expandedKey)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, out)

			out, err = Decrypt(tt.block, tt.key, tt.expandedKey)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, out)
		})
	}
}

func TestStateFunctionsRejectUnknownSchedule(t *testing.T) {
	s := mustState(t, fipsPlaintext)
	orig := s

	assert.ErrorIs(t, EncryptState(&s, make([]byte, 192)), ErrScheduleSize)
	assert.Equal(t, orig, s, "state must be untouched on failure")

	assert.ErrorIs(t, DecryptState(&s, nil), ErrScheduleSize)
	assert.Equal(t, orig, s)
}

func TestEncryptStateReusesSchedule(t *testing.T) {
	exp, err := ExpandKey(mustHex(t, fipsKey))
	require.NoError(t, err)

	blocks := []struct{ pt, ct string }{
		{"6bc1bee22e409f96e93d7e117393172a", "3ad77bb40d7a3660a89ecaf32466ef97"},
		{"ae2d8a571e03ac9c9eb76fac45af8e51", "f5d3d58503b9699de785895a96fdbaaf"},
		{"30c81c46a35ce411e5fbc1191a0a52ef", "43b1cd7f598ece23881b00e3ed030688"},
		{"f69f2445df4f9b17ad2b417be66c3710", "7b0c785e27e8ad3f8223207104725dd4"},
	}

	for _, b := range blocks {
		s := mustState(t, b.pt)
		require.NoError(t, EncryptState(&s, exp))
		assert.Equal(t, b.ct, hex.EncodeToString(s.Bytes()))

		require.NoError(t, DecryptState(&s, exp))
		assert.Equal(t, b.pt, hex.EncodeToString(s.Bytes()))
	}
}

func BenchmarkEncrypt128(b *testing.B) {
	c, err := NewCipher(make([]byte, Key128))
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, BlockSize)
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Encrypt(buf, buf)
	}
}

func BenchmarkExpandKey256(b *testing.B) {
	key := make([]byte, Key256)
	for i := 0; i < b.N; i++ {
		if _, err := ExpandKey(key); err != nil {
			b.Fatal(err)
		}
	}
}
