package rijndael

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// word returns w[i] of a schedule as a big-endian uint32, as FIPS-197 prints it.
func word(exp []byte, i int) uint32 {
	return binary.BigEndian.Uint32(exp[4*i : 4*i+4])
}

func TestExpandKeyFIPS197(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		size    int
		checked map[int]uint32
	}{
		{
			name: "A.1 128-bit",
			key:  "2b7e151628aed2a6abf7158809cf4f3c",
			size: 176,
			checked: map[int]uint32{
				3:  0x09cf4f3c,
				4:  0xa0fafe17,
				5:  0x88542cb1,
				43: 0xb6630ca6,
			},
		},
		{
			name: "A.2 192-bit",
			key:  "8e73b0f7da0e6452c810f32b809079e562f8ead2522c6b7b",
			size: 208,
			checked: map[int]uint32{
				6:  0xfe0c91f7,
				51: 0x01002202,
			},
		},
		{
			name: "A.3 256-bit",
			key:  "603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4",
			size: 240,
			checked: map[int]uint32{
				8:  0x9ba35411,
				59: 0x706c631e,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := mustHex(t, tt.key)
			exp, err := ExpandKey(key)
			require.NoError(t, err)
			require.Len(t, exp, tt.size)

			assert.Equal(t, key, exp[:len(key)], "schedule must start with the cipher key")
			for i, want := range tt.checked {
				assert.Equalf(t, want, word(exp, i), "w[%d]", i)
			}
		})
	}
}

func TestExpandKeyDeterministic(t *testing.T) {
	for _, n := range []int{Key128, Key192, Key256} {
		key := sequentialBytes(n)
		a, err := ExpandKey(key)
		require.NoError(t, err)
		b, err := ExpandKey(key)
		require.NoError(t, err)
		assert.Equal(t, a, b)

		size, err := ExpandedKeySize(n)
		require.NoError(t, err)
		assert.Len(t, a, size)
	}
}

func TestExpandKeyDoesNotAliasInput(t *testing.T) {
	key := sequentialBytes(Key128)
	exp, err := ExpandKey(key)
	require.NoError(t, err)

	exp[0] ^= 0xFF
	assert.Equal(t, byte(0), key[0])
}

func TestExpandKeyRejectsBadLengths(t *testing.T) {
	_, err := ExpandKey(nil)
	assert.ErrorIs(t, err, ErrMissingKey)

	for _, n := range []int{1, 15, 17, 20, 23, 25, 31, 33, 64} {
		_, err := ExpandKey(make([]byte, n))
		assert.ErrorIs(t, err, ErrKeySize, "length %d", n)
	}
}

func TestRounds(t *testing.T) {
	tests := []struct {
		length int
		rounds int
	}{
		{176, 10},
		{208, 12},
		{240, 14},
	}
	for _, tt := range tests {
		r, err := Rounds(make([]byte, tt.length))
		require.NoError(t, err)
		assert.Equal(t, tt.rounds, r)
	}

	for _, n := range []int{0, 16, 175, 177, 224, 256} {
		_, err := Rounds(make([]byte, n))
		assert.ErrorIs(t, err, ErrScheduleSize, "length %d", n)
	}
}

func TestRoundKeyLayout(t *testing.T) {
	exp, err := ExpandKey(mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	require.NoError(t, err)

	rk, err := RoundKey(exp, 1)
	require.NoError(t, err)

	// w[4] = a0fafe17 is column 0 of round key 1
	assert.Equal(t, byte(0xa0), rk.At(0, 0))
	assert.Equal(t, byte(0xfa), rk.At(1, 0))
	assert.Equal(t, byte(0xfe), rk.At(2, 0))
	assert.Equal(t, byte(0x17), rk.At(3, 0))
	// w[5] = 88542cb1 is column 1
	assert.Equal(t, byte(0x88), rk.At(0, 1))
	assert.Equal(t, byte(0xb1), rk.At(3, 1))

	_, err = RoundKey(exp, 11)
	assert.Error(t, err)
	_, err = RoundKey(exp, -1)
	assert.Error(t, err)
	_, err = RoundKey(exp[:100], 0)
	assert.ErrorIs(t, err, ErrScheduleSize)
}

func TestPadKey(t *testing.T) {
	tests := []struct {
		name    string
		keyLen  int
		wantLen int
	}{
		{"1 byte pads to 128-bit", 1, 16},
		{"10 bytes pads to 128-bit", 10, 16},
		{"16 bytes unchanged", 16, 16},
		{"17 bytes pads to 192-bit", 17, 24},
		{"24 bytes unchanged", 24, 24},
		{"25 bytes pads to 256-bit", 25, 32},
		{"32 bytes unchanged", 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := make([]byte, tt.keyLen)
			for i := range key {
				key[i] = 0xA0
			}

			padded, err := PadKey(key)
			require.NoError(t, err)
			require.Len(t, padded, tt.wantLen)

			assert.Equal(t, key, padded[:tt.keyLen])
			for i := tt.keyLen; i < tt.wantLen; i++ {
				assert.Equal(t, byte(i), padded[i], "pad byte %d", i)
			}

			_, err = ExpandKey(padded)
			assert.NoError(t, err)
		})
	}
}

func TestPadKeyExample(t *testing.T) {
	padded, err := PadKey(mustHex(t, "00112233445566778899"))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "00112233445566778899 0a0b0c0d0e0f"), padded)
}

func TestPadKeyRejects(t *testing.T) {
	_, err := PadKey(nil)
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = PadKey(make([]byte, 33))
	assert.ErrorIs(t, err, ErrKeySize)
}

func TestPadKeyCopies(t *testing.T) {
	key := sequentialBytes(Key128)
	padded, err := PadKey(key)
	require.NoError(t, err)
	padded[0] = 0xFF
	assert.Equal(t, byte(0), key[0])
}
