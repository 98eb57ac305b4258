package rijndael

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// FIPS-197 Appendix B, round 1 of the 2b7e1516... / 3243f6a8... example.
const (
	round1Start   = "193de3bea0f4e22b9ac68d2ae9f84808"
	round1Sub     = "d42711aee0bf98f1b8b45de51e415230"
	round1Shift   = "d4bf5d30e0b452aeb84111f11e2798e5"
	round1Mix     = "046681e5e0cb199a48f8d37a2806264c"
	round1Key     = "a0fafe1788542cb123a339392a6c7605"
	round2Start   = "a49c7ff2689f352b6b5bea43026a5049"
	fipsKey       = "2b7e151628aed2a6abf7158809cf4f3c"
	fipsPlaintext = "3243f6a8885a308d313198a2e0370734"
)

func randomState(rng *rand.Rand) State {
	var s State
	rng.Read(s[:])
	return s
}

func TestSubBytes(t *testing.T) {
	s := mustState(t, round1Start)
	s.SubBytes()
	assert.Equal(t, mustState(t, round1Sub), s)

	s.InvSubBytes()
	assert.Equal(t, mustState(t, round1Start), s)
}

func TestShiftRows(t *testing.T) {
	s := mustState(t, round1Sub)
	s.ShiftRows()
	assert.Equal(t, mustState(t, round1Shift), s)

	s.InvShiftRows()
	assert.Equal(t, mustState(t, round1Sub), s)
}

func TestShiftRowsPositions(t *testing.T) {
	var s State
	for i := range s {
		s[i] = byte(i)
	}
	s.ShiftRows()

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := byte(row + 4*((col+row)%4))
			assert.Equal(t, want, s.At(row, col), "row %d col %d", row, col)
		}
	}

	// row 0 never moves
	assert.Equal(t, []byte{0, 4, 8, 12}, []byte{s.At(0, 0), s.At(0, 1), s.At(0, 2), s.At(0, 3)})
}

func TestShiftRowsInverseProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(197))
	for i := 0; i < 100; i++ {
		orig := randomState(rng)
		s := orig
		s.ShiftRows()
		s.InvShiftRows()
		assert.Equal(t, orig, s)

		s.InvShiftRows()
		s.ShiftRows()
		assert.Equal(t, orig, s)
	}
}

func TestMixColumnsKnownColumns(t *testing.T) {
	tests := []struct {
		name   string
		in     [4]byte
		expect [4]byte
	}{
		{"db135345", [4]byte{0xdb, 0x13, 0x53, 0x45}, [4]byte{0x8e, 0x4d, 0xa1, 0xbc}},
		{"f20a225c", [4]byte{0xf2, 0x0a, 0x22, 0x5c}, [4]byte{0x9f, 0xdc, 0x58, 0x9d}},
		{"01010101", [4]byte{0x01, 0x01, 0x01, 0x01}, [4]byte{0x01, 0x01, 0x01, 0x01}},
		{"c6c6c6c6", [4]byte{0xc6, 0xc6, 0xc6, 0xc6}, [4]byte{0xc6, 0xc6, 0xc6, 0xc6}},
		{"d4d4d4d5", [4]byte{0xd4, 0xd4, 0xd4, 0xd5}, [4]byte{0xd5, 0xd5, 0xd7, 0xd6}},
		{"2d26314c", [4]byte{0x2d, 0x26, 0x31, 0x4c}, [4]byte{0x4d, 0x7e, 0xbd, 0xf8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			for col := 0; col < 4; col++ {
				for row := 0; row < 4; row++ {
					s.Set(row, col, tt.in[row])
				}
			}

			s.MixColumns()
			for col := 0; col < 4; col++ {
				for row := 0; row < 4; row++ {
					assert.Equal(t, tt.expect[row], s.At(row, col))
				}
			}

			s.InvMixColumns()
			for col := 0; col < 4; col++ {
				for row := 0; row < 4; row++ {
					assert.Equal(t, tt.in[row], s.At(row, col))
				}
			}
		})
	}
}

func TestMixColumnsFIPSRound1(t *testing.T) {
	s := mustState(t, round1Shift)
	s.MixColumns()
	assert.Equal(t, mustState(t, round1Mix), s)
}

func TestMixColumnsInverseProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(0x11B))
	for i := 0; i < 100; i++ {
		orig := randomState(rng)
		s := orig
		s.MixColumns()
		s.InvMixColumns()
		assert.Equal(t, orig, s)
	}
}

func TestAddRoundKeyInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		orig := randomState(rng)
		rk := randomState(rng)

		s := orig
		s.AddRoundKey(&rk)
		s.AddRoundKey(&rk)
		assert.Equal(t, orig, s)
	}
}

func TestRoundFIPS197(t *testing.T) {
	s := mustState(t, round1Start)
	rk := mustState(t, round1Key)
	s.Round(&rk)
	assert.Equal(t, mustState(t, round2Start), s)
}

func TestInitialRoundKeyFIPS197(t *testing.T) {
	s := mustState(t, fipsPlaintext)
	rk := mustState(t, fipsKey)
	s.AddRoundKey(&rk)
	assert.Equal(t, mustState(t, round1Start), s)
}

func TestInvRoundUndoesRoundTail(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		orig := randomState(rng)
		rk := randomState(rng)

		// forward: Sub, Shift, Mix, AddRoundKey; then the head of the next
		// inverse round undoes Sub/Shift of the same forward round
		s := orig
		s.Round(&rk)
		s.AddRoundKey(&rk)
		s.InvMixColumns()
		s.InvShiftRows()
		s.InvSubBytes()
		assert.Equal(t, orig, s)

		var zero State
		s = orig
		s.FinalRound(&rk)
		s.AddRoundKey(&rk)
		s.InvFinalRound(&zero)
		assert.Equal(t, orig, s)
	}
}

func TestStateString(t *testing.T) {
	s := mustState(t, round1Start)
	assert.Equal(t, "[19a09ae9 3df4c6f8 e3e28d48 be2b2a08]", s.String())
}

func TestLoadStateRejectsWrongSize(t *testing.T) {
	_, err := LoadState(make([]byte, 15))
	assert.ErrorIs(t, err, ErrBlockSize)
	_, err = LoadState(make([]byte, 17))
	assert.ErrorIs(t, err, ErrBlockSize)
}
