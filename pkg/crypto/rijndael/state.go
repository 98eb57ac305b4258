package rijndael

import (
	"encoding/hex"
	"fmt"
)

// State is the 4x4 byte matrix a block is processed in, stored column by
// column: the byte at (row, col) lives at index row + 4*col.
type State [BlockSize]byte

// LoadState maps a 16-byte block into a State. Input byte in[r + 4c] lands at
// row r, column c, so successive input bytes fill the matrix column-wise.
func LoadState(block []byte) (State, error) {
	var s State
	if len(block) != BlockSize {
		return s, fmt.Errorf("%w: got %d bytes", ErrBlockSize, len(block))
	}
	s.load(block)
	return s, nil
}

func (s *State) load(block []byte) {
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			s.Set(row, col, block[row+4*col])
		}
	}
}

func (s *State) store(out []byte) {
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row+4*col] = s.At(row, col)
		}
	}
}

// Bytes maps the state back to linear byte order.
func (s *State) Bytes() []byte {
	out := make([]byte, BlockSize)
	s.store(out)
	return out
}

// At returns the byte at (row, col).
func (s *State) At(row, col int) byte {
	return s[row+4*col]
}

// Set stores v at (row, col).
func (s *State) Set(row, col int, v byte) {
	s[row+4*col] = v
}

// String renders the state row by row, the way FIPS-197 prints it.
func (s *State) String() string {
	var rows [4]string
	for row := 0; row < 4; row++ {
		r := [4]byte{s.At(row, 0), s.At(row, 1), s.At(row, 2), s.At(row, 3)}
		rows[row] = hex.EncodeToString(r[:])
	}
	return fmt.Sprintf("[%s %s %s %s]", rows[0], rows[1], rows[2], rows[3])
}

// RoundKey extracts the round key for the given round from an expanded key.
// Word c of the round key (bytes 4c..4c+3 of its 16-byte slice of the
// schedule) becomes column c of the returned state.
func RoundKey(expandedKey []byte, round int) (State, error) {
	var rk State
	rounds, err := Rounds(expandedKey)
	if err != nil {
		return rk, err
	}
	if round < 0 || round > rounds {
		return rk, fmt.Errorf("round %d out of range [0, %d]", round, rounds)
	}
	rk.load(expandedKey[round*BlockSize : (round+1)*BlockSize])
	return rk, nil
}

// roundKeys lays out every round key of a validated schedule.
func roundKeys(expandedKey []byte, rounds int) []State {
	rks := make([]State, rounds+1)
	for r := range rks {
		rks[r].load(expandedKey[r*BlockSize : (r+1)*BlockSize])
	}
	return rks
}
