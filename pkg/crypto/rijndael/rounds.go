package rijndael

import "github.com/Davincible/rijndael/pkg/crypto/gf"

// Rows of the circulant MixColumns matrices. Output row i uses the row
// rotated right by i.
var (
	mds    = [4]byte{0x02, 0x03, 0x01, 0x01}
	invMDS = [4]byte{0x0E, 0x0B, 0x0D, 0x09}
)

// AddRoundKey XORs the round key into the state. It is its own inverse.
func (s *State) AddRoundKey(rk *State) {
	for i := range s {
		s[i] ^= rk[i]
	}
}

// SubBytes replaces every byte with its S-box entry.
func (s *State) SubBytes() {
	for i := range s {
		s[i] = sBox[s[i]]
	}
}

// InvSubBytes replaces every byte with its inverse S-box entry.
func (s *State) InvSubBytes() {
	for i := range s {
		s[i] = invSBox[s[i]]
	}
}

// ShiftRows rotates row r left by r positions.
func (s *State) ShiftRows() {
	for row := 1; row < 4; row++ {
		s.rotateRow(row, row)
	}
}

// InvShiftRows rotates row r right by r positions.
func (s *State) InvShiftRows() {
	for row := 1; row < 4; row++ {
		s.rotateRow(row, 4-row)
	}
}

// rotateRow rotates one row left by n positions.
func (s *State) rotateRow(row, n int) {
	var tmp [4]byte
	for col := 0; col < 4; col++ {
		tmp[col] = s.At(row, (col+n)%4)
	}
	for col := 0; col < 4; col++ {
		s.Set(row, col, tmp[col])
	}
}

// MixColumns multiplies each column by the circulant matrix [2 3 1 1].
func (s *State) MixColumns() {
	s.mixColumns(&mds)
}

// InvMixColumns multiplies each column by the circulant matrix [14 11 13 9].
func (s *State) InvMixColumns() {
	s.mixColumns(&invMDS)
}

func (s *State) mixColumns(m *[4]byte) {
	for col := 0; col < 4; col++ {
		a := [4]byte{s.At(0, col), s.At(1, col), s.At(2, col), s.At(3, col)}
		for i := 0; i < 4; i++ {
			s.Set(i, col,
				gf.GMul(m[(4-i)%4], a[0])^
					gf.GMul(m[(5-i)%4], a[1])^
					gf.GMul(m[(6-i)%4], a[2])^
					gf.GMul(m[(7-i)%4], a[3]))
		}
	}
}

// Round is one full forward round, used for rounds 1 through N-1.
func (s *State) Round(rk *State) {
	s.SubBytes()
	s.ShiftRows()
	s.MixColumns()
	s.AddRoundKey(rk)
}

// FinalRound is round N, which skips MixColumns.
func (s *State) FinalRound(rk *State) {
	s.SubBytes()
	s.ShiftRows()
	s.AddRoundKey(rk)
}

// InvRound is one decryption round, applied for rounds N-1 down to 1.
// AddRoundKey comes before InvMixColumns: the pair undoes the tail of the
// forward round with the same index.
func (s *State) InvRound(rk *State) {
	s.InvShiftRows()
	s.InvSubBytes()
	s.AddRoundKey(rk)
	s.InvMixColumns()
}

// InvFinalRound finishes decryption with round key 0.
func (s *State) InvFinalRound(rk *State) {
	s.InvShiftRows()
	s.InvSubBytes()
	s.AddRoundKey(rk)
}
