package rijndael

import (
	"math/bits"

	"github.com/Davincible/rijndael/pkg/crypto/gf"
)

// affineConst is the constant added by the S-box affine transform, and the
// image of 0.
const affineConst = 0x63

var (
	sBox    [256]byte
	invSBox [256]byte
)

func init() {
	// 0 has no inverse; the affine transform of 0 is the constant itself.
	sBox[0] = affineConst

	// walk the multiplicative group in generator order, 1, 3, 5, 15, ...
	p := byte(1)
	for {
		sBox[p] = affine(gf.GInv(p))
		p = gf.Mul(p, gf.Generator)
		if p == 1 {
			break
		}
	}

	for i := 0; i < 256; i++ {
		invSBox[sBox[i]] = byte(i)
	}
}

func affine(q byte) byte {
	return q ^
		bits.RotateLeft8(q, 1) ^
		bits.RotateLeft8(q, 2) ^
		bits.RotateLeft8(q, 3) ^
		bits.RotateLeft8(q, 4) ^
		affineConst
}

// Sub substitutes b through the forward S-box.
func Sub(b byte) byte {
	return sBox[b]
}

// InvSub substitutes b through the inverse S-box.
func InvSub(b byte) byte {
	return invSBox[b]
}

// SBox returns a copy of the forward S-box.
func SBox() [256]byte {
	return sBox
}

// InvSBox returns a copy of the inverse S-box.
func InvSBox() [256]byte {
	return invSBox
}
