package gf

// The inverses below do not touch the log/antilog tables and exist to
// cross-check GInv. They are far slower and are not used on the cipher path.

// EuclidInverse finds the inverse of a with the extended Euclidean algorithm
// over GF(2)[x]: the higher-degree remainder is cancelled by XORing in the
// other one aligned by the difference of their degrees, while the Bézout
// coefficients follow along. Zero maps to zero.
func EuclidInverse(a byte) byte {
	if a == 0 {
		return 0
	}

	// invariant: u1*a == u3 and v1*a == v3 (mod Poly)
	var u1, u3 uint = 0, Poly
	var v1, v3 uint = 1, uint(a)

	for u3 != 0 && v3 != 0 {
		if Degree(u3) < Degree(v3) {
			u1, v1 = v1, u1
			u3, v3 = v3, u3
		}
		shift := Degree(u3) - Degree(v3)
		u1 ^= v1 << shift
		u3 ^= v3 << shift
	}
	if u3 == 0 {
		u1 = v1
	}

	if u1 >= 0x100 {
		_, u1, _ = PolyDivMod(u1, Poly)
	}
	return byte(u1)
}

// ItohTsujiiInverse computes a^-1 as a^(r-1) * (a^r)^-1 with r = 255.
// a^r lies in GF(2), so its inverse is its own low bit.
func ItohTsujiiInverse(a byte) byte {
	ar1 := a
	for i := 1; i < Order-1; i++ {
		ar1 = Mul(ar1, a)
	}
	ar := Mul(ar1, a)
	return (ar & 1) * ar1
}
