// Package gf implements arithmetic in the Rijndael field GF(2^8), the finite
// field of 256 elements with reducing polynomial x^8 + x^4 + x^3 + x + 1 (0x11B).
//
// Two multiplication paths are provided: the bit-loop Mul, which needs no
// state, and the table-driven GMul/GInv built from log/antilog tables at
// package initialisation. Both must agree for every pair of operands.
package gf

const (
	// Poly is the Rijndael reducing polynomial x^8 + x^4 + x^3 + x + 1
	Poly = 0x11B

	// reduce is Poly without the x^8 term, XORed in after a carry out of bit 7
	reduce = 0x1B

	// Order is the size of the multiplicative group
	Order = 255
)

// Add adds two field elements. Subtraction is the same operation.
func Add(a, b byte) byte {
	return a ^ b
}

// Mul multiplies a and b modulo Poly with the double-and-reduce loop:
// for each of the 8 bits of b, accumulate a if the low bit is set, then
// double a (reducing on carry) and shift b right.
func Mul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 == 1 {
			p ^= a
		}
		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			a ^= reduce
		}
		b >>= 1
	}
	return p
}

// XTime multiplies a by x (the element 2).
func XTime(a byte) byte {
	if a&0x80 == 0 {
		return a << 1
	}
	return (a << 1) ^ reduce
}
