package gf

import (
	"fmt"
	"math/bits"
)

// Polynomials over GF(2) packed into a uint, bit i holding the coefficient of x^i.

// Degree returns the degree of p, or -1 for the zero polynomial.
func Degree(p uint) int {
	return bits.Len(p) - 1
}

// CarrylessMul multiplies two polynomials without reduction.
func CarrylessMul(a, b uint) uint {
	var r uint
	for shift := 0; b != 0; shift++ {
		if b&1 == 1 {
			r ^= a << shift
		}
		b >>= 1
	}
	return r
}

// PolyDivMod divides a by b and returns quotient and remainder.
func PolyDivMod(a, b uint) (q, r uint, err error) {
	if b == 0 {
		return 0, 0, fmt.Errorf("polynomial division by zero")
	}
	db := Degree(b)
	r = a
	for d := Degree(r); d >= db; d = Degree(r) {
		shift := d - db
		q |= 1 << shift
		r ^= b << shift
	}
	return q, r, nil
}
