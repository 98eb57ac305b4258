package gf

import "fmt"

// Generator is the primitive element used to build the log/antilog tables.
// 2 is not a generator of the Rijndael field's multiplicative group; 3 is.
const Generator = 3

// antilog[i] = Generator^i for i in [0, 255); log is its inverse on the
// 255 nonzero elements. log[0] is unused and left at 0.
var (
	antilog [Order]byte
	log     [256]byte
)

func init() {
	x := byte(1)
	for i := 0; i < Order; i++ {
		antilog[i] = x
		log[x] = byte(i)
		x = Mul(x, Generator)
	}
}

// Log returns the discrete logarithm of a to base Generator. Log(0) is
// undefined and reported as 0.
func Log(a byte) byte {
	return log[a]
}

// Antilog returns Generator^i.
func Antilog(i int) byte {
	return antilog[mod255(i)]
}

// GMul multiplies a and b through the log/antilog tables.
func GMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return antilog[(int(log[a])+int(log[b]))%Order]
}

// GInv returns the multiplicative inverse of a. Zero has no inverse and
// maps to zero, which is also what the S-box construction expects.
func GInv(a byte) byte {
	if a == 0 {
		return 0
	}
	return antilog[(Order-int(log[a]))%Order]
}

// GDiv returns a / b.
func GDiv(a, b byte) (byte, error) {
	if b == 0 {
		return 0, fmt.Errorf("division by zero in GF(2^8)")
	}
	if a == 0 {
		return 0, nil
	}
	return antilog[mod255(int(log[a])-int(log[b]))], nil
}

// Pow raises a to the n-th power. Pow(a, 0) is 1 for every a, including 0.
// Negative n gives powers of the inverse.
func Pow(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	// reduce n first so the product stays below 255*255
	return antilog[mod255(int(log[a])*mod255(n))]
}

func mod255(i int) int {
	i %= Order
	if i < 0 {
		i += Order
	}
	return i
}
