package gf

// RconLen is the number of round constants the key schedule can consume:
// AES-128 needs ten, the longer keys fewer.
const RconLen = 10

var rcon [RconLen]byte

func init() {
	rcon[0] = 0x01
	for i := 1; i < RconLen; i++ {
		rcon[i] = XTime(rcon[i-1])
	}
}

// Rcon returns the i-th round constant, x^i, for i in [0, RconLen).
func Rcon(i int) byte {
	return rcon[i]
}

// RconTable returns a copy of the round constant table.
func RconTable() [RconLen]byte {
	return rcon
}

// DynRcon computes the n-th round constant (1-based) directly as x^(n-1)
// through the power tables rather than by repeated doubling.
func DynRcon(n int) byte {
	return Pow(2, n-1)
}
