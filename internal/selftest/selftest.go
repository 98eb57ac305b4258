// Package selftest runs the field and cipher checks behind `rijndael selftest`.
package selftest

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Davincible/rijndael/pkg/crypto/gf"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
)

type Check struct {
	Name string
	Run  func() error
}

type Result struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

type vector struct {
	name       string
	key        string
	plaintext  string
	ciphertext string
}

var vectors = []vector{
	{
		name:       "AES-128",
		key:        "000102030405060708090a0b0c0d0e0f",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "69c4e0d86a7b0430d8cdb78070b4c55a",
	},
	{
		name:       "AES-192",
		key:        "000102030405060708090a0b0c0d0e0f1011121314151617",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "dda97ca4864cdfe06eaf70a0ec0d7191",
	},
	{
		name:       "AES-256",
		key:        "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "8ea2b7ca516745bfeafc49904b496089",
	},
	{
		name:       "AES-128 zero key",
		key:        "00000000000000000000000000000000",
		plaintext:  "00000000000000000000000000000000",
		ciphertext: "66e94bd4ef8a2c3b884cfa59ca342b2e",
	},
}

// Checks returns every check in the order they run.
func Checks() []Check {
	checks := []Check{
		{"field multiply tables agree with bit loop", checkMultiply},
		{"field inverses", checkInverse},
		{"round constants", checkRcon},
		{"s-box known entries", checkSBoxEntries},
		{"s-box is a bijection", checkSBoxBijection},
		{"round steps invert", checkRoundSteps},
		{"key expansion word 43", checkKeyExpansion},
		{"expanded key takes precedence", checkPrecedence},
		{"round trip with random keys", checkRoundTrip},
		{"invalid input is rejected", checkRejects},
	}
	for _, v := range vectors {
		v := v
		checks = append(checks, Check{Name: "known answer " + v.name, Run: func() error { return checkVector(v) }})
	}
	return checks
}

// Run executes all checks. It never stops early so one failure does not
// hide another.
func Run() []Result {
	checks := Checks()
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		start := time.Now()
		err := c.Run()
		r := Result{Name: c.Name, Passed: err == nil, Duration: time.Since(start)}
		if err != nil {
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results
}

func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}

func checkMultiply() error {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			if x, y := gf.Mul(byte(a), byte(b)), gf.GMul(byte(a), byte(b)); x != y {
				return fmt.Errorf("%02x*%02x: bit loop %02x, tables %02x", a, b, x, y)
			}
		}
	}
	if got := gf.Mul(0x57, 0x83); got != 0xc1 {
		return fmt.Errorf("57*83 = %02x, want c1", got)
	}
	return nil
}

func checkInverse() error {
	for a := 1; a < 256; a++ {
		inv := gf.GInv(byte(a))
		if gf.GMul(byte(a), inv) != 1 {
			return fmt.Errorf("%02x * %02x != 1", a, inv)
		}
		if e := gf.EuclidInverse(byte(a)); e != inv {
			return fmt.Errorf("inverse of %02x: tables %02x, euclid %02x", a, inv, e)
		}
		if it := gf.ItohTsujiiInverse(byte(a)); it != inv {
			return fmt.Errorf("inverse of %02x: tables %02x, itoh-tsujii %02x", a, inv, it)
		}
	}
	if gf.GInv(0) != 0 || gf.EuclidInverse(0) != 0 || gf.ItohTsujiiInverse(0) != 0 {
		return errors.New("inverse of 0 must be 0")
	}
	return nil
}

func checkRcon() error {
	want := [gf.RconLen]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}
	if got := gf.RconTable(); got != want {
		return fmt.Errorf("rcon table %x, want %x", got, want)
	}
	for n := 1; n <= gf.RconLen; n++ {
		if gf.DynRcon(n) != gf.Rcon(n-1) {
			return fmt.Errorf("rcon(%d): computed %02x, table %02x", n, gf.DynRcon(n), gf.Rcon(n-1))
		}
	}
	return nil
}

func checkSBoxEntries() error {
	known := map[byte]byte{0x00: 0x63, 0x01: 0x7c, 0x53: 0xed, 0xff: 0x16}
	for in, want := range known {
		if got := rijndael.Sub(in); got != want {
			return fmt.Errorf("S(%02x) = %02x, want %02x", in, got, want)
		}
		if got := rijndael.InvSub(want); got != in {
			return fmt.Errorf("InvS(%02x) = %02x, want %02x", want, got, in)
		}
	}
	return nil
}

func checkSBoxBijection() error {
	var seen [256]bool
	for x := 0; x < 256; x++ {
		s := rijndael.Sub(byte(x))
		if seen[s] {
			return fmt.Errorf("S-box value %02x repeats", s)
		}
		seen[s] = true
		if rijndael.InvSub(s) != byte(x) {
			return fmt.Errorf("InvS(S(%02x)) != %02x", x, x)
		}
	}
	return nil
}

func checkRoundSteps() error {
	var s rijndael.State
	if _, err := rand.Read(s[:]); err != nil {
		return err
	}
	orig := s

	steps := []struct {
		name    string
		forward func()
		inverse func()
	}{
		{"SubBytes", s.SubBytes, s.InvSubBytes},
		{"ShiftRows", s.ShiftRows, s.InvShiftRows},
		{"MixColumns", s.MixColumns, s.InvMixColumns},
	}
	for _, st := range steps {
		st.forward()
		st.inverse()
		if s != orig {
			return fmt.Errorf("%s not undone by its inverse", st.name)
		}
	}
	return nil
}

func checkKeyExpansion() error {
	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	exp, err := rijndael.ExpandKey(key)
	if err != nil {
		return err
	}
	want := []byte{0xb6, 0x63, 0x0c, 0xa6}
	if got := exp[len(exp)-4:]; !bytes.Equal(got, want) {
		return fmt.Errorf("w[43] = %x, want %x", got, want)
	}
	return nil
}

func checkPrecedence() error {
	v := vectors[0]
	key, _ := hex.DecodeString(v.key)
	pt, _ := hex.DecodeString(v.plaintext)
	want, _ := hex.DecodeString(v.ciphertext)

	exp, err := rijndael.ExpandKey(key)
	if err != nil {
		return err
	}
	got, err := rijndael.Encrypt(pt, make([]byte, rijndael.Key256), exp)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		return fmt.Errorf("supplied key overrode the expanded key: got %x", got)
	}
	return nil
}

func checkRoundTrip() error {
	for _, size := range []int{rijndael.Key128, rijndael.Key192, rijndael.Key256} {
		for i := 0; i < 32; i++ {
			key := make([]byte, size)
			block := make([]byte, rijndael.BlockSize)
			if _, err := rand.Read(key); err != nil {
				return err
			}
			if _, err := rand.Read(block); err != nil {
				return err
			}

			ct, err := rijndael.Encrypt(block, key, nil)
			if err != nil {
				return err
			}
			pt, err := rijndael.Decrypt(ct, key, nil)
			if err != nil {
				return err
			}
			if !bytes.Equal(pt, block) {
				return fmt.Errorf("%d-bit key %x: round trip of %x gave %x", size*8, key, block, pt)
			}
		}
	}
	return nil
}

func checkRejects() error {
	block := make([]byte, rijndael.BlockSize)
	cases := []struct {
		name  string
		err   error
		check func() error
	}{
		{"no key", rijndael.ErrMissingKey, func() error { _, err := rijndael.Encrypt(block, nil, nil); return err }},
		{"20-byte key", rijndael.ErrKeySize, func() error { _, err := rijndael.Encrypt(block, make([]byte, 20), nil); return err }},
		{"100-byte schedule", rijndael.ErrScheduleSize, func() error { _, err := rijndael.Decrypt(block, nil, make([]byte, 100)); return err }},
		{"15-byte block", rijndael.ErrBlockSize, func() error { _, err := rijndael.Encrypt(block[:15], make([]byte, 16), nil); return err }},
	}
	for _, c := range cases {
		if err := c.check(); !errors.Is(err, c.err) {
			return fmt.Errorf("%s: got %v, want %v", c.name, err, c.err)
		}
	}
	return nil
}

func checkVector(v vector) error {
	key, _ := hex.DecodeString(v.key)
	pt, _ := hex.DecodeString(v.plaintext)
	want, _ := hex.DecodeString(v.ciphertext)

	ct, err := rijndael.Encrypt(pt, key, nil)
	if err != nil {
		return err
	}
	if !bytes.Equal(ct, want) {
		return fmt.Errorf("encrypt: got %x, want %x", ct, want)
	}

	back, err := rijndael.Decrypt(ct, key, nil)
	if err != nil {
		return err
	}
	if !bytes.Equal(back, pt) {
		return fmt.Errorf("decrypt: got %x, want %x", back, pt)
	}
	return nil
}
