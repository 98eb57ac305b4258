package secure

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshot copies the guarded bytes out for comparison.
func snapshot(t *testing.T, km *KeyMaterial) []byte {
	t.Helper()
	var out []byte
	require.NoError(t, km.With(func(b []byte) error {
		out = append(out, b...)
		return nil
	}))
	return out
}

func TestKeyMaterial(t *testing.T) {
	key := []byte("0123456789abcdef")
	km := FromBytes(key)
	assert.Equal(t, len(key), km.Len())
	assert.Equal(t, key, snapshot(t, km))

	key[0] = 0xFF
	assert.NotEqual(t, key, snapshot(t, km), "FromBytes must copy its input")

	km.Destroy()
	assert.Equal(t, 0, km.Len())
}

func TestKeyMaterialWith(t *testing.T) {
	km := FromBytes([]byte{1, 2, 3, 4})

	var seen []byte
	err := km.With(func(b []byte) error {
		seen = append(seen, b...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, seen)

	sentinel := errors.New("boom")
	assert.ErrorIs(t, km.With(func([]byte) error { return sentinel }), sentinel)
}

func TestKeyMaterialConcurrentReads(t *testing.T) {
	km := FromBytes([]byte("concurrent key material!"))
	want := snapshot(t, km)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := km.With(func(b []byte) error {
				assert.Equal(t, want, b)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestZero(t *testing.T) {
	data := []byte("expanded key bytes")
	Zero(data)
	for _, b := range data {
		assert.Equal(t, byte(0), b)
	}
	Zero(nil)
}

func TestConstantTimeCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []byte
		expected bool
	}{
		{"Equal", []byte("66e94bd4ef8a2c3b"), []byte("66e94bd4ef8a2c3b"), true},
		{"Different", []byte("66e94bd4ef8a2c3b"), []byte("66e94bd4ef8a2c3c"), false},
		{"Different lengths", []byte("short"), []byte("longer"), false},
		{"Both empty", []byte{}, []byte{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConstantTimeCompare(tt.a, tt.b))
		})
	}
}

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := RandomBytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = RandomBytes(0)
	assert.Error(t, err)
}
