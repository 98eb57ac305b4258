package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"
	"sync"
)

// KeyMaterial guards a cipher key or key schedule that is shared between
// goroutines and wiped when no longer needed.
type KeyMaterial struct {
	data []byte
	mu   sync.RWMutex
}

func FromBytes(data []byte) *KeyMaterial {
	km := &KeyMaterial{
		data: make([]byte, len(data)),
	}
	copy(km.data, data)
	return km
}

// With calls fn with the guarded bytes without copying them. fn must not
// retain the slice.
func (km *KeyMaterial) With(fn func([]byte) error) error {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return fn(km.data)
}

// Len reports the size of the guarded bytes, 0 after Destroy.
func (km *KeyMaterial) Len() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.data)
}

func (km *KeyMaterial) Destroy() {
	km.mu.Lock()
	defer km.mu.Unlock()

	Zero(km.data)
	km.data = nil
}

func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}

func RandomBytes(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid length: %d", size)
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return b, nil
}
