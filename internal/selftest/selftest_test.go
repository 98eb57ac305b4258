package selftest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllChecksPass(t *testing.T) {
	results := Run()
	require.Len(t, results, len(Checks()))

	for _, r := range results {
		assert.True(t, r.Passed, "%s: %s", r.Name, r.Error)
		assert.Empty(t, r.Error, r.Name)
	}
	assert.Zero(t, Failed(results))
}

func TestCheckNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Checks() {
		assert.False(t, seen[c.Name], "duplicate check %q", c.Name)
		seen[c.Name] = true
	}
}

func TestFailedCountsFailures(t *testing.T) {
	results := []Result{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false, Error: errors.New("boom").Error()},
		{Name: "c", Passed: false},
	}
	assert.Equal(t, 2, Failed(results))
}

func TestVectorCheckDetectsMismatch(t *testing.T) {
	bad := vectors[0]
	bad.ciphertext = "00000000000000000000000000000000"

	err := checkVector(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encrypt: got 69c4e0d8")
}
