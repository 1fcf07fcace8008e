package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintDeterminism(t *testing.T) {
	v := map[string]any{"plantId": 1, "titles": []any{"a", "b"}}

	fp1, err := Fingerprint(DomainSuggestions, v)
	require.NoError(t, err)
	fp2, err := Fingerprint(DomainSuggestions, v)
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2)
	assert.Len(t, fp1, 64, "SHA-256 hex is 64 characters")
}

func TestFingerprintKeyOrderIrrelevant(t *testing.T) {
	a := MustFingerprint(DomainSuggestions, map[string]any{"x": 1, "y": 2})
	b := MustFingerprint(DomainSuggestions, map[string]any{"y": 2, "x": 1})
	assert.Equal(t, a, b)
}

func TestFingerprintChangesWithContent(t *testing.T) {
	a := MustFingerprint(DomainSuggestions, []any{"a"})
	b := MustFingerprint(DomainSuggestions, []any{"b"})
	assert.NotEqual(t, a, b)
}

func TestDomainSeparation(t *testing.T) {
	v := map[string]any{"k": "v"}
	assert.NotEqual(t,
		MustFingerprint(DomainSuggestions, v),
		MustFingerprint("plantcare/other/v1", v),
	)
}

func TestHashWithDomainNullSeparator(t *testing.T) {
	data := []byte(`{"k":"v"}`)

	h := sha256.Sum256(append([]byte("plantcare/suggestions/v1\x00"), data...))

	assert.Equal(t, hex.EncodeToString(h[:]), HashWithDomain(DomainSuggestions, data))
}

func TestFingerprintError(t *testing.T) {
	_, err := Fingerprint(DomainSuggestions, 1.25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), DomainSuggestions)

	assert.Panics(t, func() { MustFingerprint(DomainSuggestions, 1.25) })
}
