package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainSuggestions prefixes fingerprints of evaluation output. The version
// suffix leaves room for changing the encoding later without colliding with
// old values.
const DomainSuggestions = "plantcare/suggestions/v1"

// HashWithDomain computes SHA256(domain + 0x00 + data) as lowercase hex.
// The null byte keeps the domain and data boundary unambiguous.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint hashes the canonical encoding of v under domain.
func Fingerprint(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", domain, err)
	}
	return HashWithDomain(domain, data), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when v is known to encode.
func MustFingerprint(domain string, v any) string {
	fp, err := Fingerprint(domain, v)
	if err != nil {
		panic(err)
	}
	return fp
}
