package collection

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Fingerprint derives the version string stored next to a collection from
// the JSON encoding of its seed.
type Fingerprint func(encodedSeed []byte) string

// LengthFingerprint is the encoded length as a decimal string. It only
// notices seed edits that change that length.
func LengthFingerprint(encodedSeed []byte) string {
	return strconv.Itoa(len(encodedSeed))
}

// SHA256Fingerprint is the hex SHA-256 digest of the encoded seed.
func SHA256Fingerprint(encodedSeed []byte) string {
	sum := sha256.Sum256(encodedSeed)
	return hex.EncodeToString(sum[:])
}

// FingerprintByName maps a config value to a Fingerprint. Unknown names fall
// back to LengthFingerprint and ok is false.
func FingerprintByName(name string) (f Fingerprint, ok bool) {
	switch name {
	case "", "length":
		return LengthFingerprint, true
	case "sha256":
		return SHA256Fingerprint, true
	default:
		return LengthFingerprint, false
	}
}
