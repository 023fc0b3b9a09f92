package hazmat

import (
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// PurposeHMAC and PurposeEncryption are the domain-separating info strings DeriveKey uses
	// to split one seed into the EMM engine's HMAC and encryption sub-keys.
	PurposeHMAC       = "hmac"
	PurposeEncryption = "encryption"
)

// DeriveKey derives a sub-key from key for the given purpose using HKDF-SHA512 with no salt. The
// derived key is the same length as key, so a seed chosen as a valid AES key size (16, 24, or 32
// bytes) yields sub-keys that are themselves valid AES keys.
func DeriveKey(key []byte, purpose string) []byte {
	r := hkdf.New(newSHA512, key, nil, []byte(purpose))
	out := make([]byte, len(key))
	if _, err := io.ReadFull(r, out); err != nil {
		panic(err) // hkdf only errors past its output-length limit, which len(key) never reaches
	}
	return out
}

// PasswordKDF derives a keyLen-byte symmetric key from a human-memorable password using
// PBKDF2-HMAC-SHA256 with 100,000 iterations. salt should be unique per password; reusing a
// constant salt across users lets an attacker amortize a single lookup table across all of them.
//
// This is a supplemental key-setup path alongside the random-seed Setup every scheme uses; no
// scheme calls it directly.
func PasswordKDF(password string, salt []byte, keyLen int) []byte {
	return pbkdf2.Key([]byte(password), salt, 100_000, keyLen, newSHA256)
}
