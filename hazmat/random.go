package hazmat

import "crypto/rand"

// SecureRandom fills buf with cryptographically secure random bytes, as used for IVs and fresh
// setup seeds.
func SecureRandom(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}
