// Package emm implements the Encrypted Multi-Map engine every scheme in this module composes
// with a cover algorithm. It binds a scheme-chosen cover's canonical byte encoding to an
// HMAC-SHA512 label and an AES-CBC-PKCS7 ciphertext: label collisions within one cover's chain
// are resolved by appending an incrementing index byte to the HMAC token before hashing, so a
// single cover's payloads can be probed without keeping any per-label chain-length side table.
package emm

import (
	"fmt"

	"github.com/cloudsecuritygroup/ers/hazmat"
)

// Engine holds no domain-specific state of its own; every scheme embeds one and supplies the
// plaintext multimap (already expanded to cover labels) to BuildIndex.
type Engine struct{}

// Setup returns a fresh securityParameter-byte seed. The two sub-keys BuildIndex and Trapdoor
// derive from it (HMAC and encryption) are as long as the seed itself, so securityParameter
// should be 16, 24, or 32 to yield valid AES key sizes.
func (Engine) Setup(securityParameter int) ([]byte, error) {
	key := make([]byte, securityParameter)
	if err := hazmat.SecureRandom(key); err != nil {
		return nil, fmt.Errorf("emm: generating setup key: %w", err)
	}
	return key, nil
}

// BuildIndex encrypts a plaintext multimap (label -> ordered payloads) into an encrypted index
// (hash -> ciphertext). Within one label's chain, the i-th payload's lookup key is
// Hash(token || byte(i)), where token = HMAC(hmac_key, label); search recovers a chain by
// probing i = 0, 1, ... until the first miss.
func (e Engine) BuildIndex(key []byte, plaintextMM map[string][][]byte) (map[string][]byte, error) {
	hmacKey := hazmat.DeriveKey(key, hazmat.PurposeHMAC)
	encKey := hazmat.DeriveKey(key, hazmat.PurposeEncryption)

	encryptedDB := make(map[string][]byte)
	for label, values := range plaintextMM {
		token := hazmat.HMACSum(hmacKey, []byte(label))
		for i, value := range values {
			if i > 255 {
				return nil, fmt.Errorf("emm: label chain longer than 256 entries")
			}
			ctLabel := hazmat.Hash(append(append([]byte{}, token...), byte(i)))
			ctValue, err := hazmat.SymmetricEncrypt(encKey, value)
			if err != nil {
				return nil, fmt.Errorf("emm: encrypting chain entry: %w", err)
			}
			encryptedDB[string(ctLabel)] = ctValue
		}
	}
	return encryptedDB, nil
}

// Trapdoor returns the HMAC token a search probes an encrypted index with, for the given
// canonical label bytes.
func (e Engine) Trapdoor(key, label []byte) []byte {
	hmacKey := hazmat.DeriveKey(key, hazmat.PurposeHMAC)
	return hazmat.HMACSum(hmacKey, label)
}

// Search probes encryptedDB at Hash(token || byte(0)), Hash(token || byte(1)), ... and returns
// every ciphertext found, stopping at the first miss. A miss here is the ordinary loop
// termination signal, not an error.
func (e Engine) Search(token []byte, encryptedDB map[string][]byte) [][]byte {
	var results [][]byte
	for i := 0; ; i++ {
		if i > 255 {
			break
		}
		ctLabel := hazmat.Hash(append(append([]byte{}, token...), byte(i)))
		value, ok := encryptedDB[string(ctLabel)]
		if !ok {
			break
		}
		results = append(results, value)
	}
	return results
}

// Resolve decrypts every ciphertext in results under key's derived encryption sub-key.
func (e Engine) Resolve(key []byte, results [][]byte) ([][]byte, error) {
	encKey := hazmat.DeriveKey(key, hazmat.PurposeEncryption)
	plaintexts := make([][]byte, 0, len(results))
	for _, ct := range results {
		pt, err := hazmat.SymmetricDecrypt(encKey, ct)
		if err != nil {
			return nil, fmt.Errorf("emm: resolving ciphertext: %w", err)
		}
		plaintexts = append(plaintexts, pt)
	}
	return plaintexts, nil
}
