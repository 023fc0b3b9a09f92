package hazmat_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/hazmat"
)

func TestHash(t *testing.T) {
	sum := hazmat.Hash([]byte("hello"))
	if got, want := len(sum), 64; got != want {
		t.Errorf("len(Hash()) = %d, want %d", got, want)
	}

	if !bytes.Equal(hazmat.Hash([]byte("hello")), sum) {
		t.Error("Hash() is not deterministic")
	}
	if bytes.Equal(hazmat.Hash([]byte("world")), sum) {
		t.Error("Hash() collided on different input")
	}
}

func TestHMACSum(t *testing.T) {
	key := []byte("a 16-byte key!!!")
	tag := hazmat.HMACSum(key, []byte("message"))

	if got, want := len(tag), 64; got != want {
		t.Errorf("len(HMACSum()) = %d, want %d", got, want)
	}

	if !hazmat.HMACEqual(tag, hazmat.HMACSum(key, []byte("message"))) {
		t.Error("HMACSum() is not deterministic under a fixed key")
	}

	otherKey := []byte("a different key!")
	if hazmat.HMACEqual(tag, hazmat.HMACSum(otherKey, []byte("message"))) {
		t.Error("HMACSum() under different keys collided")
	}
}

func TestDeriveKey(t *testing.T) {
	seed := make([]byte, 16)
	hmacKey := hazmat.DeriveKey(seed, hazmat.PurposeHMAC)
	encKey := hazmat.DeriveKey(seed, hazmat.PurposeEncryption)

	if got, want := len(hmacKey), len(seed); got != want {
		t.Errorf("len(DeriveKey(hmac)) = %d, want %d", got, want)
	}
	if got, want := len(encKey), len(seed); got != want {
		t.Errorf("len(DeriveKey(encryption)) = %d, want %d", got, want)
	}
	if bytes.Equal(hmacKey, encKey) {
		t.Error("DeriveKey() produced identical sub-keys for distinct purposes")
	}

	if !bytes.Equal(hazmat.DeriveKey(seed, hazmat.PurposeHMAC), hmacKey) {
		t.Error("DeriveKey() is not deterministic")
	}
}

func TestPasswordKDF(t *testing.T) {
	salt := []byte("a salt value")
	k1 := hazmat.PasswordKDF("correct horse battery staple", salt, 32)
	k2 := hazmat.PasswordKDF("correct horse battery staple", salt, 32)

	if got, want := len(k1), 32; got != want {
		t.Errorf("len(PasswordKDF()) = %d, want %d", got, want)
	}
	if !bytes.Equal(k1, k2) {
		t.Error("PasswordKDF() is not deterministic for the same password and salt")
	}

	k3 := hazmat.PasswordKDF("a different password", salt, 32)
	if bytes.Equal(k1, k3) {
		t.Error("PasswordKDF() collided across different passwords")
	}
}

func TestSecureRandom(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)
	if err := hazmat.SecureRandom(a); err != nil {
		t.Fatalf("SecureRandom() error = %v", err)
	}
	if err := hazmat.SecureRandom(b); err != nil {
		t.Fatalf("SecureRandom() error = %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("SecureRandom() produced identical output on consecutive calls")
	}
}

func TestSymmetricRoundTrip(t *testing.T) {
	for _, keyLen := range []int{16, 24, 32} {
		t.Run(keyForName(keyLen), func(t *testing.T) {
			key := make([]byte, keyLen)
			if err := hazmat.SecureRandom(key); err != nil {
				t.Fatal(err)
			}

			for _, msg := range [][]byte{
				nil,
				[]byte(""),
				[]byte("short message"),
				bytes.Repeat([]byte{0x42}, 1<<16),
			} {
				ct, err := hazmat.SymmetricEncrypt(key, msg)
				if err != nil {
					t.Fatalf("SymmetricEncrypt() error = %v", err)
				}

				pt, err := hazmat.SymmetricDecrypt(key, ct)
				if err != nil {
					t.Fatalf("SymmetricDecrypt() error = %v", err)
				}
				if !bytes.Equal(pt, msg) {
					t.Errorf("SymmetricDecrypt(SymmetricEncrypt(m)) = %x, want %x", pt, msg)
				}
			}
		})
	}
}

func TestSymmetricEncrypt_randomIV(t *testing.T) {
	key := make([]byte, 16)
	ct1, err := hazmat.SymmetricEncrypt(key, []byte("repeat me"))
	if err != nil {
		t.Fatal(err)
	}
	ct2, err := hazmat.SymmetricEncrypt(key, []byte("repeat me"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(ct1, ct2) {
		t.Error("SymmetricEncrypt() produced identical ciphertexts for the same plaintext under two random IVs")
	}
}

func TestSymmetricEncrypt_invalidKey(t *testing.T) {
	_, err := hazmat.SymmetricEncrypt([]byte("too short"), []byte("msg"))
	if !errors.Is(err, ers.ErrInvalidKey) {
		t.Errorf("SymmetricEncrypt() error = %v, want wrapping %v", err, ers.ErrInvalidKey)
	}
}

func TestSymmetricDecrypt_wrongKey(t *testing.T) {
	key := make([]byte, 16)
	wrongKey := make([]byte, 16)
	wrongKey[0] = 0xFF

	ct, err := hazmat.SymmetricEncrypt(key, []byte("a message long enough to span blocks of AES-CBC"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := hazmat.SymmetricDecrypt(wrongKey, ct); !errors.Is(err, ers.ErrDecrypt) {
		t.Errorf("SymmetricDecrypt() with wrong key error = %v, want wrapping %v", err, ers.ErrDecrypt)
	}
}

func keyForName(n int) string {
	switch n {
	case 16:
		return "aes-128"
	case 24:
		return "aes-192"
	case 32:
		return "aes-256"
	default:
		return "unknown"
	}
}
