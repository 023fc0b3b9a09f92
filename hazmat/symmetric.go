package hazmat

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/cloudsecuritygroup/ers"
)

const ivSize = 16

// SymmetricEncrypt encrypts plaintext under key using AES-CBC with PKCS7 padding and a random
// IV. The returned ciphertext has the IV appended as its last 16 bytes. key must be 16, 24, or
// 32 bytes; any other length returns ers.ErrInvalidKey.
func SymmetricEncrypt(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("hazmat: %w: %v", ers.ErrInvalidKey, err)
	}

	padded := pkcs7Pad(plaintext, block.BlockSize())

	iv := make([]byte, ivSize)
	if err := SecureRandom(iv); err != nil {
		return nil, err
	}

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return append(ciphertext, iv...), nil
}

// SymmetricDecrypt reverses SymmetricEncrypt. It returns ers.ErrDecrypt if the trailing PKCS7
// padding does not validate, which happens with overwhelming probability under the wrong key.
func SymmetricDecrypt(key, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("hazmat: %w: %v", ers.ErrInvalidKey, err)
	}

	if len(ciphertext) < ivSize {
		return nil, fmt.Errorf("hazmat: ciphertext shorter than IV: %w", ers.ErrDecrypt)
	}
	iv := ciphertext[len(ciphertext)-ivSize:]
	body := ciphertext[:len(ciphertext)-ivSize]

	if len(body) == 0 || len(body)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("hazmat: ciphertext is not a whole number of blocks: %w", ers.ErrDecrypt)
	}

	padded := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, body)

	return pkcs7Unpad(padded, block.BlockSize())
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(append([]byte{}, data...), padding...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("hazmat: padded data is not a whole number of blocks: %w", ers.ErrDecrypt)
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, fmt.Errorf("hazmat: invalid padding length: %w", ers.ErrDecrypt)
	}

	padding := data[len(data)-padLen:]
	for _, b := range padding {
		if int(b) != padLen {
			return nil, fmt.Errorf("hazmat: invalid padding bytes: %w", ers.ErrDecrypt)
		}
	}

	return data[:len(data)-padLen], nil
}
