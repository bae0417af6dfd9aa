// Package aescbc implements the TokenDecryptor port with AES in CBC mode and
// PKCS#7 padding, using hex-encoded key, IV and ciphertext.
package aescbc

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ericfisherdev/weeklycommits/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenDecryptor = (*Cipher)(nil)

// Cipher decrypts tokens with a fixed key and IV supplied at construction.
// It is safe for concurrent use.
type Cipher struct {
	block cipher.Block
	iv    []byte
}

// NewCipher decodes the hex key and IV and builds the block cipher.
// The key length selects AES-128, AES-192 or AES-256; the IV must be 16 bytes.
func NewCipher(keyHex, ivHex string) (*Cipher, error) {
	key, err := DecodeHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}
	iv, err := DecodeHex(ivHex)
	if err != nil {
		return nil, fmt.Errorf("decoding iv: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", block.BlockSize(), len(iv))
	}

	return &Cipher{block: block, iv: iv}, nil
}

// DecodeHex converts a hex string into raw bytes. Odd-length input or
// non-hex characters yield driven.ErrMalformedInput.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", driven.ErrMalformedInput, err)
	}
	return b, nil
}

// Decrypt decrypts a hex-encoded ciphertext and strips its PKCS#7 padding.
// Every failure wraps driven.ErrDecryption.
func (c *Cipher) Decrypt(ciphertextHex string) (string, error) {
	data, err := DecodeHex(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("%w: %w", driven.ErrDecryption, err)
	}

	blockSize := c.block.BlockSize()
	if len(data) == 0 || len(data)%blockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d",
			driven.ErrDecryption, len(data), blockSize)
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(plain, data)

	plain, err = unpad(plain, blockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %w", driven.ErrDecryption, err)
	}
	return string(plain), nil
}

// Encrypt pads plaintext with PKCS#7, encrypts it and returns the hex-encoded
// ciphertext. It is the inverse of Decrypt.
func (c *Cipher) Encrypt(plaintext string) string {
	data := pad([]byte(plaintext), c.block.BlockSize())
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(out, data)
	return hex.EncodeToString(out)
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

var errBadPadding = errors.New("invalid padding")

func unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errBadPadding
		}
	}
	return data[:len(data)-n], nil
}
