package driven

import "errors"

var (
	// ErrMalformedInput is returned when hex-encoded input cannot be decoded.
	ErrMalformedInput = errors.New("malformed hex input")
	// ErrDecryption is returned when a ciphertext cannot be decrypted with the
	// configured key material.
	ErrDecryption = errors.New("token decryption failed")
)

// TokenDecryptor turns an encrypted, hex-encoded token into its plaintext form.
type TokenDecryptor interface {
	Decrypt(ciphertextHex string) (string, error)
}
