package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Credential cipher for the authentication gateway transport contract:
// AES-256-CBC, base64-encoded, PKCS#7 padded. The IV is random per message
// and prepended to the ciphertext; a fixed IV is never used.

// ErrMalformedCiphertext is returned when decryption input is not a valid
// base64 AES-CBC message produced by Encrypter.
var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// Cipher encrypts and decrypts credential strings with a key derived from the
// configured secret.
type Cipher struct {
	key []byte
}

// NewCipher derives the 32-byte AES key from the secret and salt via PBKDF2.
// PRE: secret and salt are non-empty
// POST: Returns a ready-to-use cipher
func NewCipher(secret, salt string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.New("credential secret is required")
	}
	if salt == "" {
		return nil, errors.New("credential salt is required")
	}
	key := pbkdf2.Key([]byte(secret), []byte(salt), 4096, 32, sha256.New)
	return &Cipher{key: key}, nil
}

// EncryptString encrypts a credential string.
// POST: Returns base64(iv || ciphertext); distinct calls yield distinct output
func (c *Cipher) EncryptString(data string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	plaintext := pad([]byte(data), aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(plaintext))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], plaintext)

	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptString reverses EncryptString.
// POST: Returns the original string or ErrMalformedCiphertext
func (c *Cipher) DecryptString(data string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	if len(raw) < 2*aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", ErrMalformedCiphertext
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	iv, ciphertext := raw[:aes.BlockSize], raw[aes.BlockSize:]
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	return string(unpadded), nil
}

// pad applies PKCS#7 padding.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// unpad strips PKCS#7 padding.
func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
