package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

var (
	ErrInvalidKeySize = errors.New("invalid key size")
	ErrEncryption     = errors.New("encryption failed")
	ErrDecryption     = errors.New("decryption failed")
)

// Encryptor provides a generic interface for encryption/decryption of
// string fields. Ciphertexts are base64(nonce || sealed) so they can be
// stored in text columns.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// NewAESEncryptor creates a new AES-GCM encryptor. The key must be 32
// bytes (AES-256).
func NewAESEncryptor(key []byte) (Encryptor, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrInvalidKeySize
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrEncryption
	}

	return &aesEncryptor{
		gcm: gcm,
	}, nil
}

type aesEncryptor struct {
	gcm cipher.AEAD
}

func (a *aesEncryptor) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, a.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", ErrEncryption
	}

	sealed := a.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (a *aesEncryptor) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrDecryption
	}

	nonceSize := a.gcm.NonceSize()
	if len(data) < nonceSize {
		return "", ErrDecryption
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := a.gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		// Wrong key or tampered ciphertext; never return garbage.
		return "", ErrDecryption
	}

	return string(plaintext), nil
}
