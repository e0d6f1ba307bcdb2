package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const keySize = 32 // 256 bits

// GenerateEncryptionKey returns a fresh random AES-256 key.
func GenerateEncryptionKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// DecodeKey parses a hex-encoded AES-256 key.
func DecodeKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(key) != keySize {
		return nil, ErrInvalidKeySize
	}
	return key, nil
}

// LoadOrCreateKey returns the key stored at path, creating and persisting
// a new one on first use. The check-then-create is idempotent: a key file
// written once is reused for the lifetime of the deployment.
func LoadOrCreateKey(path string) ([]byte, error) {
	if data, err := os.ReadFile(path); err == nil {
		return DecodeKey(string(data))
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key, err := GenerateEncryptionKey()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}

	return key, nil
}
