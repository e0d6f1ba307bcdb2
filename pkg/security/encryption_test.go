package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncryptor(t *testing.T) Encryptor {
	t.Helper()
	key, err := GenerateEncryptionKey()
	require.NoError(t, err)
	enc, err := NewAESEncryptor(key)
	require.NoError(t, err)
	return enc
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc := newTestEncryptor(t)

	for _, plaintext := range []string{"Jane Doe", "5551234567", "", "üñïçødé"} {
		ciphertext, err := enc.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, ciphertext)

		got, err := enc.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	enc := newTestEncryptor(t)
	other := newTestEncryptor(t)

	ciphertext, err := enc.Encrypt("Jane Doe")
	require.NoError(t, err)

	_, err = other.Decrypt(ciphertext)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestDecryptCorruptedCiphertextFails(t *testing.T) {
	enc := newTestEncryptor(t)

	_, err := enc.Decrypt("not base64 at all!!!")
	assert.ErrorIs(t, err, ErrDecryption)

	_, err = enc.Decrypt("c2hvcnQ=") // valid base64, too short for a nonce
	assert.ErrorIs(t, err, ErrDecryption)

	ciphertext, err := enc.Encrypt("Jane Doe")
	require.NoError(t, err)
	tampered := "AAAA" + ciphertext[4:]
	_, err = enc.Decrypt(tampered)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestNewAESEncryptorRejectsBadKey(t *testing.T) {
	_, err := NewAESEncryptor([]byte("too short"))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}
