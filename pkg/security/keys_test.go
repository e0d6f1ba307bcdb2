package security

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateKeyIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "secret.key")

	first, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(first), string(data))
}

func TestDecodeKey(t *testing.T) {
	key, err := GenerateEncryptionKey()
	require.NoError(t, err)

	decoded, err := DecodeKey(hex.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	_, err = DecodeKey("abcd")
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	_, err = DecodeKey("not hex")
	assert.Error(t, err)
}
