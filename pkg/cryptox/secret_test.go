package cryptox

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{16, KeySize, 64} {
		token, err := GenerateToken(size)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		require.Len(t, raw, size)

		again, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, token, again)
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestLoadOrCreateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "session.key")

	key, err := LoadOrCreateKey(path, KeySize)
	require.NoError(t, err)
	require.Len(t, key, KeySize)

	again, err := LoadOrCreateKey(path, KeySize)
	require.NoError(t, err)
	require.Equal(t, key, again)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrCreateKey_Rejects(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.key")
	require.NoError(t, os.WriteFile(short, []byte(base64.RawURLEncoding.EncodeToString([]byte("tiny"))), 0o600))
	_, err := LoadOrCreateKey(short, KeySize)
	require.ErrorContains(t, err, "need at least 32")

	garbage := filepath.Join(dir, "garbage.key")
	require.NoError(t, os.WriteFile(garbage, []byte("not base64!"), 0o600))
	_, err = LoadOrCreateKey(garbage, KeySize)
	require.ErrorContains(t, err, "not base64url")
}
