package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KeySize is the size in bytes of generated peppers and signing keys.
const KeySize = 32

// GenerateToken returns size random bytes encoded as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// LoadOrCreateSecret reads a base64url secret from path. If the file does not
// exist a new secret of size random bytes is written there with 0600
// permissions, creating parent directories as needed.
func LoadOrCreateSecret(path string, size int) (string, error) {
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret := strings.TrimSpace(string(raw))
		if secret == "" {
			return "", fmt.Errorf("secret file %s is empty", path)
		}
		return secret, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", err
	}

	secret, err := GenerateToken(size)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(secret), 0o600); err != nil {
		return "", err
	}
	return secret, nil
}

// LoadOrCreateKey is LoadOrCreateSecret for signing keys: it returns the
// decoded bytes and refuses files holding fewer than size of them.
func LoadOrCreateKey(path string, size int) ([]byte, error) {
	secret, err := LoadOrCreateSecret(path, size)
	if err != nil {
		return nil, err
	}

	key, err := base64.RawURLEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("key file %s is not base64url: %w", filepath.Clean(path), err)
	}
	if len(key) < size {
		return nil, fmt.Errorf("key file %s holds %d bytes, need at least %d", filepath.Clean(path), len(key), size)
	}
	return key, nil
}
