package cryptox

import (
	"fmt"
	"sync"
)

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile = "data/pepper"
)

// SetPepperPath sets the file the pepper is loaded from and drops any pepper
// already loaded.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperFile = file
	pepper = ""
}

// Pepper returns the process pepper, loading it from disk (or creating it) on
// first use.
func Pepper() (string, error) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper, nil
	}

	secret, err := LoadOrCreateSecret(pepperFile, KeySize)
	if err != nil {
		return "", fmt.Errorf("load pepper: %w", err)
	}
	pepper = secret
	return pepper, nil
}
