package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperPath = "pepper"
)

// SetPepperPath sets the file the pepper is read from (or created at) on first use.
func SetPepperPath(path string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperPath = path
	pepper = ""
}

// SetPepper installs a pepper value directly. Tests use it to skip the file.
func SetPepper(value string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = value
}

// Pepper returns the process pepper, loading or generating it on first use.
// A pepper that cannot be persisted is fatal: hashes made with a throwaway
// value would never verify again.
func Pepper() string {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper
	}

	p, err := loadOrCreatePepper(pepperPath)
	if err != nil {
		slog.Error("failed to load or create pepper", slog.String("path", pepperPath), slog.Any("error", err))
		os.Exit(1)
	}
	pepper = p
	return pepper
}

func loadOrCreatePepper(path string) (string, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", err
	}

	buf := make([]byte, argonKeyLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	value := base64.RawURLEncoding.EncodeToString(buf)
	if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
		return "", err
	}
	return value, nil
}
