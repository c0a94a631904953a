// Package auth owns the stored bearer token and the session derived from it.
package auth

import (
	"errors"
	"os"
	"strings"

	"tdo/internal/config"
)

// Store is the persistent slot for the bearer token. It is a pure key-value
// slot: no validation happens here, and every call goes to disk so the
// result always reflects the current persisted value.
//
// Only the session Manager should hold a Store; everything else receives the
// token as a return value.
type Store struct {
	cfg *config.Config
}

// NewStore creates a Store backed by the config directory's token file.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// Set persists the token, overwriting any prior value.
// The token file is written with mode 0600.
func (s *Store) Set(token string) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	return os.WriteFile(s.cfg.TokenPath(), []byte(token), 0600)
}

// Get returns the persisted token, or false if none is set.
func (s *Store) Get() (string, bool) {
	data, err := os.ReadFile(s.cfg.TokenPath())
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Clear removes the token unconditionally. A token that was never set is
// not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.cfg.TokenPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
