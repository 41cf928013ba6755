package session

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const (
	serviceName = "policeportal"

	// tokenKey is the keyring entry holding the bearer credential. The
	// token never touches the session database; secrets belong to the
	// OS keyring.
	tokenKey = "api-token"
)

// openKeyring returns the system keyring scoped to this application.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/policeportal/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("policeportal-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// readToken retrieves the stored bearer token from ring. A missing entry
// returns an empty token, not an error.
func readToken(ring keyring.Keyring) (string, error) {
	item, err := ring.Get(tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("getting token from keyring: %w", err)
	}
	return string(item.Data), nil
}

// writeToken stores the bearer token in ring.
func writeToken(ring keyring.Keyring, token string) error {
	err := ring.Set(keyring.Item{
		Key:  tokenKey,
		Data: []byte(token),
	})
	if err != nil {
		return fmt.Errorf("storing token in keyring: %w", err)
	}
	return nil
}

// deleteToken removes the bearer token from ring. A missing entry is
// not an error.
func deleteToken(ring keyring.Keyring) error {
	err := ring.Remove(tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing token from keyring: %w", err)
	}
	return nil
}
