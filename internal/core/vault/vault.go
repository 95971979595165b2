// Package vault defines the interface used to resolve secrets such as
// connection URIs with credentials.
package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrSecretNotFound is returned when a reference does not resolve.
var ErrSecretNotFound = errors.New("secret not found")

// Vault resolves secret references of the form "scheme://key".
type Vault interface {
	// GetSecret returns the value a reference points to.
	GetSecret(ctx context.Context, uri string) (string, error)

	// Ping checks if the vault is reachable.
	Ping(ctx context.Context) error

	// Close releases the vault.
	Close() error
}

// ParseURI splits a secret reference into its scheme and key.
func ParseURI(uri string) (Type, string, error) {
	scheme, key, ok := strings.Cut(uri, "://")
	if !ok || scheme == "" || key == "" {
		return "", "", fmt.Errorf("invalid secret reference %q", uri)
	}
	return Type(scheme), key, nil
}
