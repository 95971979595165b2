// Package dotenv provides a vault backed by .env files and the process
// environment, for development and single-host deployments.
package dotenv

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/docstore/docstore-service/internal/core/vault"
)

// Vault implements vault.Vault. References look like "dotenv://KEY". The
// process environment wins over values read from files.
type Vault struct {
	values map[string]string
}

// NewVault reads the given .env files. Files that do not exist are skipped.
func NewVault(files ...string) (*Vault, error) {
	v := &Vault{values: make(map[string]string)}
	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for k, val := range values {
			v.values[k] = val
		}
	}
	return v, nil
}

// GetSecret resolves a dotenv reference.
func (v *Vault) GetSecret(ctx context.Context, uri string) (string, error) {
	scheme, key, err := vault.ParseURI(uri)
	if err != nil {
		return "", err
	}
	if scheme != vault.TypeDotEnv {
		return "", fmt.Errorf("unsupported secret scheme %q", scheme)
	}

	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	if value, ok := v.values[key]; ok && value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s", vault.ErrSecretNotFound, key)
}

// Ping always succeeds.
func (v *Vault) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (v *Vault) Close() error {
	return nil
}
