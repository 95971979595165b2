package dotenv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstore/docstore-service/internal/core/vault"
	"github.com/docstore/docstore-service/internal/infrastructure/vault/dotenv"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGetSecret_FromFile(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	v, err := dotenv.NewVault(writeEnvFile(t, "MONGO_URI=mongodb+srv://user:pw@cluster.example.net/\n"))
	require.NoError(t, err)

	uri, err := v.GetSecret(context.Background(), "dotenv://MONGO_URI")
	require.NoError(t, err)
	assert.Equal(t, "mongodb+srv://user:pw@cluster.example.net/", uri)
}

func TestGetSecret_EnvironmentWins(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://env:27017")
	v, err := dotenv.NewVault(writeEnvFile(t, "MONGO_URI=mongodb://file:27017\n"))
	require.NoError(t, err)

	uri, err := v.GetSecret(context.Background(), "dotenv://MONGO_URI")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://env:27017", uri)
}

func TestGetSecret_Errors(t *testing.T) {
	t.Setenv("DOCSTORE_MISSING_SECRET", "")
	v, err := dotenv.NewVault(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = v.GetSecret(ctx, "dotenv://DOCSTORE_MISSING_SECRET")
	assert.ErrorIs(t, err, vault.ErrSecretNotFound)

	_, err = v.GetSecret(ctx, "azure://something")
	assert.Error(t, err)

	_, err = v.GetSecret(ctx, "MONGO_URI")
	assert.Error(t, err)

	assert.NoError(t, v.Ping(ctx))
	assert.NoError(t, v.Close())
}
