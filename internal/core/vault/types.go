package vault

// Type represents the type of vault.
type Type string

const (
	// TypeDotEnv resolves references from .env files and the environment.
	TypeDotEnv Type = "dotenv"
)
