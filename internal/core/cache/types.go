package cache

// Type represents the type of cache.
type Type string

const (
	// TypeRedis represents a Redis cache.
	TypeRedis Type = "redis"
	// TypeNone disables the cache.
	TypeNone Type = "none"
)
