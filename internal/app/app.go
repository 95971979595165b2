// Package app wires configuration, backing services and the HTTP router
// together. It is shared by the service and CLI entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/docstore/docstore-service/internal/api/handlers"
	"github.com/docstore/docstore-service/internal/api/middleware"
	"github.com/docstore/docstore-service/internal/api/routes"
	"github.com/docstore/docstore-service/internal/config"
	"github.com/docstore/docstore-service/internal/core/cache"
	"github.com/docstore/docstore-service/internal/core/docdb"
	"github.com/docstore/docstore-service/internal/core/vault"
	rediscache "github.com/docstore/docstore-service/internal/infrastructure/cache/redis"
	dotenvvault "github.com/docstore/docstore-service/internal/infrastructure/vault/dotenv"
	"github.com/docstore/docstore-service/internal/services/docstore"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 10 * time.Second

// NewVault creates a vault based on the configuration.
func NewVault(cfg config.VaultConfig) (vault.Vault, error) {
	switch vault.Type(cfg.Type) {
	case vault.TypeDotEnv, "":
		v, err := dotenvvault.NewVault(".env")
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported vault type: %s", cfg.Type)
	}
}

// NewCache creates the idempotency key store. It returns nil when no cache
// is configured.
func NewCache(cfg config.CacheConfig) (cache.Cache, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeNone, "":
		return nil, nil
	case cache.TypeRedis:
		c, err := rediscache.NewCache(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.IdempotencyTTL,
			KeyPrefix:  "docstore:",
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// ResolveURI returns the connection URI to use. A URISecret that resolves
// through the vault wins over the plain URI.
func ResolveURI(ctx context.Context, v vault.Vault, cfg config.DocDBConfig) (string, error) {
	if v == nil || cfg.URISecret == "" {
		return cfg.URI, nil
	}
	uri, err := v.GetSecret(ctx, cfg.URISecret)
	if errors.Is(err, vault.ErrSecretNotFound) {
		log.Debug().Str("secret", cfg.URISecret).Msg("uri secret not set, using MONGODB_URI")
		return cfg.URI, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", cfg.URISecret, err)
	}
	return uri, nil
}

// ConnectDocStore resolves the URI and connects the document store client.
func ConnectDocStore(ctx context.Context, cfg config.DocDBConfig, v vault.Vault, opts ...docstore.Option) (*docstore.Client, error) {
	uri, err := ResolveURI(ctx, v, cfg)
	if err != nil {
		return nil, err
	}
	return docstore.Connect(ctx, &docstore.Config{
		Type:           docdb.Type(cfg.Type),
		URI:            uri,
		Database:       cfg.Database,
		ConnectTimeout: cfg.ConnectTimeout,
		MaxPoolSize:    cfg.MaxPoolSize,
	}, opts...)
}

// NewRouter creates and configures the Gin router. c may be nil.
func NewRouter(cfg *config.Config, c cache.Cache, store *docstore.Client) *gin.Engine {
	router := gin.New()

	routesCfg := &routes.Config{
		HealthHandler:    handlers.NewHealthHandler(c, store),
		DocumentsHandler: handlers.NewDocumentsHandler(store),
		CORS:             middleware.DefaultCORSConfig(cfg.Server.CORSAllowOrigins...),
	}
	if c != nil {
		routesCfg.Idempotency = middleware.NewIdempotencyMiddleware(c, cfg.Cache.IdempotencyTTL)
	}

	routes.SetupWithMiddleware(router, routesCfg, middleware.NewLoggingMiddleware(), middleware.NewErrorMiddleware())
	return router
}

// Serve runs the HTTP service until ctx is cancelled, then shuts it down
// gracefully and closes the backing services.
func Serve(ctx context.Context, cfg *config.Config) error {
	v, err := NewVault(cfg.Vault)
	if err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}
	defer v.Close()

	c, err := NewCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	if c != nil {
		defer c.Close()
	}

	store, err := ConnectDocStore(ctx, cfg.DocDB, v)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close document store")
		}
	}()

	gin.SetMode(cfg.Server.GinMode)

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: NewRouter(cfg, c, store),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("database", store.DatabaseName()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server exited")
	return nil
}
