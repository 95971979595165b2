// Package docstore provides the document-store client: a uniform CRUD
// surface over the named collections of one database, with an explicit
// open → closed lifecycle.
package docstore

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/docstore/docstore-service/internal/core/docdb"
	domainerrors "github.com/docstore/docstore-service/internal/domain/errors"
	"github.com/docstore/docstore-service/internal/infrastructure/docdb/memory"
	"github.com/docstore/docstore-service/internal/infrastructure/docdb/mongodb"
	"github.com/docstore/docstore-service/internal/pkg/validator"
)

// Config identifies the database to connect to.
type Config struct {
	Type           docdb.Type
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// Client is safe for concurrent use. Calls are not ordered with respect to
// each other; callers that need ordering sequence their calls.
type Client struct {
	conn      docdb.Client
	validator *validator.Validator
	logger    zerolog.Logger
	closed    atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for operation logs.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithValidator sets the validator used for typed documents.
func WithValidator(v *validator.Validator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// Connect opens a connection described by cfg. Unreachable hosts and
// authentication failures are reported as connection errors.
func Connect(ctx context.Context, cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, domainerrors.NewValidationError("invalid connection config", "config cannot be nil")
	}
	if cfg.Database == "" {
		return nil, domainerrors.NewValidationError("invalid connection config", "database name is required")
	}

	var (
		conn docdb.Client
		err  error
	)
	switch cfg.Type {
	case docdb.TypeMongoDB, docdb.TypeCosmosDB, "":
		// Cosmos DB is reached through its MongoDB API.
		if cfg.URI == "" {
			return nil, domainerrors.NewValidationError("invalid connection config", "URI is required")
		}
		conn, err = mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:            cfg.URI,
			DatabaseName:   cfg.Database,
			ConnectTimeout: cfg.ConnectTimeout,
			MaxPoolSize:    cfg.MaxPoolSize,
		})
	case docdb.TypeMemory:
		conn = memory.NewClient(cfg.Database)
	default:
		return nil, domainerrors.NewValidationError("invalid connection config", fmt.Sprintf("unsupported docdb type: %s", cfg.Type))
	}
	if err != nil {
		return nil, domainerrors.NewConnectionError("failed to connect to document store", err)
	}

	c := New(conn, opts...)
	c.logger.Info().
		Str("type", string(cfg.Type)).
		Str("database", cfg.Database).
		Msg("connected to document store")
	return c, nil
}

// New wraps an open connection.
func New(conn docdb.Client, opts ...Option) *Client {
	c := &Client{
		conn:      conn,
		validator: validator.Default(),
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "docstore").Logger()
	return c
}

// DatabaseName returns the name of the connected database.
func (c *Client) DatabaseName() string {
	return c.conn.Database().Name()
}

// Ping verifies that the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.ensureOpen("ping"); err != nil {
		return err
	}
	return classify("ping", c.conn.Ping(ctx), false)
}

// Collections lists the collection names of the database.
func (c *Client) Collections(ctx context.Context) ([]string, error) {
	if err := c.ensureOpen("listCollections"); err != nil {
		return nil, err
	}
	names, err := c.conn.Database().ListCollectionNames(ctx)
	if err != nil {
		return nil, classify("listCollections", err, false)
	}
	return names, nil
}

// Drop removes a collection and all of its documents.
func (c *Client) Drop(ctx context.Context, collection string) error {
	if err := c.ensureOpen("drop"); err != nil {
		return err
	}
	if err := c.conn.Collection(collection).Drop(ctx); err != nil {
		return c.fail("drop", collection, classify("drop", err, true))
	}
	c.logger.Debug().Str("collection", collection).Msg("collection dropped")
	return nil
}

// Close releases the connection. Only the first call closes it; later
// calls return nil.
func (c *Client) Close(ctx context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := c.conn.Close(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("failed to close document store connection")
		return domainerrors.NewConnectionError("failed to close document store connection", err)
	}
	c.logger.Info().Msg("document store connection closed")
	return nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}

func (c *Client) ensureOpen(operation string) error {
	if c.closed.Load() {
		return domainerrors.NewConnectionClosedError(operation)
	}
	return nil
}

func (c *Client) collection(operation, name string) (docdb.Collection, error) {
	if err := c.ensureOpen(operation); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domainerrors.NewValidationError("collection name is required", operation)
	}
	return c.conn.Collection(name), nil
}

func (c *Client) fail(operation, collection string, err error) error {
	c.logger.Error().
		Err(err).
		Str("operation", operation).
		Str("collection", collection).
		Msg("document store operation failed")
	return err
}
