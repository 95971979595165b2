// Package mongodb provides MongoDB client implementation.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docstore/docstore-service/internal/core/docdb"
)

// Client implements the docdb.Client interface for MongoDB.
type Client struct {
	client   *mongo.Client
	database *Database
}

// ClientConfig holds MongoDB connection configuration.
type ClientConfig struct {
	URI          string
	DatabaseName string
	// ConnectTimeout bounds connection establishment and the initial ping.
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(ctx context.Context, config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}
	if config.DatabaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}

	clientOpts := options.Client().ApplyURI(config.URI)
	if config.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(config.MaxPoolSize)
	}
	if config.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(config.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(config.ConnectTimeout)

		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to mongodb: %w", docdb.ErrConnection, err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: failed to ping mongodb: %w", docdb.ErrConnection, err)
	}

	return NewClientFromMongo(client, config.DatabaseName), nil
}

// NewClientFromMongo wraps an already connected driver client.
func NewClientFromMongo(client *mongo.Client, databaseName string) *Client {
	return &Client{
		client:   client,
		database: NewDatabase(client.Database(databaseName)),
	}
}

// Database returns the database interface.
func (c *Client) Database() docdb.Database {
	return c.database
}

// Collection returns a collection of the client's database.
func (c *Client) Collection(name string) docdb.Collection {
	return c.database.Collection(name)
}

// Ping verifies the connection to MongoDB.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", translateError(err))
	}
	return nil
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", translateError(err))
	}
	return nil
}
