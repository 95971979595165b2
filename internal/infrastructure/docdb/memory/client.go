// Package memory provides an in-process implementation of the docdb
// interfaces. It evaluates the same filter, update, sort and projection
// documents as the MongoDB backend and is used for local development and
// tests; data lives only as long as the client.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/docstore/docstore-service/internal/core/docdb"
)

// store is the state shared by a client and all of its collection handles.
type store struct {
	mu          sync.RWMutex
	closed      bool
	collections map[string][]bson.D
}

// Client implements the docdb.Client interface in memory.
type Client struct {
	store    *store
	database *Database
}

// NewClient creates an empty in-memory database.
func NewClient(databaseName string) *Client {
	s := &store{collections: make(map[string][]bson.D)}
	return &Client{
		store:    s,
		database: &Database{name: databaseName, store: s},
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

// Ping reports whether the client is still open.
func (c *Client) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	if c.store.closed {
		return docdb.ErrClientDisconnected
	}
	return nil
}

// Close discards all data. Closing twice returns ErrClientDisconnected,
// mirroring the driver.
func (c *Client) Close(context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.store.closed {
		return docdb.ErrClientDisconnected
	}
	c.store.closed = true
	c.store.collections = nil
	return nil
}

// Database implements the docdb.Database interface in memory.
type Database struct {
	name  string
	store *store
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.name
}

// Collection returns a collection handle. Collections are created on first write.
func (d *Database) Collection(name string) docdb.Collection {
	return &Collection{name: name, namespace: d.name + "." + name, store: d.store}
}

// ListCollectionNames lists the collections that hold documents, sorted by name.
func (d *Database) ListCollectionNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	if d.store.closed {
		return nil, docdb.ErrClientDisconnected
	}

	names := make([]string, 0, len(d.store.collections))
	for name := range d.store.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
