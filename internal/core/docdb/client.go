// Package docdb defines the document database client interface.
package docdb

import (
	"context"
)

// Client defines the interface for a document database client. A Client
// owns one connection to one logical database.
type Client interface {
	// Database returns the database interface.
	Database() Database

	// Collection returns a named collection of the database.
	Collection(name string) Collection

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
