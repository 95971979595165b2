package docstore

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/docstore/docstore-service/internal/core/docdb"
	domainerrors "github.com/docstore/docstore-service/internal/domain/errors"
	"github.com/docstore/docstore-service/internal/domain/models"
)

// FindOptions shapes the result of Find.
type FindOptions struct {
	// Sort lists field names in priority order; a leading "-" sorts that
	// field descending.
	Sort []string
	// Limit caps the number of results; 0 means no limit.
	Limit int64
	// Skip drops the first results.
	Skip int64
	// Exclude removes fields from the returned documents.
	Exclude []string
}

func (o *FindOptions) build() (*docdb.FindOptions, error) {
	if o == nil {
		return nil, nil
	}
	if o.Limit < 0 || o.Skip < 0 {
		return nil, domainerrors.NewValidationError("invalid find options", "limit and skip must not be negative")
	}

	opts := &docdb.FindOptions{Limit: o.Limit, Skip: o.Skip}
	if len(o.Sort) > 0 {
		sort := make(bson.D, 0, len(o.Sort))
		for _, field := range o.Sort {
			dir := 1
			if strings.HasPrefix(field, "-") {
				field, dir = field[1:], -1
			}
			if field == "" {
				return nil, domainerrors.NewValidationError("invalid find options", "sort field must not be empty")
			}
			sort = append(sort, bson.E{Key: field, Value: dir})
		}
		opts.Sort = sort
	}
	if len(o.Exclude) > 0 {
		projection := make(bson.D, 0, len(o.Exclude))
		for _, field := range o.Exclude {
			projection = append(projection, bson.E{Key: field, Value: 0})
		}
		opts.Projection = projection
	}
	return opts, nil
}

// Cursor is a lazy sequence of query results. Documents are fetched from
// the store in batches as the cursor advances.
type Cursor struct {
	client *Client
	cursor docdb.Cursor
	err    error
}

// Next advances to the next document. It returns false when the results
// are exhausted, on error, or once the client is closed.
func (c *Cursor) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}
	if err := c.client.ensureOpen("find"); err != nil {
		c.err = err
		return false
	}
	return c.cursor.Next(ctx)
}

// Decode decodes the current document into v.
func (c *Cursor) Decode(v interface{}) error {
	if err := c.cursor.Decode(v); err != nil {
		return classify("decode", err, false)
	}
	return nil
}

// Document returns the current document.
func (c *Cursor) Document() (models.Document, error) {
	var doc bson.D
	if err := c.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// All decodes the remaining documents into results, a pointer to a slice,
// and closes the cursor.
func (c *Cursor) All(ctx context.Context, results interface{}) error {
	if err := c.client.ensureOpen("find"); err != nil {
		return err
	}
	if err := c.cursor.All(ctx, results); err != nil {
		return classify("find", err, false)
	}
	return nil
}

// Documents drains the cursor into a slice of documents.
func (c *Cursor) Documents(ctx context.Context) ([]models.Document, error) {
	docs := []models.Document{}
	if err := c.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Err returns the error that stopped iteration, if any.
func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return classify("find", c.cursor.Err(), false)
}

// Close releases the cursor.
func (c *Cursor) Close(ctx context.Context) error {
	return classify("closeCursor", c.cursor.Close(ctx), false)
}
