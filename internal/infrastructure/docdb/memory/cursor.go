package memory

import (
	"context"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/docstore/docstore-service/internal/core/docdb"
)

// Cursor iterates over a snapshot of query results.
type Cursor struct {
	docs    []bson.D
	pos     int
	current bson.D
	err     error
}

// Next advances the cursor to the next document.
func (c *Cursor) Next(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		c.err = err
		return false
	}
	if c.pos >= len(c.docs) {
		c.current = nil
		return false
	}
	c.current = c.docs[c.pos]
	c.pos++
	return true
}

// Decode decodes the current document.
func (c *Cursor) Decode(v interface{}) error {
	if c.current == nil {
		return fmt.Errorf("cursor has no current document")
	}
	return decodeInto(c.current, v)
}

// All decodes all remaining documents into results, which must be a
// pointer to a slice.
func (c *Cursor) All(ctx context.Context, results interface{}) error {
	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("results argument must be a pointer to a slice, but was a %T", results)
	}
	slice := rv.Elem()
	slice.SetLen(0)

	for c.Next(ctx) {
		elem := reflect.New(slice.Type().Elem())
		if err := decodeInto(c.current, elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	rv.Elem().Set(slice)
	return c.Close(ctx)
}

// Err returns any cursor error.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases the snapshot.
func (c *Cursor) Close(context.Context) error {
	c.pos = len(c.docs)
	return nil
}

// SingleResult holds the outcome of a single-document operation.
type SingleResult struct {
	doc bson.D
	err error
}

// Decode decodes the document into v.
func (r *SingleResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	return decodeInto(r.doc, v)
}

// Err returns the error of the operation, docdb.ErrNoDocuments when nothing matched.
func (r *SingleResult) Err() error {
	return r.err
}

func noDocuments() *SingleResult {
	return &SingleResult{err: docdb.ErrNoDocuments}
}
