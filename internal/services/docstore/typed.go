package docstore

import (
	"context"

	"github.com/docstore/docstore-service/internal/domain/models"
)

// Collection is a typed view of one collection. Values of T are validated
// on insert and decoded through their bson tags on read.
type Collection[T any] struct {
	client *Client
	name   string
}

// Typed returns a typed view of the named collection.
func Typed[T any](client *Client, name string) *Collection[T] {
	return &Collection[T]{client: client, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Insert validates and inserts values in order.
func (c *Collection[T]) Insert(ctx context.Context, values ...T) ([]interface{}, error) {
	docs := make([]interface{}, len(values))
	for i := range values {
		docs[i] = &values[i]
	}
	return c.client.InsertMany(ctx, c.name, docs)
}

// FindByID returns the value with the given ID, or nil when there is none.
func (c *Collection[T]) FindByID(ctx context.Context, id interface{}) (*T, error) {
	doc, err := c.client.FindByID(ctx, c.name, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[T](doc)
}

// FindOne returns the first value matching filter, or nil when there is none.
func (c *Collection[T]) FindOne(ctx context.Context, filter interface{}) (*T, error) {
	doc, err := c.client.FindOne(ctx, c.name, filter)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[T](doc)
}

// Find returns every value matching filter.
func (c *Collection[T]) Find(ctx context.Context, filter interface{}, opts *FindOptions) ([]T, error) {
	cursor, err := c.client.Find(ctx, c.name, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOneAndUpdate applies patch to the first match and returns it.
func (c *Collection[T]) FindOneAndUpdate(ctx context.Context, filter, patch interface{}, opts *FindOneAndUpdateOptions) (*T, error) {
	doc, err := c.client.FindOneAndUpdate(ctx, c.name, filter, patch, opts)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[T](doc)
}

// DeleteByID removes the value with the given ID and returns it.
func (c *Collection[T]) DeleteByID(ctx context.Context, id interface{}) (*T, error) {
	doc, err := c.client.DeleteByID(ctx, c.name, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return decode[T](doc)
}

func decode[T any](doc models.Document) (*T, error) {
	var v T
	if err := models.ToStruct(doc, &v); err != nil {
		return nil, classify("decode", err, false)
	}
	return &v, nil
}
