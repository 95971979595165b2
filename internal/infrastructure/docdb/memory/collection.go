package memory

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docstore/docstore-service/internal/core/docdb"
)

const duplicateKeyCode = 11000

// Collection implements the docdb.Collection interface in memory.
type Collection struct {
	name      string
	namespace string
	store     *store
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// InsertOne inserts a single document.
func (c *Collection) InsertOne(ctx context.Context, document interface{}) (interface{}, error) {
	ids, err := c.InsertMany(ctx, []interface{}{document})
	if err != nil {
		return nil, err
	}
	return ids[0], nil
}

// InsertMany inserts documents in order and stops at the first duplicate
// _id. Documents written before the failure are kept.
func (c *Collection) InsertMany(ctx context.Context, documents []interface{}) ([]interface{}, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("must provide at least one element in input slice")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make([]bson.D, 0, len(documents))
	for _, d := range documents {
		doc, err := normalize(d)
		if err != nil {
			return nil, err
		}
		docs = append(docs, withID(doc))
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.store.closed {
		return nil, docdb.ErrClientDisconnected
	}

	existing := c.store.collections[c.name]
	ids := make([]interface{}, 0, len(docs))
	for i, doc := range docs {
		id, _ := lookup(doc, idField)
		if indexOfID(existing, id) >= 0 {
			c.store.collections[c.name] = existing
			return ids, &docdb.WriteError{
				Index:   i,
				Code:    duplicateKeyCode,
				Message: fmt.Sprintf("E11000 duplicate key error collection: %s index: _id_ dup key: { _id: %v }", c.namespace, id),
			}
		}
		existing = append(existing, doc)
		ids = append(ids, id)
	}
	c.store.collections[c.name] = existing
	return ids, nil
}

// FindOne finds the first matching document.
func (c *Collection) FindOne(ctx context.Context, filter interface{}) docdb.SingleResult {
	cursor, err := c.Find(ctx, filter, &docdb.FindOptions{Limit: 1})
	if err != nil {
		return &SingleResult{err: err}
	}
	mc := cursor.(*Cursor)
	if len(mc.docs) == 0 {
		return noDocuments()
	}
	return &SingleResult{doc: mc.docs[0]}
}

// Find returns a cursor over a snapshot of the matching documents.
func (c *Collection) Find(ctx context.Context, filter interface{}, opts *docdb.FindOptions) (docdb.Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := normalize(filter)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &docdb.FindOptions{}
	}
	if opts.Limit < 0 || opts.Skip < 0 {
		return nil, fmt.Errorf("limit and skip must not be negative")
	}

	docs, err := c.snapshot(f)
	if err != nil {
		return nil, err
	}

	if opts.Sort != nil {
		spec, err := normalize(opts.Sort)
		if err != nil {
			return nil, err
		}
		if err := sortDocuments(docs, spec); err != nil {
			return nil, err
		}
	}
	if opts.Skip > 0 {
		if opts.Skip >= int64(len(docs)) {
			docs = nil
		} else {
			docs = docs[opts.Skip:]
		}
	}
	if opts.Limit > 0 && opts.Limit < int64(len(docs)) {
		docs = docs[:opts.Limit]
	}
	if opts.Projection != nil {
		proj, err := normalize(opts.Projection)
		if err != nil {
			return nil, err
		}
		for i := range docs {
			docs[i] = project(docs[i], proj)
		}
	}
	return &Cursor{docs: docs}, nil
}

// FindOneAndUpdate updates the first match and returns it before or after
// the update depending on opts.
func (c *Collection) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *docdb.FindOneAndUpdateOptions) docdb.SingleResult {
	if opts == nil {
		opts = &docdb.FindOneAndUpdateOptions{}
	}
	before, after, err := c.update(ctx, filter, update, 1)
	if err != nil {
		return &SingleResult{err: err}
	}
	if len(before) == 0 {
		return noDocuments()
	}

	doc := before[0]
	if opts.ReturnUpdated {
		doc = after[0]
	}
	if opts.Projection != nil {
		proj, err := normalize(opts.Projection)
		if err != nil {
			return &SingleResult{err: err}
		}
		doc = project(doc, proj)
	}
	return &SingleResult{doc: doc}
}

// FindOneAndDelete deletes the first match and returns it.
func (c *Collection) FindOneAndDelete(ctx context.Context, filter interface{}) docdb.SingleResult {
	removed, err := c.delete(ctx, filter, 1)
	if err != nil {
		return &SingleResult{err: err}
	}
	if len(removed) == 0 {
		return noDocuments()
	}
	return &SingleResult{doc: removed[0]}
}

// UpdateOne updates the first matching document.
func (c *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	return c.updateResult(ctx, filter, update, 1)
}

// UpdateMany updates every matching document.
func (c *Collection) UpdateMany(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	return c.updateResult(ctx, filter, update, 0)
}

// DeleteOne deletes the first matching document.
func (c *Collection) DeleteOne(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	removed, err := c.delete(ctx, filter, 1)
	if err != nil {
		return nil, err
	}
	return &docdb.DeleteResult{DeletedCount: int64(len(removed))}, nil
}

// DeleteMany deletes every matching document.
func (c *Collection) DeleteMany(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	removed, err := c.delete(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	return &docdb.DeleteResult{DeletedCount: int64(len(removed))}, nil
}

// CountDocuments counts documents matching the filter.
func (c *Collection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f, err := normalize(filter)
	if err != nil {
		return 0, err
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	found, err := c.matching(f, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(found)), nil
}

// Drop removes the collection.
func (c *Collection) Drop(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.store.closed {
		return docdb.ErrClientDisconnected
	}
	delete(c.store.collections, c.name)
	return nil
}

func (c *Collection) updateResult(ctx context.Context, filter, update interface{}, limit int) (*docdb.UpdateResult, error) {
	before, after, err := c.update(ctx, filter, update, limit)
	if err != nil {
		return nil, err
	}
	result := &docdb.UpdateResult{MatchedCount: int64(len(before))}
	for i := range before {
		if !valuesEqual(before[i], after[i]) {
			result.ModifiedCount++
		}
	}
	return result, nil
}

// update applies update to at most limit matches (0 means all) and returns
// copies of the matched documents before and after the change. Either every
// match is updated or, on error, none is.
func (c *Collection) update(ctx context.Context, filter, update interface{}, limit int) ([]bson.D, []bson.D, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	f, err := normalize(filter)
	if err != nil {
		return nil, nil, err
	}
	u, err := normalize(update)
	if err != nil {
		return nil, nil, err
	}
	if len(u) == 0 {
		return nil, nil, fmt.Errorf("update document must not be empty")
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	found, err := c.matching(f, limit)
	if err != nil {
		return nil, nil, err
	}

	docs := c.store.collections[c.name]
	before := make([]bson.D, len(found))
	after := make([]bson.D, len(found))
	for i, idx := range found {
		updated, err := applyUpdate(docs[idx], u)
		if err != nil {
			return nil, nil, err
		}
		before[i] = deepCopy(docs[idx])
		after[i] = updated
	}
	for i, idx := range found {
		docs[idx] = deepCopy(after[i])
	}
	return before, after, nil
}

// delete removes at most limit matches (0 means all) and returns them.
func (c *Collection) delete(ctx context.Context, filter interface{}, limit int) ([]bson.D, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	found, err := c.matching(f, limit)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}

	docs := c.store.collections[c.name]
	removed := make([]bson.D, 0, len(found))
	remove := make(map[int]bool, len(found))
	for _, idx := range found {
		removed = append(removed, docs[idx])
		remove[idx] = true
	}
	kept := make([]bson.D, 0, len(docs)-len(found))
	for i, doc := range docs {
		if !remove[i] {
			kept = append(kept, doc)
		}
	}
	c.store.collections[c.name] = kept
	return removed, nil
}

// matching returns the indexes of matching documents in insertion order.
// The caller must hold the store lock.
func (c *Collection) matching(filter bson.D, limit int) ([]int, error) {
	if c.store.closed {
		return nil, docdb.ErrClientDisconnected
	}
	var found []int
	for i, doc := range c.store.collections[c.name] {
		ok, err := matches(doc, filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		found = append(found, i)
		if limit > 0 && len(found) == limit {
			break
		}
	}
	return found, nil
}

// snapshot copies the matching documents under the read lock.
func (c *Collection) snapshot(filter bson.D) ([]bson.D, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	found, err := c.matching(filter, 0)
	if err != nil {
		return nil, err
	}
	docs := make([]bson.D, len(found))
	all := c.store.collections[c.name]
	for i, idx := range found {
		docs[i] = deepCopy(all[idx])
	}
	return docs, nil
}

// withID prepends a generated ObjectID when the document has no _id.
func withID(doc bson.D) bson.D {
	if _, ok := lookup(doc, idField); ok {
		return doc
	}
	return append(bson.D{{Key: idField, Value: primitive.NewObjectID()}}, doc...)
}

func indexOfID(docs []bson.D, id interface{}) int {
	for i, doc := range docs {
		if existing, ok := lookup(doc, idField); ok && valuesEqual(existing, id) {
			return i
		}
	}
	return -1
}
