package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/docstore/docstore-service/internal/core/docdb"
	"github.com/docstore/docstore-service/internal/core/docdb/query"
	domainerrors "github.com/docstore/docstore-service/internal/domain/errors"
	"github.com/docstore/docstore-service/internal/domain/models"
)

// UpdateResult reports the outcome of an update.
type UpdateResult struct {
	// Matched is the number of documents the filter selected.
	Matched int64 `json:"matched"`
	// Modified is the number of documents whose content changed.
	Modified int64 `json:"modified"`
}

// FindOneAndUpdateOptions controls FindOneAndUpdate.
type FindOneAndUpdateOptions struct {
	// ReturnUpdated returns the document after the update instead of before.
	ReturnUpdated bool
}

// InsertMany inserts docs in order and returns the generated IDs in the
// same order. Each document is a mapping (models.Document, bson.M) or a
// struct with bson tags; structs are validated first.
//
// There is no rollback. When a document fails validation the documents
// before it are written and their IDs are returned with the validation
// error. When the store rejects a document the returned *WriteError lists
// the IDs that were written before it.
func (c *Client) InsertMany(ctx context.Context, collection string, docs []interface{}) ([]interface{}, error) {
	const op = "insertMany"
	coll, err := c.collection(op, collection)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domainerrors.NewValidationError("no documents to insert", collection)
	}

	valid := docs
	var invalid error
	for i, doc := range docs {
		if err := c.checkDocument(i, doc); err != nil {
			valid, invalid = docs[:i], err
			break
		}
	}

	var ids []interface{}
	if len(valid) > 0 {
		ids, err = coll.InsertMany(ctx, valid)
		if err != nil {
			err = classify(op, err, true)
			if writeErr, ok := domainerrors.GetWriteError(err); ok {
				writeErr.InsertedIDs = ids
			}
			return ids, c.fail(op, collection, err)
		}
	}

	c.logger.Debug().
		Str("operation", op).
		Str("collection", collection).
		Int("inserted", len(ids)).
		Msg("documents inserted")
	if invalid != nil {
		return ids, c.fail(op, collection, invalid)
	}
	return ids, nil
}

// InsertOne inserts a single document and returns its ID.
func (c *Client) InsertOne(ctx context.Context, collection string, doc interface{}) (interface{}, error) {
	ids, err := c.InsertMany(ctx, collection, []interface{}{doc})
	if err != nil {
		return nil, err
	}
	return ids[0], nil
}

// FindAll returns every document of the collection in store order.
func (c *Client) FindAll(ctx context.Context, collection string) ([]models.Document, error) {
	cursor, err := c.Find(ctx, collection, nil, nil)
	if err != nil {
		return nil, err
	}
	return cursor.Documents(ctx)
}

// FindByID returns the document with the given ID, or nil when there is
// none. String IDs in ObjectID hex form are converted to ObjectIDs.
func (c *Client) FindByID(ctx context.Context, collection string, id interface{}) (models.Document, error) {
	return c.FindOne(ctx, collection, query.ByID(normalizeID(id)))
}

// FindOne returns the first document matching filter, or nil when there is none.
func (c *Client) FindOne(ctx context.Context, collection string, filter interface{}) (models.Document, error) {
	const op = "findOne"
	coll, err := c.collection(op, collection)
	if err != nil {
		return nil, err
	}
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}

	doc, err := decodeSingle(coll.FindOne(ctx, f))
	if err != nil {
		return nil, c.fail(op, collection, classify(op, err, false))
	}
	c.logger.Debug().
		Str("operation", op).
		Str("collection", collection).
		Bool("found", doc != nil).
		Msg("document lookup")
	return doc, nil
}

// Find returns a lazy cursor over the documents matching filter.
func (c *Client) Find(ctx context.Context, collection string, filter interface{}, opts *FindOptions) (*Cursor, error) {
	const op = "find"
	coll, err := c.collection(op, collection)
	if err != nil {
		return nil, err
	}
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}
	findOpts, err := opts.build()
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, f, findOpts)
	if err != nil {
		return nil, c.fail(op, collection, classify(op, err, false))
	}
	c.logger.Debug().
		Str("operation", op).
		Str("collection", collection).
		Msg("cursor opened")
	return &Cursor{client: c, cursor: cursor}, nil
}

// Count returns the number of documents matching filter.
func (c *Client) Count(ctx context.Context, collection string, filter interface{}) (int64, error) {
	const op = "count"
	coll, err := c.collection(op, collection)
	if err != nil {
		return 0, err
	}
	f, err := toFilter(filter)
	if err != nil {
		return 0, err
	}
	n, err := coll.CountDocuments(ctx, f)
	if err != nil {
		return 0, c.fail(op, collection, classify(op, err, false))
	}
	return n, nil
}

// UpdateOne applies patch to the first document matching filter. Matched
// is 0 when nothing matched. Re-applying a patch matches again and
// modifies nothing.
func (c *Client) UpdateOne(ctx context.Context, collection string, filter, patch interface{}) (*UpdateResult, error) {
	return c.update(ctx, "updateOne", collection, filter, patch, false)
}

// UpdateMany applies patch to every document matching filter.
func (c *Client) UpdateMany(ctx context.Context, collection string, filter, patch interface{}) (*UpdateResult, error) {
	return c.update(ctx, "updateMany", collection, filter, patch, true)
}

func (c *Client) update(ctx context.Context, op, collection string, filter, patch interface{}, many bool) (*UpdateResult, error) {
	coll, err := c.collection(op, collection)
	if err != nil {
		return nil, err
	}
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}
	u, err := toUpdate(patch)
	if err != nil {
		return nil, err
	}

	var res *docdb.UpdateResult
	if many {
		res, err = coll.UpdateMany(ctx, f, u)
	} else {
		res, err = coll.UpdateOne(ctx, f, u)
	}
	if err != nil {
		return nil, c.fail(op, collection, classify(op, err, true))
	}

	c.logger.Debug().
		Str("operation", op).
		Str("collection", collection).
		Int64("matched", res.MatchedCount).
		Int64("modified", res.ModifiedCount).
		Msg("documents updated")
	return &UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// DeleteMany removes every document matching filter and returns how many
// were removed.
func (c *Client) DeleteMany(ctx context.Context, collection string, filter interface{}) (int64, error) {
	const op = "deleteMany"
	coll, err := c.collection(op, collection)
	if err != nil {
		return 0, err
	}
	f, err := toFilter(filter)
	if err != nil {
		return 0, err
	}

	res, err := coll.DeleteMany(ctx, f)
	if err != nil {
		return 0, c.fail(op, collection, classify(op, err, true))
	}
	c.logger.Debug().
		Str("operation", op).
		Str("collection", collection).
		Int64("deleted", res.DeletedCount).
		Msg("documents deleted")
	return res.DeletedCount, nil
}

// DeleteByID removes the document with the given ID and returns it, or nil
// when there is none.
func (c *Client) DeleteByID(ctx context.Context, collection string, id interface{}) (models.Document, error) {
	const op = "deleteById"
	coll, err := c.collection(op, collection)
	if err != nil {
		return nil, err
	}

	doc, err := decodeSingle(coll.FindOneAndDelete(ctx, query.ByID(normalizeID(id))))
	if err != nil {
		return nil, c.fail(op, collection, classify(op, err, true))
	}
	c.logger.Debug().
		Str("operation", op).
		Str("collection", collection).
		Bool("deleted", doc != nil).
		Msg("document deleted")
	return doc, nil
}

// FindOneAndUpdate atomically applies patch to the first document matching
// filter and returns it as it was before the update, or after it when
// opts.ReturnUpdated is set. It returns nil when nothing matched.
func (c *Client) FindOneAndUpdate(ctx context.Context, collection string, filter, patch interface{}, opts *FindOneAndUpdateOptions) (models.Document, error) {
	const op = "findOneAndUpdate"
	coll, err := c.collection(op, collection)
	if err != nil {
		return nil, err
	}
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}
	u, err := toUpdate(patch)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &FindOneAndUpdateOptions{}
	}

	doc, err := decodeSingle(coll.FindOneAndUpdate(ctx, f, u, &docdb.FindOneAndUpdateOptions{
		ReturnUpdated: opts.ReturnUpdated,
	}))
	if err != nil {
		return nil, c.fail(op, collection, classify(op, err, true))
	}
	c.logger.Debug().
		Str("operation", op).
		Str("collection", collection).
		Bool("found", doc != nil).
		Msg("document updated")
	return doc, nil
}

// decodeSingle maps "no documents" to a nil document.
func decodeSingle(res docdb.SingleResult) (models.Document, error) {
	if err := res.Err(); err != nil {
		if errors.Is(err, docdb.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	var doc bson.D
	if err := res.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
