package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docstore/docstore-service/internal/core/docdb"
)

// translateError maps driver errors onto the docdb error vocabulary while
// keeping the driver error in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return docdb.ErrNoDocuments
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", docdb.ErrClientDisconnected, err)
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		if len(writeErr.WriteErrors) > 0 {
			we := writeErr.WriteErrors[0]
			return fmt.Errorf("%w: %w", &docdb.WriteError{Index: we.Index, Code: we.Code, Message: we.Message}, err)
		}
		if writeErr.WriteConcernError != nil {
			wce := writeErr.WriteConcernError
			return fmt.Errorf("%w: %w", &docdb.WriteError{Code: wce.Code, Message: wce.Message}, err)
		}
	}

	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) {
		if len(bulkErr.WriteErrors) > 0 {
			we := bulkErr.WriteErrors[0]
			return fmt.Errorf("%w: %w", &docdb.WriteError{Index: we.Index, Code: we.Code, Message: we.Message}, err)
		}
		if bulkErr.WriteConcernError != nil {
			wce := bulkErr.WriteConcernError
			return fmt.Errorf("%w: %w", &docdb.WriteError{Code: wce.Code, Message: wce.Message}, err)
		}
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %w", docdb.ErrConnection, err)
	}

	return err
}

// writtenPrefix returns the IDs of the documents an ordered bulk insert
// wrote before the first rejected document.
func writtenPrefix(ids []interface{}, err error) []interface{} {
	var bulkErr mongo.BulkWriteException
	if !errors.As(err, &bulkErr) {
		return nil
	}
	if len(bulkErr.WriteErrors) == 0 {
		return ids
	}
	idx := bulkErr.WriteErrors[0].Index
	if idx > len(ids) {
		idx = len(ids)
	}
	return ids[:idx]
}
