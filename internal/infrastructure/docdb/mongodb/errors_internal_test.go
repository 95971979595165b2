package mongodb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docstore/docstore-service/internal/core/docdb"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(mongo.ErrNoDocuments), docdb.ErrNoDocuments)
	assert.ErrorIs(t, translateError(mongo.ErrClientDisconnected), docdb.ErrClientDisconnected)

	netErr := mongo.CommandError{Code: 6, Message: "host unreachable", Labels: []string{"NetworkError"}}
	translated := translateError(netErr)
	assert.ErrorIs(t, translated, docdb.ErrConnection)

	var cmdErr mongo.CommandError
	assert.True(t, errors.As(translated, &cmdErr))

	plain := errors.New("boom")
	assert.Equal(t, plain, translateError(plain))
}

func TestTranslateError_WriteException(t *testing.T) {
	err := translateError(mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Index: 0, Code: 121, Message: "Document failed validation"}},
	})

	var writeErr *docdb.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 121, writeErr.Code)
	assert.Equal(t, "Document failed validation", writeErr.Message)
}

func TestWrittenPrefix(t *testing.T) {
	ids := []interface{}{"a", "b", "c"}

	bulk := mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{{WriteError: mongo.WriteError{Index: 2}}}}
	assert.Equal(t, []interface{}{"a", "b"}, writtenPrefix(ids, bulk))

	concernOnly := mongo.BulkWriteException{WriteConcernError: &mongo.WriteConcernError{Code: 64}}
	assert.Equal(t, ids, writtenPrefix(ids, concernOnly))

	assert.Nil(t, writtenPrefix(ids, errors.New("other")))
}
