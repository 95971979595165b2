package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/docstore/docstore-service/internal/core/docdb"
	"github.com/docstore/docstore-service/internal/infrastructure/docdb/mongodb"
)

const testNamespace = "contact.contactlist"

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestCollection_InsertMany(t *testing.T) {
	mt := newMockT(t)

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		coll := mongodb.NewCollection(mt.Coll)

		ids, err := coll.InsertMany(context.Background(), []interface{}{
			bson.D{{Key: "last_name", Value: "Ben"}},
			bson.D{{Key: "last_name", Value: "Kefi"}},
		})

		require.NoError(mt, err)
		assert.Len(mt, ids, 2)
	})

	mt.Run("rejected document keeps earlier writes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))
		coll := mongodb.NewCollection(mt.Coll)

		ids, err := coll.InsertMany(context.Background(), []interface{}{
			bson.D{{Key: "_id", Value: "a"}},
			bson.D{{Key: "_id", Value: "a"}},
			bson.D{{Key: "_id", Value: "b"}},
		})

		require.Error(mt, err)
		assert.Equal(mt, []interface{}{"a"}, ids)

		var writeErr *docdb.WriteError
		require.ErrorAs(mt, err, &writeErr)
		assert.Equal(mt, 1, writeErr.Index)
		assert.Equal(mt, 11000, writeErr.Code)
	})
}

func TestCollection_FindOne(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "first_name", Value: "Seif"},
		}))
		coll := mongodb.NewCollection(mt.Coll)

		var doc bson.D
		err := coll.FindOne(context.Background(), bson.D{{Key: "_id", Value: id}}).Decode(&doc)

		require.NoError(mt, err)
		assert.Equal(mt, bson.D{{Key: "_id", Value: id}, {Key: "first_name", Value: "Seif"}}, doc)
	})

	mt.Run("not found maps to ErrNoDocuments", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))
		coll := mongodb.NewCollection(mt.Coll)

		result := coll.FindOne(context.Background(), bson.D{{Key: "_id", Value: "missing"}})

		assert.ErrorIs(mt, result.Err(), docdb.ErrNoDocuments)
	})
}

func TestCollection_Find(t *testing.T) {
	mt := newMockT(t)

	mt.Run("decodes all documents", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "first_name", Value: "Moris"}, {Key: "age", Value: int32(26)}},
			bson.D{{Key: "first_name", Value: "Brouge"}, {Key: "age", Value: int32(40)}},
		))
		coll := mongodb.NewCollection(mt.Coll)

		cursor, err := coll.Find(context.Background(),
			bson.D{{Key: "age", Value: bson.D{{Key: "$gt", Value: 18}}}},
			&docdb.FindOptions{Limit: 10, Sort: bson.D{{Key: "age", Value: 1}}, Projection: bson.D{{Key: "email", Value: 0}}},
		)
		require.NoError(mt, err)

		var docs []bson.D
		require.NoError(mt, cursor.All(context.Background(), &docs))
		assert.Len(mt, docs, 2)
	})
	mt.Run("decodes while iterating", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "first_name", Value: "Moris"}, {Key: "age", Value: int32(26)}},
		))
		coll := mongodb.NewCollection(mt.Coll)

		cursor, err := coll.Find(context.Background(), bson.D{}, nil)
		require.NoError(mt, err)
		defer cursor.Close(context.Background())

		require.True(mt, cursor.Next(context.Background()))
		var doc struct {
			FirstName string `bson:"first_name"`
			Age       int    `bson:"age"`
		}
		require.NoError(mt, cursor.Decode(&doc))
		assert.Equal(mt, "Moris", doc.FirstName)
		assert.Equal(mt, 26, doc.Age)

		var mismatched struct {
			Age string `bson:"age"`
		}
		err = cursor.Decode(&mismatched)
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, docdb.ErrNoDocuments)
		assert.NotErrorIs(mt, err, docdb.ErrConnection)
	})
}

func TestCollection_Updates(t *testing.T) {
	mt := newMockT(t)

	mt.Run("update one", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		coll := mongodb.NewCollection(mt.Coll)

		result, err := coll.UpdateOne(context.Background(),
			bson.D{{Key: "last_name", Value: "Kefi"}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "first_name", Value: "Anis"}}}},
		)

		require.NoError(mt, err)
		assert.Equal(mt, int64(1), result.MatchedCount)
		assert.Equal(mt, int64(1), result.ModifiedCount)
	})

	mt.Run("find one and update returns value", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "name", Value: "Ahmed"},
			{Key: "age", Value: int32(20)},
		}}))
		coll := mongodb.NewCollection(mt.Coll)

		var doc bson.D
		err := coll.FindOneAndUpdate(context.Background(),
			bson.D{{Key: "name", Value: "Ahmed"}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "age", Value: 20}}}},
			&docdb.FindOneAndUpdateOptions{ReturnUpdated: true},
		).Decode(&doc)

		require.NoError(mt, err)
		assert.Equal(mt, bson.D{{Key: "name", Value: "Ahmed"}, {Key: "age", Value: int32(20)}}, doc)
	})
}

func TestCollection_DeleteMany(t *testing.T) {
	mt := newMockT(t)

	mt.Run("reports deleted count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))
		coll := mongodb.NewCollection(mt.Coll)

		result, err := coll.DeleteMany(context.Background(), bson.D{{Key: "age", Value: bson.D{{Key: "$lt", Value: 5}}}})

		require.NoError(mt, err)
		assert.Equal(mt, int64(2), result.DeletedCount)
	})
}

func TestClient_PingAndCollection(t *testing.T) {
	mt := newMockT(t)

	mt.Run("ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		client := mongodb.NewClientFromMongo(mt.Client, "contact")

		assert.NoError(mt, client.Ping(context.Background()))
		assert.Equal(mt, "contact", client.Database().Name())
		assert.Equal(mt, "contactlist", client.Collection("contactlist").Name())
	})
}

func TestNewClient_ValidatesConfig(t *testing.T) {
	ctx := context.Background()

	_, err := mongodb.NewClient(ctx, nil)
	assert.Error(t, err)

	_, err = mongodb.NewClient(ctx, &mongodb.ClientConfig{DatabaseName: "contact"})
	assert.EqualError(t, err, "mongodb URI is required")

	_, err = mongodb.NewClient(ctx, &mongodb.ClientConfig{URI: "mongodb://localhost:27017"})
	assert.EqualError(t, err, "database name is required")
}
