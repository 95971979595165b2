package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docstore/docstore-service/internal/core/docdb"
	"github.com/docstore/docstore-service/internal/core/docdb/query"
	"github.com/docstore/docstore-service/internal/infrastructure/docdb/memory"
)

type contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	LastName  string             `bson:"last_name"`
	FirstName string             `bson:"first_name"`
	Age       int                `bson:"age"`
}

func seedContacts(t *testing.T) (docdb.Collection, []interface{}) {
	t.Helper()
	coll := memory.NewClient("contact").Collection("contactlist")
	ids, err := coll.InsertMany(context.Background(), []interface{}{
		contact{LastName: "Ben Lahmer", FirstName: "Fares", Age: 26},
		contact{LastName: "Kefi", FirstName: "Seif", Age: 15},
		contact{LastName: "Fatnassi", FirstName: "Sarra", Age: 40},
		contact{LastName: "Ben Yahia", FirstName: "Rym", Age: 4},
		contact{LastName: "Cherif", FirstName: "Sami", Age: 3},
	})
	require.NoError(t, err)
	require.Len(t, ids, 5)
	return coll, ids
}

func TestInsertMany_AssignsIDsInOrder(t *testing.T) {
	coll, ids := seedContacts(t)
	ctx := context.Background()

	for _, id := range ids {
		assert.IsType(t, primitive.ObjectID{}, id)
	}

	var first contact
	require.NoError(t, coll.FindOne(ctx, query.ByID(ids[0])).Decode(&first))
	assert.Equal(t, "Fares", first.FirstName)
	assert.Equal(t, ids[0], first.ID)
}

func TestInsertMany_DuplicateKeepsPrefix(t *testing.T) {
	ctx := context.Background()
	coll := memory.NewClient("db").Collection("things")

	_, err := coll.InsertOne(ctx, bson.D{{Key: "_id", Value: "b"}})
	require.NoError(t, err)

	ids, err := coll.InsertMany(ctx, []interface{}{
		bson.D{{Key: "_id", Value: "a"}},
		bson.D{{Key: "_id", Value: "b"}},
		bson.D{{Key: "_id", Value: "c"}},
	})
	require.Error(t, err)

	var writeErr *docdb.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 1, writeErr.Index)
	assert.Equal(t, 11000, writeErr.Code)
	assert.Equal(t, []interface{}{"a"}, ids)

	count, err := coll.CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFind_ComparisonAndContainsFold(t *testing.T) {
	coll, _ := seedContacts(t)
	ctx := context.Background()

	cursor, err := coll.Find(ctx, query.Where().Gt("age", 18), nil)
	require.NoError(t, err)
	var adults []contact
	require.NoError(t, cursor.All(ctx, &adults))
	assert.Len(t, adults, 2)

	cursor, err = coll.Find(ctx, query.Where().Gt("age", 18).ContainsFold("first_name", "AR"), nil)
	require.NoError(t, err)
	var named []contact
	require.NoError(t, cursor.All(ctx, &named))
	require.Len(t, named, 2)
	assert.Equal(t, "Fares", named[0].FirstName)
	assert.Equal(t, "Sarra", named[1].FirstName)
}

func TestFind_SortLimitProjection(t *testing.T) {
	coll, _ := seedContacts(t)
	ctx := context.Background()

	cursor, err := coll.Find(ctx, bson.D{}, &docdb.FindOptions{
		Sort:       bson.D{{Key: "age", Value: -1}},
		Limit:      2,
		Projection: bson.D{{Key: "age", Value: 0}},
	})
	require.NoError(t, err)

	var docs []bson.M
	require.NoError(t, cursor.All(ctx, &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "Sarra", docs[0]["first_name"])
	assert.Equal(t, "Fares", docs[1]["first_name"])
	for _, d := range docs {
		assert.NotContains(t, d, "age")
		assert.Contains(t, d, "_id")
	}
}

func TestFind_ArrayMembership(t *testing.T) {
	ctx := context.Background()
	coll := memory.NewClient("db").Collection("people")
	_, err := coll.InsertMany(ctx, []interface{}{
		bson.D{{Key: "name", Value: "Mary"}, {Key: "favoriteFoods", Value: bson.A{"burritos", "salad"}}},
		bson.D{{Key: "name", Value: "John"}, {Key: "favoriteFoods", Value: bson.A{"pizza"}}},
	})
	require.NoError(t, err)

	var got bson.M
	require.NoError(t, coll.FindOne(ctx, query.Where().Eq("favoriteFoods", "burritos")).Decode(&got))
	assert.Equal(t, "Mary", got["name"])
}

func TestFindOne_NoDocuments(t *testing.T) {
	coll, _ := seedContacts(t)

	res := coll.FindOne(context.Background(), query.ByID(primitive.NewObjectID()))
	assert.ErrorIs(t, res.Err(), docdb.ErrNoDocuments)
}

func TestUpdateOne_OnlyFirstMatchAndIdempotent(t *testing.T) {
	coll, ids := seedContacts(t)
	ctx := context.Background()
	filter := query.Where().Eq("last_name", "Kefi").Eq("first_name", "Seif")

	res, err := coll.UpdateOne(ctx, filter, query.Patch().Set("first_name", "Anis"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(1), res.ModifiedCount)

	var updated contact
	require.NoError(t, coll.FindOne(ctx, query.ByID(ids[1])).Decode(&updated))
	assert.Equal(t, "Anis", updated.FirstName)
	assert.Equal(t, "Kefi", updated.LastName)
	assert.Equal(t, 15, updated.Age)

	res, err = coll.UpdateOne(ctx, query.ByID(ids[1]), query.Patch().Set("first_name", "Anis"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(0), res.ModifiedCount)
}

func TestUpdate_RejectsReplacementAndIDChange(t *testing.T) {
	coll, ids := seedContacts(t)
	ctx := context.Background()

	_, err := coll.UpdateOne(ctx, query.ByID(ids[0]), bson.D{{Key: "age", Value: 1}})
	assert.Error(t, err)

	_, err = coll.UpdateOne(ctx, query.ByID(ids[0]), query.Patch().Set("_id", "other"))
	assert.Error(t, err)
}

func TestFindOneAndUpdate_ReturnsBeforeOrAfter(t *testing.T) {
	coll, ids := seedContacts(t)
	ctx := context.Background()

	var before contact
	require.NoError(t, coll.FindOneAndUpdate(ctx, query.ByID(ids[2]), query.Patch().Inc("age", 1), nil).Decode(&before))
	assert.Equal(t, 40, before.Age)

	var after contact
	require.NoError(t, coll.FindOneAndUpdate(ctx, query.ByID(ids[2]), query.Patch().Set("age", 20),
		&docdb.FindOneAndUpdateOptions{ReturnUpdated: true}).Decode(&after))
	assert.Equal(t, 20, after.Age)

	res := coll.FindOneAndUpdate(ctx, query.Where().Eq("first_name", "Nobody"), query.Patch().Set("age", 1), nil)
	assert.ErrorIs(t, res.Err(), docdb.ErrNoDocuments)
}

func TestPush_AppendsToArray(t *testing.T) {
	ctx := context.Background()
	coll := memory.NewClient("db").Collection("people")
	id, err := coll.InsertOne(ctx, bson.D{{Key: "name", Value: "John"}, {Key: "favoriteFoods", Value: bson.A{"pizza"}}})
	require.NoError(t, err)

	_, err = coll.UpdateOne(ctx, query.ByID(id), query.Patch().Push("favoriteFoods", "hamburger"))
	require.NoError(t, err)

	var got struct {
		FavoriteFoods []string `bson:"favoriteFoods"`
	}
	require.NoError(t, coll.FindOne(ctx, query.ByID(id)).Decode(&got))
	assert.Equal(t, []string{"pizza", "hamburger"}, got.FavoriteFoods)
}

func TestDeleteMany_RemovesAllAndOnlyMatches(t *testing.T) {
	coll, _ := seedContacts(t)
	ctx := context.Background()

	res, err := coll.DeleteMany(ctx, query.Where().Lt("age", 5))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.DeletedCount)

	res, err = coll.DeleteMany(ctx, query.Where().Lt("age", 5))
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)

	count, err := coll.CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestFindOneAndDelete(t *testing.T) {
	coll, ids := seedContacts(t)
	ctx := context.Background()

	var removed contact
	require.NoError(t, coll.FindOneAndDelete(ctx, query.ByID(ids[3])).Decode(&removed))
	assert.Equal(t, "Rym", removed.FirstName)

	assert.ErrorIs(t, coll.FindOneAndDelete(ctx, query.ByID(ids[3])).Err(), docdb.ErrNoDocuments)
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	coll, ids := seedContacts(t)
	ctx := context.Background()

	var doc bson.D
	require.NoError(t, coll.FindOne(ctx, query.ByID(ids[0])).Decode(&doc))
	doc[1].Value = "mutated"

	var again contact
	require.NoError(t, coll.FindOne(ctx, query.ByID(ids[0])).Decode(&again))
	assert.Equal(t, "Ben Lahmer", again.LastName)
}

func TestClient_CloseAndListCollections(t *testing.T) {
	ctx := context.Background()
	client := memory.NewClient("db")
	require.NoError(t, client.Ping(ctx))

	_, err := client.Collection("b").InsertOne(ctx, bson.D{{Key: "x", Value: 1}})
	require.NoError(t, err)
	_, err = client.Collection("a").InsertOne(ctx, bson.D{{Key: "x", Value: 1}})
	require.NoError(t, err)

	names, err := client.Database().ListCollectionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, client.Collection("a").Drop(ctx))
	names, err = client.Database().ListCollectionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)

	require.NoError(t, client.Close(ctx))
	assert.ErrorIs(t, client.Ping(ctx), docdb.ErrClientDisconnected)
	assert.ErrorIs(t, client.Close(ctx), docdb.ErrClientDisconnected)

	_, err = client.Collection("b").Find(ctx, bson.D{}, nil)
	assert.ErrorIs(t, err, docdb.ErrClientDisconnected)
}
