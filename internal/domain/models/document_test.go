package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docstore/docstore-service/internal/domain/models"
)

func TestLookupAndSet(t *testing.T) {
	doc := models.Document{{Key: "name", Value: "Mary"}, {Key: "age", Value: 30}}

	v, ok := models.Lookup(doc, "age")
	assert.True(t, ok)
	assert.Equal(t, 30, v)

	_, ok = models.Lookup(doc, "email")
	assert.False(t, ok)

	doc = models.Set(doc, "age", 31)
	doc = models.Set(doc, "email", "mary@example.com")
	assert.Equal(t, models.Document{
		{Key: "name", Value: "Mary"},
		{Key: "age", Value: 31},
		{Key: "email", Value: "mary@example.com"},
	}, doc)
}

func TestWithout(t *testing.T) {
	doc := models.Document{{Key: "_id", Value: 1}, {Key: "name", Value: "Sarah"}, {Key: "age", Value: 28}}

	assert.Equal(t, models.Document{{Key: "_id", Value: 1}, {Key: "name", Value: "Sarah"}}, models.Without(doc, "age"))
	assert.Len(t, doc, 3)
}

func TestParseAndFormatID(t *testing.T) {
	oid := primitive.NewObjectID()

	assert.Equal(t, oid, models.ParseID(oid.Hex()))
	assert.Equal(t, "custom-id", models.ParseID("custom-id"))

	assert.Equal(t, oid.Hex(), models.FormatID(oid))
	assert.Equal(t, "custom-id", models.FormatID("custom-id"))
	assert.Equal(t, "42", models.FormatID(int32(42)))
	assert.Equal(t, "", models.FormatID(nil))
}

func TestFromStructAndBack(t *testing.T) {
	p := models.NewPerson("John", 25, "pizza", "pasta")

	doc, err := models.FromStruct(p)
	require.NoError(t, err)

	_, hasID := models.Lookup(doc, models.IDField)
	assert.False(t, hasID, "zero ObjectID must be omitted")

	name, _ := models.Lookup(doc, "name")
	assert.Equal(t, "John", name)

	foods, _ := models.Lookup(doc, "favoriteFoods")
	assert.Equal(t, bson.A{"pizza", "pasta"}, foods)

	var back models.Person
	require.NoError(t, models.ToStruct(doc, &back))
	assert.Equal(t, *p, back)
}

func TestContact_OmitsMissingEmail(t *testing.T) {
	doc, err := models.FromStruct(models.Contact{LastName: "Alex", FirstName: "Brown", Age: 4})
	require.NoError(t, err)

	_, ok := models.Lookup(doc, "email")
	assert.False(t, ok)
}
