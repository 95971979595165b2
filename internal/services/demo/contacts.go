package demo

import (
	"context"
	"errors"

	"github.com/docstore/docstore-service/internal/core/docdb/query"
	"github.com/docstore/docstore-service/internal/domain/models"
	"github.com/docstore/docstore-service/internal/services/docstore"
)

// ContactsDatabase is the database the contacts scenario runs against.
const ContactsDatabase = "contact"

// SeedContacts returns the contacts inserted by the contacts scenario.
func SeedContacts() []interface{} {
	return []interface{}{
		&models.Contact{LastName: "Ben", FirstName: "Moris", Email: "jgarang390@gmail.com", Age: 26},
		&models.Contact{LastName: "Kefi", FirstName: "Seif", Email: "kefi@gmail.com", Age: 15},
		&models.Contact{LastName: "Emilie", FirstName: "Brouge", Email: "emilie.b@gmail.com", Age: 40},
		&models.Contact{LastName: "Alex", FirstName: "Brown", Age: 4},
		&models.Contact{LastName: "Denzel", FirstName: "Washington", Age: 3},
	}
}

// Contacts fills the contact list, queries it, renames one contact and
// removes the young ones.
func Contacts() *Scenario {
	return &Scenario{
		Name:       "contacts",
		Database:   ContactsDatabase,
		Collection: models.ContactCollection,
		Steps:      contactSteps,
	}
}

func contactSteps(client *docstore.Client) []Step {
	coll := models.ContactCollection
	var all []models.Document

	return []Step{
		{
			Name: "Contacts inserted",
			Run: func(ctx context.Context) (interface{}, error) {
				ids, err := client.InsertMany(ctx, coll, SeedContacts())
				if err != nil {
					return nil, err
				}
				return formatIDs(ids), nil
			},
		},
		{
			Name: "All contacts",
			Run: func(ctx context.Context) (interface{}, error) {
				docs, err := client.FindAll(ctx, coll)
				all = docs
				return docs, err
			},
		},
		{
			Name: "Contact found by ID",
			Run: func(ctx context.Context) (interface{}, error) {
				if len(all) == 0 {
					return nil, errors.New("contact list is empty")
				}
				return client.FindByID(ctx, coll, models.DocumentID(all[0]))
			},
		},
		{
			Name: "Contacts with age > 18",
			Run: func(ctx context.Context) (interface{}, error) {
				return findDocuments(ctx, client, coll, query.Where().Gt("age", 18), nil)
			},
		},
		{
			Name: "Contacts with age > 18 and name containing 'ah'",
			Run: func(ctx context.Context) (interface{}, error) {
				filter := query.Where().Gt("age", 18).ContainsFold("first_name", "ah")
				return findDocuments(ctx, client, coll, filter, nil)
			},
		},
		{
			Name: "Kefi Seif renamed to Anis",
			Run: func(ctx context.Context) (interface{}, error) {
				filter := query.Where().Eq("last_name", "Kefi").Eq("first_name", "Seif")
				return client.UpdateOne(ctx, coll, filter, query.Patch().Set("first_name", "Anis"))
			},
		},
		{
			Name: "Contacts younger than 5 deleted",
			Run: func(ctx context.Context) (interface{}, error) {
				return client.DeleteMany(ctx, coll, query.Where().Lt("age", 5))
			},
		},
		{
			Name: "Updated contact list",
			Run: func(ctx context.Context) (interface{}, error) {
				return client.FindAll(ctx, coll)
			},
		},
	}
}

func findDocuments(ctx context.Context, client *docstore.Client, coll string, filter interface{}, opts *docstore.FindOptions) ([]models.Document, error) {
	cursor, err := client.Find(ctx, coll, filter, opts)
	if err != nil {
		return nil, err
	}
	return cursor.Documents(ctx)
}

func formatIDs(ids []interface{}) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.FormatID(id))
	}
	return out
}
