package demo

import (
	"context"
	"errors"

	"github.com/docstore/docstore-service/internal/core/docdb/query"
	"github.com/docstore/docstore-service/internal/domain/models"
	"github.com/docstore/docstore-service/internal/services/docstore"
)

// People works through the person model: single and bulk creation, lookups
// by field, array membership and ID, in-place edits and removals.
func People() *Scenario {
	return &Scenario{
		Name:       "people",
		Collection: models.PersonCollection,
		Steps:      peopleSteps,
	}
}

func peopleSteps(client *docstore.Client) []Step {
	people := docstore.Typed[models.Person](client, models.PersonCollection)
	var ids []interface{}

	nth := func(i int) (interface{}, error) {
		if i >= len(ids) {
			return nil, errors.New("not enough people were created")
		}
		return ids[i], nil
	}

	return []Step{
		{
			Name: "Person saved",
			Run: func(ctx context.Context) (interface{}, error) {
				saved, err := people.Insert(ctx, *models.NewPerson("John", 25, "pizza", "pasta"))
				if err != nil {
					return nil, err
				}
				return people.FindByID(ctx, saved[0])
			},
		},
		{
			Name: "People created",
			Run: func(ctx context.Context) (interface{}, error) {
				created, err := people.Insert(ctx,
					*models.NewPerson("Mary", 30, "burritos", "salad"),
					*models.NewPerson("Ahmed", 22, "burritos", "falafel"),
					*models.NewPerson("Sarah", 28, "sushi", "burritos"),
				)
				ids = created
				if err != nil {
					return nil, err
				}
				return formatIDs(created), nil
			},
		},
		{
			Name: "People named Mary",
			Run: func(ctx context.Context) (interface{}, error) {
				return people.Find(ctx, query.Where().Eq("name", "Mary"), nil)
			},
		},
		{
			Name: "Person who likes burritos",
			Run: func(ctx context.Context) (interface{}, error) {
				return people.FindOne(ctx, query.Where().Eq("favoriteFoods", "burritos"))
			},
		},
		{
			Name: "Person found by ID",
			Run: func(ctx context.Context) (interface{}, error) {
				id, err := nth(0)
				if err != nil {
					return nil, err
				}
				return people.FindByID(ctx, id)
			},
		},
		{
			Name: "Hamburger added to favorite foods",
			Run: func(ctx context.Context) (interface{}, error) {
				id, err := nth(0)
				if err != nil {
					return nil, err
				}
				return people.FindOneAndUpdate(ctx, query.ByID(id),
					query.Patch().Push("favoriteFoods", "hamburger"),
					&docstore.FindOneAndUpdateOptions{ReturnUpdated: true})
			},
		},
		{
			Name: "Ahmed's age updated",
			Run: func(ctx context.Context) (interface{}, error) {
				return people.FindOneAndUpdate(ctx, query.Where().Eq("name", "Ahmed"),
					query.Patch().Set("age", 20),
					&docstore.FindOneAndUpdateOptions{ReturnUpdated: true})
			},
		},
		{
			Name: "Person removed by ID",
			Run: func(ctx context.Context) (interface{}, error) {
				id, err := nth(1)
				if err != nil {
					return nil, err
				}
				return people.DeleteByID(ctx, id)
			},
		},
		{
			Name: "People named Mary removed",
			Run: func(ctx context.Context) (interface{}, error) {
				return client.DeleteMany(ctx, models.PersonCollection, query.Where().Eq("name", "Mary"))
			},
		},
		{
			Name: "Burrito lovers",
			Run: func(ctx context.Context) (interface{}, error) {
				return people.Find(ctx, query.Where().Eq("favoriteFoods", "burritos"), &docstore.FindOptions{
					Sort:    []string{"name"},
					Limit:   2,
					Exclude: []string{"age"},
				})
			},
		},
	}
}
