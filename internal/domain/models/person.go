package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PersonCollection is the collection people are stored in.
const PersonCollection = "people"

// Person is a person with a list of favorite foods.
type Person struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Age           int                `json:"age,omitempty" bson:"age,omitempty" validate:"gte=0"`
	FavoriteFoods []string           `json:"favoriteFoods" bson:"favoriteFoods" validate:"dive,required"`
}

// NewPerson creates a new person.
func NewPerson(name string, age int, favoriteFoods ...string) *Person {
	if favoriteFoods == nil {
		favoriteFoods = []string{}
	}
	return &Person{
		Name:          name,
		Age:           age,
		FavoriteFoods: favoriteFoods,
	}
}
