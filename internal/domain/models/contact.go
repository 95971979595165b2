package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ContactCollection is the collection contacts are stored in.
const ContactCollection = "contactlist"

// Contact is an entry of the contact list. Email is optional: some contacts
// are stored without it.
type Contact struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LastName  string             `json:"last_name" bson:"last_name" validate:"required"`
	FirstName string             `json:"first_name" bson:"first_name" validate:"required"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Age       int                `json:"age" bson:"age" validate:"gte=0"`
}
