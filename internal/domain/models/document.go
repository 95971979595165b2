// Package models contains domain models for the docstore service.
package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the name of the store-assigned identifier field.
const IDField = "_id"

// Document is a schema-less record: an ordered list of field/value pairs.
// The store adds an _id field on insert when the document has none.
type Document = bson.D

// Lookup returns the value of a top-level field.
func Lookup(doc Document, field string) (interface{}, bool) {
	for _, e := range doc {
		if e.Key == field {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of a top-level field, appending it when absent.
func Set(doc Document, field string, value interface{}) Document {
	for i, e := range doc {
		if e.Key == field {
			doc[i].Value = value
			return doc
		}
	}
	return append(doc, bson.E{Key: field, Value: value})
}

// Without returns a copy of doc with the named fields removed.
func Without(doc Document, fields ...string) Document {
	out := make(Document, 0, len(doc))
	for _, e := range doc {
		if !contains(fields, e.Key) {
			out = append(out, e)
		}
	}
	return out
}

// DocumentID returns the _id of a document, or nil when it has none.
func DocumentID(doc Document) interface{} {
	id, _ := Lookup(doc, IDField)
	return id
}

// ParseID converts an external identifier into the form the store uses:
// 24-character hex strings become ObjectIDs, anything else is kept as is.
func ParseID(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// FormatID renders a store identifier as a string.
func FormatID(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// FromStruct converts a typed model into a Document using its bson tags.
func FromStruct(v interface{}) (Document, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	var doc Document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %T: %w", v, err)
	}
	return doc, nil
}

// ToStruct decodes a Document into a typed model.
func ToStruct(doc Document, v interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := bson.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document into %T: %w", v, err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
