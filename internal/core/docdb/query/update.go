package query

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Update describes changes applied to matched documents.
type Update struct {
	set   bson.D
	unset bson.D
	inc   bson.D
	push  bson.D
}

// Patch starts an empty update.
func Patch() *Update {
	return &Update{}
}

// SetFields builds an update that sets every field of fields.
func SetFields(fields bson.D) *Update {
	u := Patch()
	for _, e := range fields {
		u.Set(e.Key, e.Value)
	}
	return u
}

// Set assigns value to field.
func (u *Update) Set(field string, value interface{}) *Update {
	u.set = append(u.set, bson.E{Key: field, Value: value})
	return u
}

// Unset removes field.
func (u *Update) Unset(field string) *Update {
	u.unset = append(u.unset, bson.E{Key: field, Value: ""})
	return u
}

// Inc increments a numeric field by delta.
func (u *Update) Inc(field string, delta interface{}) *Update {
	u.inc = append(u.inc, bson.E{Key: field, Value: delta})
	return u
}

// Push appends value to an array field.
func (u *Update) Push(field string, value interface{}) *Update {
	u.push = append(u.push, bson.E{Key: field, Value: value})
	return u
}

// IsEmpty reports whether the update changes nothing.
func (u *Update) IsEmpty() bool {
	return u == nil || len(u.set)+len(u.unset)+len(u.inc)+len(u.push) == 0
}

// BSON returns the update document.
func (u *Update) BSON() bson.D {
	out := bson.D{}
	if u == nil {
		return out
	}
	for _, part := range []struct {
		op     string
		fields bson.D
	}{
		{"$set", u.set},
		{"$unset", u.unset},
		{"$inc", u.inc},
		{"$push", u.push},
	} {
		if len(part.fields) > 0 {
			out = append(out, bson.E{Key: part.op, Value: part.fields})
		}
	}
	return out
}

// MarshalBSON lets an *Update be passed wherever the driver expects an update.
func (u *Update) MarshalBSON() ([]byte, error) {
	return bson.Marshal(u.BSON())
}
