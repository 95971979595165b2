// Package query builds document filters and update patches.
package query

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter selects documents. Conditions on different fields are ANDed;
// several operators on one field are merged into a single operator document.
type Filter struct {
	conds bson.D
}

// Where starts an empty filter, which matches every document.
func Where() *Filter {
	return &Filter{conds: bson.D{}}
}

// ByID returns a filter matching the document with the given identifier.
func ByID(id interface{}) *Filter {
	return Where().Eq("_id", id)
}

// Eq matches documents whose field equals value. For array fields it
// matches when the array contains value.
func (f *Filter) Eq(field string, value interface{}) *Filter {
	return f.set(field, value)
}

// Ne matches documents whose field differs from value.
func (f *Filter) Ne(field string, value interface{}) *Filter {
	return f.op(field, "$ne", value)
}

// Gt matches documents whose field is greater than value.
func (f *Filter) Gt(field string, value interface{}) *Filter {
	return f.op(field, "$gt", value)
}

// Gte matches documents whose field is greater than or equal to value.
func (f *Filter) Gte(field string, value interface{}) *Filter {
	return f.op(field, "$gte", value)
}

// Lt matches documents whose field is less than value.
func (f *Filter) Lt(field string, value interface{}) *Filter {
	return f.op(field, "$lt", value)
}

// Lte matches documents whose field is less than or equal to value.
func (f *Filter) Lte(field string, value interface{}) *Filter {
	return f.op(field, "$lte", value)
}

// In matches documents whose field equals one of values.
func (f *Filter) In(field string, values ...interface{}) *Filter {
	return f.op(field, "$in", bson.A(values))
}

// Exists matches documents that have (or lack) the field.
func (f *Filter) Exists(field string, exists bool) *Filter {
	return f.op(field, "$exists", exists)
}

// ContainsFold matches string fields containing substr, ignoring case.
func (f *Filter) ContainsFold(field, substr string) *Filter {
	f.op(field, "$regex", regexp.QuoteMeta(substr))
	return f.op(field, "$options", "i")
}

// Matches matches string fields against a regular expression.
func (f *Filter) Matches(field string, re primitive.Regex) *Filter {
	f.op(field, "$regex", re.Pattern)
	if re.Options != "" {
		f.op(field, "$options", re.Options)
	}
	return f
}

// BSON returns the filter document.
func (f *Filter) BSON() bson.D {
	if f == nil {
		return bson.D{}
	}
	return f.conds
}

// MarshalBSON lets a *Filter be passed wherever the driver expects a filter.
func (f *Filter) MarshalBSON() ([]byte, error) {
	return bson.Marshal(f.BSON())
}

// set records an equality condition. When the field already carries
// operators, the equality joins them as $eq.
func (f *Filter) set(field string, value interface{}) *Filter {
	for i, e := range f.conds {
		if e.Key != field {
			continue
		}
		if ops, ok := operatorDoc(e.Value); ok {
			f.conds[i].Value = withOperator(ops, "$eq", value)
		} else {
			f.conds[i].Value = value
		}
		return f
	}
	f.conds = append(f.conds, bson.E{Key: field, Value: value})
	return f
}

// op adds an operator to the field's condition. An existing equality is
// rewritten as $eq first.
func (f *Filter) op(field, operator string, value interface{}) *Filter {
	for i, e := range f.conds {
		if e.Key != field {
			continue
		}
		ops, ok := operatorDoc(e.Value)
		if !ok {
			ops = bson.D{{Key: "$eq", Value: e.Value}}
		}
		f.conds[i].Value = withOperator(ops, operator, value)
		return f
	}
	f.conds = append(f.conds, bson.E{Key: field, Value: bson.D{{Key: operator, Value: value}}})
	return f
}

// operatorDoc reports whether v is an operator document such as
// {$gt: 1, $lt: 5}. Plain embedded documents are equality values.
func operatorDoc(v interface{}) (bson.D, bool) {
	d, ok := v.(bson.D)
	if !ok || len(d) == 0 {
		return nil, false
	}
	for _, e := range d {
		if !strings.HasPrefix(e.Key, "$") {
			return nil, false
		}
	}
	return d, true
}

// withOperator returns a copy of ops with operator set to value.
func withOperator(ops bson.D, operator string, value interface{}) bson.D {
	out := make(bson.D, 0, len(ops)+1)
	replaced := false
	for _, e := range ops {
		if e.Key == operator {
			e.Value = value
			replaced = true
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, bson.E{Key: operator, Value: value})
	}
	return out
}
