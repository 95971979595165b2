package memory

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// normalize round-trips v through BSON so that every stored or compared
// value uses the driver's canonical Go types (bson.D, bson.A, int32, ...).
func normalize(v interface{}) (bson.D, error) {
	if v == nil {
		return bson.D{}, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return doc, nil
}

// deepCopy returns an independent copy of a normalized document.
func deepCopy(doc bson.D) bson.D {
	out, err := normalize(doc)
	if err != nil {
		// Normalized documents always round-trip.
		panic(err)
	}
	return out
}

// decodeInto decodes a document into v the way the driver would.
func decodeInto(doc bson.D, v interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return bson.Unmarshal(raw, v)
}

// lookup resolves a possibly dotted path inside a document.
func lookup(doc bson.D, path string) (interface{}, bool) {
	head, rest, nested := strings.Cut(path, ".")
	for _, e := range doc {
		if e.Key != head {
			continue
		}
		if !nested {
			return e.Value, true
		}
		sub, ok := e.Value.(bson.D)
		if !ok {
			return nil, false
		}
		return lookup(sub, rest)
	}
	return nil, false
}

// setPath assigns value at a possibly dotted path, creating intermediate
// documents as needed.
func setPath(doc bson.D, path string, value interface{}) (bson.D, error) {
	head, rest, nested := strings.Cut(path, ".")
	for i, e := range doc {
		if e.Key != head {
			continue
		}
		if !nested {
			doc[i].Value = value
			return doc, nil
		}
		sub, ok := e.Value.(bson.D)
		if !ok {
			return nil, fmt.Errorf("cannot create field %q in element {%s: %v}", rest, head, e.Value)
		}
		updated, err := setPath(sub, rest, value)
		if err != nil {
			return nil, err
		}
		doc[i].Value = updated
		return doc, nil
	}
	if !nested {
		return append(doc, bson.E{Key: head, Value: value}), nil
	}
	sub, err := setPath(bson.D{}, rest, value)
	if err != nil {
		return nil, err
	}
	return append(doc, bson.E{Key: head, Value: sub}), nil
}

// unsetPath removes the field at a possibly dotted path.
func unsetPath(doc bson.D, path string) bson.D {
	head, rest, nested := strings.Cut(path, ".")
	for i, e := range doc {
		if e.Key != head {
			continue
		}
		if !nested {
			return append(doc[:i:i], doc[i+1:]...)
		}
		if sub, ok := e.Value.(bson.D); ok {
			doc[i].Value = unsetPath(sub, rest)
		}
		return doc
	}
	return doc
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

// typeRank orders BSON types the way the server sorts mixed values.
func typeRank(v interface{}) int {
	switch v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return 1
	case int32, int64, int, float64, float32, primitive.Decimal128:
		return 2
	case string, primitive.Symbol:
		return 3
	case bson.D, bson.M:
		return 4
	case bson.A:
		return 5
	case primitive.Binary:
		return 6
	case primitive.ObjectID:
		return 7
	case bool:
		return 8
	case primitive.DateTime:
		return 9
	case primitive.Timestamp:
		return 10
	case primitive.Regex:
		return 11
	default:
		return 12
	}
}

// compareValues compares two values of the same type bracket. The second
// result is false when the values cannot be ordered against each other.
func compareValues(a, b interface{}) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		case math.IsNaN(fa) || math.IsNaN(fb):
			return 0, false
		default:
			return 0, true
		}
	}

	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(va, vb), true
	case primitive.ObjectID:
		vb, ok := b.(primitive.ObjectID)
		if !ok {
			return 0, false
		}
		return bytes.Compare(va[:], vb[:]), true
	case primitive.DateTime:
		vb, ok := b.(primitive.DateTime)
		if !ok {
			return 0, false
		}
		return compareInt64(int64(va), int64(vb)), true
	case bool:
		vb, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case va == vb:
			return 0, true
		case !va:
			return -1, true
		default:
			return 1, true
		}
	case nil:
		if b == nil {
			return 0, true
		}
		return 0, false
	}
	return 0, false
}

// sortCompare totally orders any two values: by type bracket first, then
// by value within the bracket.
func sortCompare(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return compareInt64(int64(ra), int64(rb))
	}
	if c, ok := compareValues(a, b); ok {
		return c
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// valuesEqual reports BSON equality: numbers compare by value regardless
// of their width.
func valuesEqual(a, b interface{}) bool {
	if _, ok := toFloat(a); ok {
		c, ok := compareValues(a, b)
		return ok && c == 0
	}
	switch va := a.(type) {
	case bson.A:
		vb, ok := b.(bson.A)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !valuesEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	case bson.D:
		vb, ok := b.(bson.D)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if va[i].Key != vb[i].Key || !valuesEqual(va[i].Value, vb[i].Value) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// addNumbers implements $inc arithmetic, widening only when needed.
func addNumbers(a, b interface{}) (interface{}, error) {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if !okA || !okB {
		return nil, fmt.Errorf("cannot apply $inc to non-numeric value %v", a)
	}
	_, aFloat := a.(float64)
	_, bFloat := b.(float64)
	if aFloat || bFloat {
		return fa + fb, nil
	}
	sum := int64(fa) + int64(fb)
	_, a64 := a.(int64)
	_, b64 := b.(int64)
	if !a64 && !b64 && sum >= math.MinInt32 && sum <= math.MaxInt32 {
		return int32(sum), nil
	}
	return sum, nil
}
