package memory

import (
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const idField = "_id"

// applyUpdate returns a modified copy of doc. Only operator updates are
// accepted, as with the driver's UpdateOne/UpdateMany.
func applyUpdate(doc, update bson.D) (bson.D, error) {
	if len(update) == 0 {
		return nil, fmt.Errorf("update document must not be empty")
	}

	out := deepCopy(doc)
	for _, op := range update {
		fields, ok := op.Value.(bson.D)
		if !ok {
			if !strings.HasPrefix(op.Key, "$") {
				return nil, fmt.Errorf("update document must contain key beginning with '$'")
			}
			return nil, fmt.Errorf("modifier %s expects a document", op.Key)
		}

		for _, f := range fields {
			var err error
			switch op.Key {
			case "$set":
				out, err = setPath(out, f.Key, f.Value)
			case "$unset":
				out = unsetPath(out, f.Key)
			case "$inc":
				out, err = applyInc(out, f.Key, f.Value)
			case "$push":
				out, err = applyPush(out, f.Key, f.Value)
			default:
				if !strings.HasPrefix(op.Key, "$") {
					return nil, fmt.Errorf("update document must contain key beginning with '$'")
				}
				return nil, fmt.Errorf("unknown modifier: %s", op.Key)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	before, _ := lookup(doc, idField)
	after, _ := lookup(out, idField)
	if !valuesEqual(before, after) {
		return nil, fmt.Errorf("performing an update on the path '_id' would modify the immutable field '_id'")
	}
	return out, nil
}

func applyInc(doc bson.D, path string, delta interface{}) (bson.D, error) {
	current, ok := lookup(doc, path)
	if !ok {
		if _, numeric := toFloat(delta); !numeric {
			return nil, fmt.Errorf("cannot increment with non-numeric argument")
		}
		return setPath(doc, path, delta)
	}
	sum, err := addNumbers(current, delta)
	if err != nil {
		return nil, err
	}
	return setPath(doc, path, sum)
}

func applyPush(doc bson.D, path string, value interface{}) (bson.D, error) {
	items := bson.A{value}
	if spec, ok := value.(bson.D); ok && len(spec) > 0 && spec[0].Key == "$each" {
		each, ok := spec[0].Value.(bson.A)
		if !ok {
			return nil, fmt.Errorf("$each requires an array")
		}
		items = each
	}

	current, ok := lookup(doc, path)
	if !ok {
		return setPath(doc, path, items)
	}
	arr, isArr := current.(bson.A)
	if !isArr {
		return nil, fmt.Errorf("the field '%s' must be an array", path)
	}
	merged := make(bson.A, 0, len(arr)+len(items))
	merged = append(merged, arr...)
	merged = append(merged, items...)
	return setPath(doc, path, merged)
}

// project applies an inclusion or exclusion projection to top-level fields.
// _id is kept unless it is excluded explicitly.
func project(doc, projection bson.D) bson.D {
	if len(projection) == 0 {
		return doc
	}

	include := false
	keepID := true
	for _, p := range projection {
		if p.Key == idField {
			keepID = truthy(p.Value)
			continue
		}
		if truthy(p.Value) {
			include = true
		}
	}

	listed := func(key string) bool {
		for _, p := range projection {
			if p.Key == key {
				return true
			}
		}
		return false
	}

	out := make(bson.D, 0, len(doc))
	for _, e := range doc {
		switch {
		case e.Key == idField:
			if keepID {
				out = append(out, e)
			}
		case include:
			if listed(e.Key) {
				out = append(out, e)
			}
		default:
			if !listed(e.Key) {
				out = append(out, e)
			}
		}
	}
	return out
}

// sortDocuments orders docs by the sort specification, keeping insertion
// order for ties.
func sortDocuments(docs []bson.D, spec bson.D) error {
	for _, s := range spec {
		dir, ok := toFloat(s.Value)
		if !ok || (dir != 1 && dir != -1) {
			return fmt.Errorf("invalid sort direction for %s: %v", s.Key, s.Value)
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, s := range spec {
			a, _ := lookup(docs[i], s.Key)
			b, _ := lookup(docs[j], s.Key)
			c := sortCompare(a, b)
			if dir, _ := toFloat(s.Value); dir < 0 {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return nil
}
