package docstore

import (
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/docstore/docstore-service/internal/core/docdb/query"
	domainerrors "github.com/docstore/docstore-service/internal/domain/errors"
	"github.com/docstore/docstore-service/internal/domain/models"
)

// toFilter accepts a *query.Filter, a bson.D or a map. nil matches everything.
func toFilter(filter interface{}) (interface{}, error) {
	switch f := filter.(type) {
	case nil:
		return bson.D{}, nil
	case *query.Filter:
		if f == nil {
			return bson.D{}, nil
		}
		return f.BSON(), nil
	case bson.D:
		if f == nil {
			return bson.D{}, nil
		}
		return f, nil
	case bson.M:
		if f == nil {
			return bson.D{}, nil
		}
		return f, nil
	case map[string]interface{}:
		if f == nil {
			return bson.D{}, nil
		}
		return f, nil
	default:
		return nil, domainerrors.NewValidationError("invalid filter", fmt.Sprintf("unsupported filter type %T", filter))
	}
}

// toUpdate turns a patch into an update document. A patch is either a
// *query.Update, an operator document ({$set: ...}) or a plain mapping of
// field to new value, which is applied with $set.
func toUpdate(patch interface{}) (bson.D, error) {
	var doc bson.D
	switch p := patch.(type) {
	case nil:
	case *query.Update:
		if p != nil {
			doc = p.BSON()
		}
	case bson.D:
		doc = p
	case bson.M, map[string]interface{}:
		converted, err := models.FromStruct(p)
		if err != nil {
			return nil, domainerrors.NewValidationError("invalid patch", err.Error())
		}
		doc = converted
	default:
		return nil, domainerrors.NewValidationError("invalid patch", fmt.Sprintf("unsupported patch type %T", patch))
	}
	if len(doc) == 0 {
		return nil, domainerrors.NewValidationError("invalid patch", "patch must not be empty")
	}

	operators := 0
	for _, e := range doc {
		if strings.HasPrefix(e.Key, "$") {
			operators++
		}
	}
	switch operators {
	case len(doc):
		return doc, nil
	case 0:
		return query.SetFields(doc).BSON(), nil
	default:
		return nil, domainerrors.NewValidationError("invalid patch", "patch mixes update operators and plain fields")
	}
}

// checkDocument validates one insert candidate. Mappings are accepted as
// they are; structs are validated against their validate tags.
func (c *Client) checkDocument(index int, doc interface{}) error {
	if doc == nil {
		return domainerrors.NewValidationError("invalid document", fmt.Sprintf("document %d is nil", index))
	}
	switch doc.(type) {
	case bson.D, bson.M, map[string]interface{}, bson.Raw:
		return nil
	}

	v := reflect.ValueOf(doc)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return domainerrors.NewValidationError("invalid document", fmt.Sprintf("document %d is nil", index))
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return domainerrors.NewValidationError("invalid document", fmt.Sprintf("document %d must be a mapping, got %T", index, doc))
	}
	if err := c.validator.Validate(doc); err != nil {
		return domainerrors.NewValidationError("invalid document", fmt.Sprintf("document %d: %s", index, err.Error()))
	}
	return nil
}

func normalizeID(id interface{}) interface{} {
	if s, ok := id.(string); ok {
		return models.ParseID(s)
	}
	return id
}
