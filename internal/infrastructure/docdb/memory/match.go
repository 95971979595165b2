package memory

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// matches evaluates a normalized filter against a document. Top-level
// conditions are ANDed; $and and $or combine sub-filters.
func matches(doc, filter bson.D) (bool, error) {
	for _, cond := range filter {
		var (
			ok  bool
			err error
		)
		switch cond.Key {
		case "$and":
			ok, err = matchAll(doc, cond.Value, true)
		case "$or":
			ok, err = matchAll(doc, cond.Value, false)
		default:
			if strings.HasPrefix(cond.Key, "$") {
				return false, fmt.Errorf("unknown top level operator: %s", cond.Key)
			}
			ok, err = matchField(doc, cond.Key, cond.Value)
		}
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchAll(doc bson.D, clauses interface{}, all bool) (bool, error) {
	list, ok := clauses.(bson.A)
	if !ok || len(list) == 0 {
		return false, fmt.Errorf("$and/$or must be a nonempty array")
	}
	for _, c := range list {
		sub, ok := c.(bson.D)
		if !ok {
			return false, fmt.Errorf("$and/$or entries must be documents")
		}
		hit, err := matches(doc, sub)
		if err != nil {
			return false, err
		}
		if hit != all {
			return hit, nil
		}
	}
	return all, nil
}

func isOperatorDoc(v interface{}) (bson.D, bool) {
	d, ok := v.(bson.D)
	if !ok || len(d) == 0 {
		return nil, false
	}
	return d, strings.HasPrefix(d[0].Key, "$")
}

func matchField(doc bson.D, field string, cond interface{}) (bool, error) {
	value, present := lookup(doc, field)

	ops, isOps := isOperatorDoc(cond)
	if !isOps {
		if re, ok := cond.(primitive.Regex); ok {
			return matchRegex(value, re.Pattern, re.Options)
		}
		return matchEq(value, present, cond), nil
	}

	for _, op := range ops {
		var (
			ok  bool
			err error
		)
		switch op.Key {
		case "$eq":
			ok = matchEq(value, present, op.Value)
		case "$ne":
			ok = !matchEq(value, present, op.Value)
		case "$gt":
			ok = matchCompare(value, present, op.Value, func(c int) bool { return c > 0 })
		case "$gte":
			ok = matchCompare(value, present, op.Value, func(c int) bool { return c >= 0 })
		case "$lt":
			ok = matchCompare(value, present, op.Value, func(c int) bool { return c < 0 })
		case "$lte":
			ok = matchCompare(value, present, op.Value, func(c int) bool { return c <= 0 })
		case "$in":
			ok, err = matchIn(value, present, op.Value)
		case "$nin":
			ok, err = matchIn(value, present, op.Value)
			ok = !ok
		case "$exists":
			ok = present == truthy(op.Value)
		case "$regex":
			ok, err = matchRegexOp(value, op.Value, regexOptions(ops))
		case "$options":
			ok = true
		default:
			return false, fmt.Errorf("unknown operator: %s", op.Key)
		}
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// matchEq implements equality, including membership for array fields and
// null matching a missing field.
func matchEq(value interface{}, present bool, want interface{}) bool {
	if !present {
		return want == nil
	}
	if valuesEqual(value, want) {
		return true
	}
	if arr, ok := value.(bson.A); ok {
		for _, elem := range arr {
			if valuesEqual(elem, want) {
				return true
			}
		}
	}
	return false
}

func matchCompare(value interface{}, present bool, bound interface{}, accept func(int) bool) bool {
	if !present {
		return false
	}
	if c, ok := compareValues(value, bound); ok && accept(c) {
		return true
	}
	if arr, ok := value.(bson.A); ok {
		for _, elem := range arr {
			if c, ok := compareValues(elem, bound); ok && accept(c) {
				return true
			}
		}
	}
	return false
}

func matchIn(value interface{}, present bool, candidates interface{}) (bool, error) {
	list, ok := candidates.(bson.A)
	if !ok {
		return false, fmt.Errorf("$in/$nin needs an array")
	}
	for _, want := range list {
		if matchEq(value, present, want) {
			return true, nil
		}
	}
	return false, nil
}

func regexOptions(ops bson.D) string {
	for _, op := range ops {
		if op.Key == "$options" {
			if s, ok := op.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

func matchRegexOp(value interface{}, pattern interface{}, options string) (bool, error) {
	switch p := pattern.(type) {
	case string:
		return matchRegex(value, p, options)
	case primitive.Regex:
		if options == "" {
			options = p.Options
		}
		return matchRegex(value, p.Pattern, options)
	default:
		return false, fmt.Errorf("$regex has to be a string")
	}
}

func matchRegex(value interface{}, pattern, options string) (bool, error) {
	flags := ""
	for _, o := range options {
		switch o {
		case 'i', 'm', 's':
			flags += string(o)
		}
	}
	if flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("invalid regular expression: %w", err)
	}

	switch v := value.(type) {
	case string:
		return re.MatchString(v), nil
	case bson.A:
		for _, elem := range v {
			if s, ok := elem.(string); ok && re.MatchString(s) {
				return true, nil
			}
		}
	}
	return false, nil
}

func truthy(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case nil:
		return false
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return true
}
