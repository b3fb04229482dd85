package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of date fields.
const DateLayout = "2006-01-02"

// Kind is the value type of a resource field.
type Kind int

const (
	KindString Kind = iota
	KindText
	KindURL
	KindDate
	KindBool
	KindInt
	KindList
	KindMedia // URL of an asset, usually one we uploaded
)

type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Schema describes one portfolio collection. A single generic resource
// service and handler are configured by it.
type Schema struct {
	// Collection is the route segment and storage collection, e.g. "social-links".
	Collection string
	// Singular names one record in messages and the by-id route, e.g. "socialLink".
	Singular string
	// AggregateKey is the property in the portfolio aggregate.
	AggregateKey string

	Fields []Field

	// SortBy is a date field to order by, newest first. Empty orders by
	// creation time.
	SortBy string

	// UniqueField must be globally unique across the collection.
	UniqueField string
	// OnePerOwner allows at most one record per owner.
	OnePerOwner bool
	// OpenCreate lets any authenticated user create a record on someone
	// else's portfolio. The creator is recorded as the author.
	OpenCreate bool
}

// ByIDSegment is the path segment of the get-by-id route,
// e.g. "bysociallinkid".
func (s Schema) ByIDSegment() string {
	return "by" + strings.ToLower(s.Singular) + "id"
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// MediaFields lists the fields that may carry an uploaded file.
func (s Schema) MediaFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Kind == KindMedia {
			out = append(out, f.Name)
		}
	}
	return out
}

// UniqueKey returns the secondary key enforced by the store, or "" when the
// collection has none.
func (s Schema) UniqueKey(ownerID string, values map[string]any) string {
	switch {
	case s.OnePerOwner:
		return ownerID
	case s.UniqueField != "":
		v, _ := values[s.UniqueField].(string)
		return strings.ToLower(v)
	}
	return ""
}

// ValidationError reports missing required fields and values that could
// not be coerced to their kind.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return "Missing required fields: " + strings.Join(e.Missing, ", ")
	default:
		return "Invalid fields: " + strings.Join(e.Invalid, ", ")
	}
}

// Details lists every problem, one line per field.
func (e *ValidationError) Details() []string {
	out := make([]string, 0, len(e.Missing)+len(e.Invalid))
	for _, f := range e.Missing {
		out = append(out, f+" is required")
	}
	for _, f := range e.Invalid {
		out = append(out, f+" has an invalid value")
	}
	return out
}

// Merge applies input on top of prev and validates the result. Keys that
// are not schema fields are ignored. An explicit null or empty string
// clears an optional field. Lists are replaced wholesale.
func (s Schema) Merge(prev, input map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.Fields))
	for k, v := range prev {
		if _, ok := s.Field(k); ok {
			out[k] = v
		}
	}

	verr := &ValidationError{}
	for _, f := range s.Fields {
		raw, ok := input[f.Name]
		if !ok {
			continue
		}
		v, err := coerce(f.Kind, raw)
		if err != nil {
			verr.Invalid = append(verr.Invalid, f.Name)
			continue
		}
		if v == nil {
			delete(out, f.Name)
			continue
		}
		out[f.Name] = v
	}

	for _, f := range s.Fields {
		if f.Required && blank(out[f.Name]) {
			verr.Missing = append(verr.Missing, f.Name)
		}
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return nil, verr
	}
	return out, nil
}

func blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	}
	return false
}

// coerce converts a JSON or form value to the canonical Go type of kind.
// A nil result means "clear".
func coerce(kind Kind, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	switch kind {
	case KindString, KindText, KindURL, KindMedia:
		s, err := asString(raw)
		if err != nil || s == "" {
			return nil, err
		}
		return s, nil

	case KindDate:
		s, err := asString(raw)
		if err != nil || s == "" {
			return nil, err
		}
		return parseDate(s)

	case KindBool:
		switch t := raw.(type) {
		case bool:
			return t, nil
		case string:
			if strings.TrimSpace(t) == "" {
				return nil, nil
			}
			b, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(t)))
			if err != nil {
				if strings.EqualFold(strings.TrimSpace(t), "on") {
					return true, nil
				}
				return nil, err
			}
			return b, nil
		}

	case KindInt:
		switch t := raw.(type) {
		case float64:
			if t != math.Trunc(t) {
				return nil, fmt.Errorf("not an integer: %v", t)
			}
			return int64(t), nil
		case int:
			return int64(t), nil
		case int64:
			return t, nil
		case json.Number:
			return t.Int64()
		case string:
			if strings.TrimSpace(t) == "" {
				return nil, nil
			}
			return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		}

	case KindList:
		return asList(raw)
	}

	return nil, fmt.Errorf("unsupported value %T", raw)
}

func asString(raw any) (string, error) {
	switch t := raw.(type) {
	case string:
		return strings.TrimSpace(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	}
	return "", fmt.Errorf("not a string: %T", raw)
}

// parseDate accepts a plain date or an RFC 3339 timestamp and keeps the
// date part.
func parseDate(s string) (string, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(DateLayout), nil
}

// asList takes a JSON array, JSON array text or a comma-separated string.
func asList(raw any) ([]string, error) {
	var items []any
	switch t := raw.(type) {
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case []any:
		items = t
	case string:
		t = strings.TrimSpace(t)
		if strings.HasPrefix(t, "[") {
			if err := json.Unmarshal([]byte(t), &items); err != nil {
				return nil, err
			}
			break
		}
		for _, part := range strings.Split(t, ",") {
			items = append(items, part)
		}
	default:
		return nil, fmt.Errorf("not a list: %T", raw)
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		s, err := asString(it)
		if err != nil {
			return nil, err
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Normalize restores canonical types on values decoded from storage, where
// numbers come back as json.Number and lists as []any.
func (s Schema) Normalize(values map[string]any) map[string]any {
	for _, f := range s.Fields {
		raw, ok := values[f.Name]
		if !ok {
			continue
		}
		if v, err := coerce(f.Kind, raw); err == nil && v != nil {
			values[f.Name] = v
		}
	}
	return values
}
