package domain

import (
	"encoding/json"
	"time"
)

// Document is one portfolio record. Schema fields live in Values; the
// bookkeeping fields are promoted into the same JSON object on the wire.
type Document struct {
	ID         string
	Collection string
	OwnerID    string
	AuthorID   string
	Values     map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsZero reports whether d is the empty placeholder used for an absent
// introduction in the aggregate.
func (d Document) IsZero() bool { return d.ID == "" }

func (d Document) String(field string) string {
	s, _ := d.Values[field].(string)
	return s
}

// MarshalJSON flattens the record. A zero Document encodes as {}.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("{}"), nil
	}

	out := make(map[string]any, len(d.Values)+5)
	for k, v := range d.Values {
		out[k] = v
	}
	out["_id"] = d.ID
	out["user"] = d.OwnerID
	if d.AuthorID != "" {
		out["author"] = d.AuthorID
	}
	out["createdAt"] = d.CreatedAt
	out["updatedAt"] = d.UpdatedAt
	return json.Marshal(out)
}

// MediaURLs returns the non-empty media values of d in schema order.
func (d Document) MediaURLs(s Schema) []string {
	var out []string
	for _, name := range s.MediaFields() {
		if u := d.String(name); u != "" {
			out = append(out, u)
		}
	}
	return out
}
