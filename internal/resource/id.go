package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a backend identifier. The decoder accepts JSON strings and numbers.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("resource: identifier %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Refs is a list of referenced identifiers. The decoder accepts plain
// identifiers as well as embedded objects carrying an "id" field.
type Refs []ID

// UnmarshalJSON implements json.Unmarshaler.
func (r *Refs) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Refs, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '{' {
			var obj struct {
				ID ID `json:"id"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				return err
			}
			if obj.ID != "" {
				out = append(out, obj.ID)
			}
			continue
		}
		var id ID
		if err := id.UnmarshalJSON(item); err != nil {
			return err
		}
		if id != "" {
			out = append(out, id)
		}
	}
	*r = out
	return nil
}

// Strings returns the identifiers as plain strings.
func (r Refs) Strings() []string {
	out := make([]string, len(r))
	for i, id := range r {
		out[i] = string(id)
	}
	return out
}

// RefsOf builds Refs from plain strings, skipping blanks.
func RefsOf(ids []string) Refs {
	out := make(Refs, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, ID(id))
		}
	}
	return out
}
