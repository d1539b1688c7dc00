package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an opaque record identifier. The API sends integers, other deployments
// send strings; both decode into the same canonical text.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is missing.
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// Coerced compares identifiers after trimming and numeric normalisation, so
// "007", " 7" and "7" all match.
func (id ID) Coerced(other ID) bool {
	a, b := strings.TrimSpace(string(id)), strings.TrimSpace(string(other))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return ai == bi
	}
	return strings.EqualFold(a, b)
}

// UnmarshalJSON accepts strings and numbers; any other shape decodes to the zero ID.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = ID(n.String())
	default:
		*id = ""
	}
	return nil
}

// IDs converts raw strings (CLI arguments, flags) into identifiers, dropping blanks.
func IDs(raw ...string) []ID {
	ids := make([]ID, 0, len(raw))
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, ID(part))
			}
		}
	}
	return ids
}

// UniqueIDs removes duplicates and blanks while keeping first-seen order.
func UniqueIDs(ids []ID) []ID {
	seen := make(map[ID]struct{}, len(ids))
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
