// Package roster loads the static member list used for attendance roll-call
// and chat mentions. The roster file is a JSON object mapping member display
// name to chat user ID; key order in the file is the roll-call order, so the
// file is decoded token-by-token instead of into a map.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Roster is an ordered list of member names plus their chat mention IDs.
// Lookups are case-insensitive and trim surrounding whitespace; display uses
// the name exactly as written in the file.
type Roster struct {
	names []string
	ids   map[string]string
}

// Load reads the roster file at path. A missing file yields an empty roster,
// not an error; the caller may fall back to FromNames. Entries with an empty
// name or ID are skipped.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Roster{ids: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	r := &Roster{ids: map[string]string{}}
	dec := json.NewDecoder(f)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("roster file %s: expected a JSON object", path)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read roster file: %w", err)
		}
		name, _ := keyTok.(string)

		var id string
		if err := dec.Decode(&id); err != nil {
			return nil, fmt.Errorf("roster entry %q: %w", name, err)
		}

		name = strings.TrimSpace(name)
		id = strings.TrimSpace(id)
		if name == "" || id == "" {
			continue
		}
		r.names = append(r.names, name)
		r.ids[normalize(name)] = id
	}
	return r, nil
}

// FromNames builds a roster with no mention IDs, e.g. from a CSV fallback.
func FromNames(names []string) *Roster {
	r := &Roster{ids: map[string]string{}}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			r.names = append(r.names, n)
		}
	}
	return r
}

// Names returns member names in roster order.
func (r *Roster) Names() []string {
	return r.names
}

// Len reports the number of roster members.
func (r *Roster) Len() int {
	return len(r.names)
}

// MentionID resolves a member name to a chat user ID.
func (r *Roster) MentionID(name string) (string, bool) {
	id, ok := r.ids[normalize(name)]
	return id, ok
}

// MentionIDs resolves names to chat user IDs, dropping unknown names and
// de-duplicating while preserving first-seen order.
func (r *Roster) MentionIDs(names []string) []string {
	seen := make(map[string]bool, len(names))
	var ids []string
	for _, n := range names {
		id, ok := r.MentionID(n)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
