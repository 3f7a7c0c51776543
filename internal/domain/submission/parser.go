package submission

import (
	"regexp"
	"strings"
	"time"
)

// pathPattern matches study/<member>/<YYYY-MM-DD>/<anything>.
var pathPattern = regexp.MustCompile(`^study/([^/]+)/(\d{4}-\d{2}-\d{2})/(.+)$`)

// Parsed is one changed path resolved into its submission coordinates.
type Parsed struct {
	Member  string
	Date    string
	Problem string
	Path    string
}

// ParseChangedPaths splits raw on spaces, commas and line breaks and returns
// one Parsed per path matching study/<member>/<date>/<...>/<file>. The
// problem identifier is the filename with its final extension removed.
// Non-matching paths, and paths whose date component is not a real calendar
// date, are silently dropped; an empty result means nothing to do.
func ParseChangedPaths(raw string) []Parsed {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\r' || r == '\t'
	})

	var found []Parsed
	for _, p := range fields {
		m := pathPattern.FindStringSubmatch(p)
		if m == nil {
			continue
		}
		member, date, tail := m[1], m[2], m[3]
		if _, err := time.Parse("2006-01-02", date); err != nil {
			continue
		}
		found = append(found, Parsed{
			Member:  member,
			Date:    date,
			Problem: problemName(tail),
			Path:    p,
		})
	}
	return found
}

// problemName reduces the tail of a matched path to its problem identifier:
// the last path element with the final extension stripped.
func problemName(tail string) string {
	name := tail
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}
