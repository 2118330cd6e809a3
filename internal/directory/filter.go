package directory

import "strings"

// Match reports whether the record satisfies every supplied criteria field.
// Pure function: no side effects, stable under repeated calls.
func Match(p Partnership, c Criteria) bool {
	if c.Search != "" && !matchSearch(p, c.Search) {
		return false
	}
	if c.Department != "" && p.Department != c.Department {
		return false
	}
	if c.Status != "" && p.Status != c.Status {
		return false
	}
	if c.SchoolYear != "" && !strings.Contains(p.SchoolYear, c.SchoolYear) {
		return false
	}
	return true
}

func matchSearch(p Partnership, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{p.BusinessName, p.ContactPerson, p.Remarks} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Apply returns the records matching the criteria, preserving input order.
func Apply(records []Partnership, c Criteria) []Partnership {
	if c.IsZero() {
		return records
	}
	out := make([]Partnership, 0, len(records))
	for _, p := range records {
		if Match(p, c) {
			out = append(out, p)
		}
	}
	return out
}
