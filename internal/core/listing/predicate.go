package listing

import "strings"

// Match reports whether rec satisfies every active criterion in c.
//
// The search term matches when any text field contains it, ignoring case.
// Date, status and secondary criteria are exact matches.
func (s Schema[T]) Match(rec T, c Criteria) bool {
	if term := strings.ToLower(strings.TrimSpace(c.Search)); term != "" {
		if !anyContains(s.Text(rec), term) {
			return false
		}
	}
	if c.Date != "" && DatePart(s.Date(rec)) != c.Date {
		return false
	}
	if c.Status != "" && s.Status(rec) != c.Status {
		return false
	}
	if c.Secondary != "" && s.Secondary(rec) != c.Secondary {
		return false
	}
	return true
}

func anyContains(fields []string, term string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Filter returns the records matching c, preserving order.
func Filter[T any](recs []T, c Criteria, s Schema[T]) []T {
	if !c.Active() {
		return recs
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if s.Match(r, c) {
			out = append(out, r)
		}
	}
	return out
}
