// Package listing implements the filtered, paginated record views used by the
// Users and Events screens: a predicate evaluator, a pagination slicer and a
// stateful controller that owns filter and page state.
package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/share2care/admin-console/internal/core/domain"
)

// Built-in criterion names. Each schema adds one secondary criterion name.
const (
	CriterionSearch = "search"
	CriterionDate   = "date"
	CriterionStatus = "status"
)

// Criteria is a snapshot of the active filters. Empty fields are inactive.
type Criteria struct {
	Search    string `json:"search,omitempty"`
	Date      string `json:"date,omitempty"`
	Status    string `json:"status,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// Active reports whether at least one criterion is set.
func (c Criteria) Active() bool {
	return strings.TrimSpace(c.Search) != "" || c.Date != "" || c.Status != "" || c.Secondary != ""
}

// Schema describes how records of one entity type are matched.
type Schema[T any] struct {
	// Entity names the listing, e.g. "users".
	Entity string
	// SecondaryName is the public name of the secondary enum criterion.
	SecondaryName string

	Text      func(T) []string
	Date      func(T) string
	Status    func(T) string
	Secondary func(T) string
}

// Criterion names accepted by the schema, in display order.
func (s Schema[T]) Criteria() []string {
	return []string{CriterionSearch, CriterionDate, CriterionStatus, s.SecondaryName}
}

// Set returns c with the named criterion replaced by value.
func (s Schema[T]) Set(c Criteria, name, value string) (Criteria, error) {
	switch name {
	case CriterionSearch:
		c.Search = value
	case CriterionDate:
		c.Date = DatePart(value)
	case CriterionStatus:
		c.Status = value
	case s.SecondaryName:
		c.Secondary = value
	default:
		return c, fmt.Errorf("%s: %w: %q", s.Entity, domain.ErrUnknownCriterion, name)
	}
	return c, nil
}

// DatePart reduces an API timestamp to its YYYY-MM-DD calendar date.
func DatePart(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 && v[4] == '-' && v[7] == '-' {
		return v[:10]
	}
	for _, layout := range []string{time.RFC3339, time.RFC1123, "02/01/2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return v
}
