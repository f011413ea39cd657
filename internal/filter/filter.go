// Package filter derives the visible subset of a loaded list from a free-text
// search term and categorical dropdown criteria.
package filter

import "strings"

// All is the dropdown value that disables a criterion.
const All = "all"

// Criterion restricts records to those whose field equals Value exactly.
type Criterion[T any] struct {
	Value string
	Field func(T) string
}

// By builds a criterion over one record field.
func By[T any](value string, field func(T) string) Criterion[T] {
	return Criterion[T]{Value: value, Field: field}
}

func (c Criterion[T]) active() bool {
	v := strings.TrimSpace(c.Value)
	return v != "" && !strings.EqualFold(v, All)
}

// Apply keeps the records matching the search term and every active
// criterion. The term matches when it is a case-insensitive substring of any
// field returned by searchFields. Input order is kept and records is never
// modified.
func Apply[T any](records []T, term string, searchFields func(T) []string, criteria ...Criterion[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(term))

	active := make([]Criterion[T], 0, len(criteria))
	for _, c := range criteria {
		if c.active() {
			active = append(active, c)
		}
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if needle != "" && !containsAny(searchFields(r), needle) {
			continue
		}
		if !matchesAll(r, active) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsAny(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func matchesAll[T any](r T, criteria []Criterion[T]) bool {
	for _, c := range criteria {
		if c.Field(r) != c.Value {
			return false
		}
	}
	return true
}
