// Package listing derives filtered and sorted views over in-memory record sets.
package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Predicate reports whether a record belongs in the view.
type Predicate[T any] func(T) bool

// Apply returns the records satisfying every predicate, stably sorted by compare.
// A nil comparator keeps input order. The input slice is not modified.
func Apply[T any](records []T, compare func(a, b T) int, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if matchesAll(r, preds) {
			out = append(out, r)
		}
	}

	if compare != nil {
		slices.SortStableFunc(out, compare)
	}

	return out
}

func matchesAll[T any](r T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(r) {
			return false
		}
	}

	return true
}

// ContainsFold reports whether query occurs case-insensitively in any field.
// A blank query matches everything.
func ContainsFold(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}

	return false
}

// Equals builds a categorical filter. An empty or "all" want disables it.
func Equals[T any](want string, field func(T) string) Predicate[T] {
	if IsAll(want) {
		return nil
	}

	return func(r T) bool {
		return strings.EqualFold(field(r), want)
	}
}

// IsAll reports whether a filter value means "no filter".
func IsAll(v string) bool {
	v = strings.TrimSpace(v)

	return v == "" || strings.EqualFold(v, "all")
}

// Newest orders later timestamps first.
func Newest[T any](at func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		return at(b).Compare(at(a))
	}
}

// Oldest orders earlier timestamps first.
func Oldest[T any](at func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		return at(a).Compare(at(b))
	}
}

// Descending orders by key, largest first.
func Descending[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	}
}

// Ascending orders by key, smallest first.
func Ascending[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
