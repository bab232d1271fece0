package core

import "strings"

// Filter holds the optional list-view predicates. Every non-empty field is
// AND-combined; Search matches description or category, case-insensitively.
type Filter struct {
	Status   string
	Type     string
	Method   string
	Category string
	Search   string
}

// IsZero reports whether no predicate is supplied.
func (f Filter) IsZero() bool {
	return f.Status == "" && f.Type == "" && f.Method == "" && f.Category == "" && f.Search == ""
}

// Matches applies all supplied predicates to a single payment.
func (f Filter) Matches(p Payment) bool {
	if f.Status != "" && string(p.Status) != f.Status {
		return false
	}
	if f.Type != "" && string(p.Type) != f.Type {
		return false
	}
	if f.Method != "" && string(p.Method) != f.Method {
		return false
	}
	if f.Category != "" && string(p.Category) != f.Category {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(string(p.Category)), needle) {
			return false
		}
	}
	return true
}

// Apply returns the matching subset in the original order. The zero filter
// returns the input unchanged.
func (f Filter) Apply(payments []Payment) []Payment {
	if f.IsZero() {
		return payments
	}
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
