package domain

import "strings"

// Filter narrows a List result. All set predicates must match (logical AND).
type Filter struct {
	Category     string // exact match; "" or FilterAll disables
	Pricing      string // exact match; "" or FilterAll disables
	FeaturedOnly bool
	Query        string // case-insensitive substring of name, description or a tag; "" disables
}

// IsZero reports whether the filter keeps every record.
func (f Filter) IsZero() bool {
	return !active(f.Category) && !active(f.Pricing) && !f.FeaturedOnly &&
		strings.TrimSpace(f.Query) == ""
}

// Matches reports whether t passes every active predicate.
func (f Filter) Matches(t Tool) bool {
	if active(f.Category) && t.Category != f.Category {
		return false
	}
	if active(f.Pricing) && t.Pricing != f.Pricing {
		return false
	}
	if f.FeaturedOnly && !t.Featured {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !containsText(t, q) {
		return false
	}
	return true
}

func containsText(t Tool, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.ShortDescription), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Apply returns the matching tools in collection order. The result is never nil.
func (f Filter) Apply(tools []Tool) []Tool {
	out := make([]Tool, 0, len(tools))
	for _, t := range tools {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func active(v string) bool {
	return v != "" && v != FilterAll
}
