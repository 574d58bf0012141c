package rules

import "sort"

// Rule is an immutable (kind, value) pair.
type Rule struct {
	Kind  Kind
	Value string
}

// Set is the canonical in-memory rule model: a fixed-size table indexed by
// the kind enumeration, one value set per slot. Duplicate values collapse
// silently. A Set is built fresh per processing run and never shared
// between runs.
type Set struct {
	values [numKinds]map[string]struct{}
}

// NewSet returns an empty rule set.
func NewSet() *Set {
	s := &Set{}
	for i := range s.values {
		s.values[i] = make(map[string]struct{})
	}
	return s
}

// Add inserts a rule, reporting whether the value was new for its kind.
func (s *Set) Add(r Rule) bool {
	m := s.values[r.Kind]
	if _, ok := m[r.Value]; ok {
		return false
	}
	m[r.Value] = struct{}{}
	return true
}

// Has reports whether the value is present under the kind.
func (s *Set) Has(k Kind, value string) bool {
	_, ok := s.values[k][value]
	return ok
}

// Remove deletes a value from a kind. Removing an absent value is a no-op.
func (s *Set) Remove(k Kind, value string) {
	delete(s.values[k], value)
}

// Count returns the number of values under the kind.
func (s *Set) Count(k Kind) int {
	return len(s.values[k])
}

// Total returns the number of rules across all kinds.
func (s *Set) Total() int {
	n := 0
	for i := range s.values {
		n += len(s.values[i])
	}
	return n
}

// Values returns the kind's values sorted in byte order.
func (s *Set) Values(k Kind) []string {
	out := make([]string, 0, len(s.values[k]))
	for v := range s.values[k] {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Stats returns per-kind counts keyed by kind name, omitting empty kinds.
func (s *Set) Stats() map[string]int {
	stats := make(map[string]int)
	for _, k := range Kinds() {
		if n := s.Count(k); n > 0 {
			stats[k.String()] = n
		}
	}
	return stats
}
