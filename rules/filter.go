package rules

import (
	"sort"
	"strings"
)

// Filter removes rules whose effect is already subsumed by a broader
// DOMAIN-SUFFIX rule, mutating the set in place and returning the number
// of rules dropped.
//
// Two passes run, both on dotted-label structure rather than raw string
// suffixes, so notexample.com is never considered covered by example.com:
//
//  1. Within DOMAIN-SUFFIX, a value is dropped when it is a strict
//     subdomain of another surviving suffix. Candidates are visited sorted
//     by ascending label count then byte order, so broader suffixes are
//     established before narrower ones are tested.
//  2. Every DOMAIN value equal to or a subdomain of a surviving
//     DOMAIN-SUFFIX value is dropped.
//
// Only DOMAIN and DOMAIN-SUFFIX participate. Keyword, regex, process,
// user-agent, and IP rules have incomparable match semantics and are never
// filtered. The filter cannot fail; empty kinds contribute nothing.
func Filter(s *Set) int {
	removed := 0

	suffixes := s.Values(KindDomainSuffix)
	sort.SliceStable(suffixes, func(i, j int) bool {
		li, lj := strings.Count(suffixes[i], "."), strings.Count(suffixes[j], ".")
		if li != lj {
			return li < lj
		}
		return suffixes[i] < suffixes[j]
	})

	surviving := make(map[string]struct{}, len(suffixes))
	for _, v := range suffixes {
		if coveredBy(v, surviving, false) {
			s.Remove(KindDomainSuffix, v)
			removed++
			continue
		}
		surviving[v] = struct{}{}
	}

	for _, v := range s.Values(KindDomain) {
		if coveredBy(v, surviving, true) {
			s.Remove(KindDomain, v)
			removed++
		}
	}
	return removed
}

// coveredBy reports whether value's dotted-label suffix matches any entry
// in suffixes. With allowEqual the whole value may equal a suffix;
// otherwise only strict subdomain containment counts (value itself is
// being considered for the suffix set and must not match itself).
func coveredBy(value string, suffixes map[string]struct{}, allowEqual bool) bool {
	if allowEqual {
		if _, ok := suffixes[value]; ok {
			return true
		}
	}
	rest := value
	for {
		i := strings.IndexByte(rest, '.')
		if i < 0 {
			return false
		}
		rest = rest[i+1:]
		if _, ok := suffixes[rest]; ok {
			return true
		}
	}
}
