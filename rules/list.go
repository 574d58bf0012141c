package rules

import (
	"fmt"
	"strings"
)

// RenderList renders the canonical text artifact: the header, a blank
// separator, retained pass-through comments in input order (deduplicated),
// then one `KIND,value` line per rule grouped by kind in canonical order
// and sorted in byte order within each kind. The output is newline
// terminated and fully deterministic for a given set.
func RenderList(header string, s *Set, comments []string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	seen := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		b.WriteString(c)
		b.WriteString("\n")
	}

	for _, k := range Kinds() {
		for _, v := range s.Values(k) {
			fmt.Fprintf(&b, "%s,%s\n", k, v)
		}
	}
	return b.String()
}
