package rules

import (
	"fmt"
	"strings"
	"time"
)

// Meta is the banner configuration for the text artifact header. It is
// explicit caller input; the engine bakes in no authorship constants.
type Meta struct {
	Name   string
	Author string
	Repo   string
}

// headerTimeFormat is the UPDATED line layout: UTC, second precision.
const headerTimeFormat = "2006-01-02 15:04:05"

// Header builds the metadata banner prepended to the text artifact: name,
// authorship, repository, generation timestamp, one count line per
// non-empty kind in canonical order, and a total. Counts are always
// recomputed from the set; an old header is never trusted.
func Header(meta Meta, s *Set, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# NAME: %s\n", meta.Name)
	fmt.Fprintf(&b, "# AUTHOR: %s\n", meta.Author)
	fmt.Fprintf(&b, "# REPO: %s\n", meta.Repo)
	fmt.Fprintf(&b, "# UPDATED: %s\n", now.UTC().Format(headerTimeFormat))
	for _, k := range Kinds() {
		if n := s.Count(k); n > 0 {
			fmt.Fprintf(&b, "# %s: %d\n", k, n)
		}
	}
	fmt.Fprintf(&b, "# TOTAL: %d\n", s.Total())
	return b.String()
}
