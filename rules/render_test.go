package rules

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMeta = Meta{
	Name:   "Emby",
	Author: "KuGouGo",
	Repo:   "https://github.com/KuGouGo/Rules",
}

func TestHeader(t *testing.T) {
	s := buildSet(
		Rule{KindDomain, "x.com"},
		Rule{KindDomainSuffix, "example.com"},
		Rule{KindIPCIDR, "10.0.0.0/8"},
	)
	now := time.Date(2026, 8, 29, 12, 30, 45, 0, time.UTC)

	got := Header(testMeta, s, now)

	want := strings.Join([]string{
		"# NAME: Emby",
		"# AUTHOR: KuGouGo",
		"# REPO: https://github.com/KuGouGo/Rules",
		"# UPDATED: 2026-08-29 12:30:45",
		"# DOMAIN: 1",
		"# DOMAIN-SUFFIX: 1",
		"# IP-CIDR: 1",
		"# TOTAL: 3",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestHeaderTimestampIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, loc)

	got := Header(testMeta, NewSet(), now)

	assert.Contains(t, got, "# UPDATED: 2026-01-01 00:00:00\n")
}

func TestHeaderOmitsEmptyKinds(t *testing.T) {
	s := buildSet(Rule{KindDomainKeyword, "tracker"})

	got := Header(testMeta, s, time.Now())

	assert.Contains(t, got, "# DOMAIN-KEYWORD: 1\n")
	assert.NotContains(t, got, "# DOMAIN: ")
	assert.Contains(t, got, "# TOTAL: 1\n")
}

func TestHeaderCountsMatchSet(t *testing.T) {
	s := buildSet(
		Rule{KindDomain, "a.com"},
		Rule{KindDomain, "b.com"},
		Rule{KindDomainSuffix, "c.com"},
	)

	got := Header(testMeta, s, time.Now())

	sum := 0
	for name, n := range s.Stats() {
		assert.Contains(t, got, "# "+name+": ")
		sum += n
	}
	assert.Equal(t, s.Total(), sum)
	assert.Contains(t, got, "# TOTAL: 3\n")
}

func TestRenderListOrderAndGrouping(t *testing.T) {
	s := buildSet(
		Rule{KindIPCIDR, "10.0.0.0/8"},
		Rule{KindDomainSuffix, "b.com"},
		Rule{KindDomainSuffix, "a.com"},
		Rule{KindDomain, "z.com"},
	)

	got := RenderList("# header\n", s, nil)

	want := "# header\n\n" +
		"DOMAIN,z.com\n" +
		"DOMAIN-SUFFIX,a.com\n" +
		"DOMAIN-SUFFIX,b.com\n" +
		"IP-CIDR,10.0.0.0/8\n"
	assert.Equal(t, want, got)
}

func TestRenderListDedupesComments(t *testing.T) {
	s := NewSet()
	comments := []string{"# streaming", "# misc", "# streaming"}

	got := RenderList("# header\n", s, comments)

	assert.Equal(t, 1, strings.Count(got, "# streaming\n"))
	assert.Equal(t, 1, strings.Count(got, "# misc\n"))
}

func TestRenderListDeterministic(t *testing.T) {
	s := buildSet(
		Rule{KindDomain, "b.com"},
		Rule{KindDomain, "a.com"},
		Rule{KindDomain, "c.com"},
	)

	first := RenderList("# h\n", s, nil)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, RenderList("# h\n", s, nil))
	}
}
