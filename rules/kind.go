// Package rules implements the rule normalization engine: line
// classification, suffix-subsumption redundancy filtering, and the two
// canonical serializations (annotated text list, sing-box style JSON).
//
// The engine is pure and synchronous; it never touches the filesystem.
// Callers feed it raw file content and write the artifacts themselves.
package rules

import "strings"

// Kind is the rule category of a single list entry. The enumeration is
// closed: unknown kind tokens fail classification instead of entering the
// rule set.
type Kind int

// Canonical kind order. Serializers and the header generator group rules
// in this order.
const (
	KindDomain Kind = iota
	KindDomainKeyword
	KindDomainSuffix
	KindDomainRegex
	KindProcessName
	KindUserAgent
	KindIPCIDR
	KindIPCIDR6

	numKinds // sentinel, keep last
)

// Kinds lists all kinds in canonical order.
func Kinds() []Kind {
	ks := make([]Kind, numKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

var kindNames = [numKinds]string{
	KindDomain:        "DOMAIN",
	KindDomainKeyword: "DOMAIN-KEYWORD",
	KindDomainSuffix:  "DOMAIN-SUFFIX",
	KindDomainRegex:   "DOMAIN-REGEX",
	KindProcessName:   "PROCESS-NAME",
	KindUserAgent:     "USER-AGENT",
	KindIPCIDR:        "IP-CIDR",
	KindIPCIDR6:       "IP-CIDR6",
}

// jsonFields maps kinds to their fixed JSON field names. Both IP kinds
// share ip_cidr: the JSON artifact merges address families into one array.
var jsonFields = [numKinds]string{
	KindDomain:        "domain",
	KindDomainKeyword: "domain_keyword",
	KindDomainSuffix:  "domain_suffix",
	KindDomainRegex:   "domain_regex",
	KindProcessName:   "process_name",
	KindUserAgent:     "user_agent",
	KindIPCIDR:        "ip_cidr",
	KindIPCIDR6:       "ip_cidr",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// JSONField returns the JSON artifact field name for the kind.
func (k Kind) JSONField() string {
	if k < 0 || k >= numKinds {
		return ""
	}
	return jsonFields[k]
}

// lowercased reports whether values of this kind are normalized to lower
// case. Regexes, process names, and user agents are case-significant; IP
// literals are kept verbatim.
func (k Kind) lowercased() bool {
	switch k {
	case KindDomain, KindDomainKeyword, KindDomainSuffix:
		return true
	}
	return false
}

// ParseKind matches a kind token case-insensitively against the closed
// enumeration.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), true
		}
	}
	return 0, false
}
