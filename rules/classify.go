package rules

import (
	"net/netip"
	"regexp"
	"strings"
)

// LineClass partitions raw input lines.
type LineClass int

const (
	// LineBlank is an empty or whitespace-only line.
	LineBlank LineClass = iota
	// LineComment is a full-line comment starting with '#'.
	LineComment
	// LineRule is a line that parsed into a Rule.
	LineRule
	// LineInvalid is a line that matched no kind and failed the
	// implicit-domain fallback grammar.
	LineInvalid
)

// Line is the classification of one raw input line. For LineRule the Rule
// field is populated; Comment carries the full comment line (LineComment)
// or a trailing remark captured after a rule value (LineRule).
type Line struct {
	Class   LineClass
	Rule    Rule
	Comment string
}

// rulePattern matches `KIND[,|whitespace]VALUE[ # comment]`. The kind
// alternation is ordered longest-first so IP-CIDR6 wins over IP-CIDR and
// the hyphenated DOMAIN-* kinds win over bare DOMAIN.
var rulePattern = regexp.MustCompile(
	`^(?i)(DOMAIN-KEYWORD|DOMAIN-SUFFIX|DOMAIN-REGEX|PROCESS-NAME|USER-AGENT|IP-CIDR6|IP-CIDR|DOMAIN)[,\s]+([^#\s]+)(?:\s*#\s*(.*))?$`,
)

// Classify turns one raw text line into a typed rule or a non-rule
// artifact. It is a pure function of the line: classification never
// consults other lines or kind-scoped state.
//
// Lines that match no kind fall back to the strict implicit-domain policy:
// the trimmed line must parse as a domain literal or an IP literal to be
// accepted as a DOMAIN rule; anything else is invalid.
func Classify(raw string) Line {
	line := strings.TrimSpace(raw)
	if line == "" {
		return Line{Class: LineBlank}
	}
	if strings.HasPrefix(line, "#") {
		return Line{Class: LineComment, Comment: line}
	}

	if m := rulePattern.FindStringSubmatch(line); m != nil {
		kind, ok := ParseKind(m[1])
		if !ok {
			// The alternation is generated from the enumeration, so a
			// match that fails ParseKind cannot happen.
			return Line{Class: LineInvalid}
		}
		value := strings.TrimSpace(m[2])
		if kind.lowercased() {
			value = strings.ToLower(value)
		}
		r, ok := validateTyped(kind, value)
		if !ok {
			return Line{Class: LineInvalid}
		}
		out := Line{Class: LineRule, Rule: r}
		if m[3] != "" {
			out.Comment = "# " + strings.TrimSpace(m[3])
		}
		return out
	}

	// Implicit-domain fallback, strict policy.
	value := strings.ToLower(line)
	if isDomainLiteral(value) || isIPLiteral(line) {
		return Line{Class: LineRule, Rule: Rule{Kind: KindDomain, Value: value}}
	}
	return Line{Class: LineInvalid}
}

// validateTyped applies kind-specific value checks and re-derives the IP
// sub-kind from the value's address family so IP-CIDR6 always holds IPv6
// values and IP-CIDR always holds IPv4 ones.
func validateTyped(kind Kind, value string) (Rule, bool) {
	switch kind {
	case KindIPCIDR, KindIPCIDR6:
		v6, ok := ipFamily(value)
		if !ok {
			return Rule{}, false
		}
		if v6 {
			kind = KindIPCIDR6
		} else {
			kind = KindIPCIDR
		}
	case KindDomainRegex:
		if _, err := regexp.Compile(value); err != nil {
			return Rule{}, false
		}
	}
	return Rule{Kind: kind, Value: value}, true
}

// ipFamily parses value as a CIDR prefix or bare address and reports
// whether it is IPv6.
func ipFamily(value string) (v6, ok bool) {
	if p, err := netip.ParsePrefix(value); err == nil {
		return p.Addr().Is6() && !p.Addr().Is4In6(), true
	}
	if a, err := netip.ParseAddr(value); err == nil {
		return a.Is6() && !a.Is4In6(), true
	}
	return false, false
}

func isIPLiteral(value string) bool {
	_, ok := ipFamily(value)
	return ok
}

// isDomainLiteral checks the fallback grammar: at least two dotted labels
// of [a-z0-9_-], no empty labels, no label starting or ending with a
// hyphen. The check is label-based, never a raw substring test.
func isDomainLiteral(value string) bool {
	labels := strings.Split(value, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, c := range label {
			switch {
			case c >= 'a' && c <= 'z':
			case c >= '0' && c <= '9':
			case c == '-' || c == '_':
			default:
				return false
			}
		}
	}
	return true
}
