package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		class   LineClass
		kind    Kind
		value   string
		comment string
	}{
		{name: "blank", line: "   ", class: LineBlank},
		{name: "comment", line: "# streaming hosts", class: LineComment, comment: "# streaming hosts"},
		{name: "typed domain", line: "DOMAIN,example.com", class: LineRule, kind: KindDomain, value: "example.com"},
		{name: "kind and value normalized", line: "domain-suffix, Example.COM", class: LineRule, kind: KindDomainSuffix, value: "example.com"},
		{name: "whitespace separator", line: "DOMAIN-KEYWORD\ttracker", class: LineRule, kind: KindDomainKeyword, value: "tracker"},
		{name: "trailing comment", line: "DOMAIN,x.com # main site", class: LineRule, kind: KindDomain, value: "x.com", comment: "# main site"},
		{name: "bare domain", line: "google.com", class: LineRule, kind: KindDomain, value: "google.com"},
		{name: "bare domain upper", line: "Google.COM", class: LineRule, kind: KindDomain, value: "google.com"},
		{name: "bare ip literal", line: "8.8.8.8", class: LineRule, kind: KindDomain, value: "8.8.8.8"},
		{name: "unparsable", line: "???not-a-domain???", class: LineInvalid},
		{name: "single label rejected", line: "localhost", class: LineInvalid},
		{name: "hyphen edge rejected", line: "-bad.example.com", class: LineInvalid},
		{name: "label boundary not substring", line: "notexample.com", class: LineRule, kind: KindDomain, value: "notexample.com"},
		{name: "process name keeps case", line: "PROCESS-NAME,Telegram", class: LineRule, kind: KindProcessName, value: "Telegram"},
		{name: "user agent", line: "USER-AGENT,EmbyClient*", class: LineRule, kind: KindUserAgent, value: "EmbyClient*"},
		{name: "ipv4 cidr", line: "IP-CIDR,10.0.0.0/8", class: LineRule, kind: KindIPCIDR, value: "10.0.0.0/8"},
		{name: "bare address accepted", line: "IP-CIDR,192.168.1.1", class: LineRule, kind: KindIPCIDR, value: "192.168.1.1"},
		{name: "ipv6 under ip-cidr reclassified", line: "IP-CIDR,2001:db8::/32", class: LineRule, kind: KindIPCIDR6, value: "2001:db8::/32"},
		{name: "ipv4 under ip-cidr6 reclassified", line: "IP-CIDR6,10.0.0.0/8", class: LineRule, kind: KindIPCIDR, value: "10.0.0.0/8"},
		{name: "bad cidr invalid", line: "IP-CIDR,10.0.0.0/99", class: LineInvalid},
		{name: "domain regex compiles", line: `DOMAIN-REGEX,^ad\d+\.`, class: LineRule, kind: KindDomainRegex, value: `^ad\d+\.`},
		{name: "broken regex invalid", line: "DOMAIN-REGEX,([", class: LineInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.line)
			assert.Equal(t, tt.class, got.Class)
			if tt.class == LineRule {
				assert.Equal(t, tt.kind, got.Rule.Kind)
				assert.Equal(t, tt.value, got.Rule.Value)
			}
			assert.Equal(t, tt.comment, got.Comment)
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	// Same line, same answer, regardless of what was classified before.
	first := Classify("DOMAIN,example.com")
	Classify("DOMAIN-SUFFIX,example.com")
	second := Classify("DOMAIN,example.com")
	assert.Equal(t, first, second)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("ip-cidr")
	assert.True(t, ok)
	assert.Equal(t, KindIPCIDR, k)

	_, ok = ParseKind("GEOIP")
	assert.False(t, ok)
}
