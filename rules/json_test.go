package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderJSONGroupedForm(t *testing.T) {
	s := buildSet(
		Rule{KindDomain, "x.com"},
		Rule{KindDomainKeyword, "tracker"},
		Rule{KindDomainSuffix, "example.com"},
		Rule{KindIPCIDR, "10.0.0.0/8"},
		Rule{KindIPCIDR6, "2001:db8::/32"},
	)

	got, err := RenderJSON(s, 1)
	require.NoError(t, err)

	want := `{
  "version": 1,
  "rules": [
    {
      "domain": [
        "x.com"
      ],
      "domain_keyword": [
        "tracker"
      ],
      "domain_suffix": [
        "example.com"
      ],
      "ip_cidr": [
        "10.0.0.0/8",
        "2001:db8::/32"
      ]
    }
  ]
}
`
	assert.Equal(t, want, got)
}

func TestRenderJSONEmptySet(t *testing.T) {
	got, err := RenderJSON(NewSet(), 1)
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"version\": 1,\n  \"rules\": []\n}\n", got)
}

func TestRenderJSONOmitsEmptyKinds(t *testing.T) {
	s := buildSet(Rule{KindDomain, "x.com"})

	got, err := RenderJSON(s, 1)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	rule := doc["rules"].([]interface{})[0].(map[string]interface{})
	assert.Len(t, rule, 1)
	assert.Contains(t, rule, "domain")
}

func TestJSONRoundTrip(t *testing.T) {
	s := buildSet(
		Rule{KindDomain, "x.com"},
		Rule{KindDomainSuffix, "example.com"},
		Rule{KindDomainRegex, `^ad\d+\.`},
		Rule{KindProcessName, "Telegram"},
		Rule{KindUserAgent, "EmbyClient*"},
		Rule{KindIPCIDR, "10.0.0.0/8"},
		Rule{KindIPCIDR6, "2001:db8::/32"},
	)

	text, err := RenderJSON(s, 2)
	require.NoError(t, err)

	parsed, version, err := ParseJSON(text)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	for _, k := range Kinds() {
		assert.Equal(t, s.Values(k), parsed.Values(k), "kind %s", k)
	}
}

func TestParseJSONStringLeniency(t *testing.T) {
	text := `{"version": 1, "rules": [{"domain": "x.com", "domain_suffix": ["a.com", "b.com"]}]}`

	s, _, err := ParseJSON(text)
	require.NoError(t, err)

	assert.Equal(t, []string{"x.com"}, s.Values(KindDomain))
	assert.Equal(t, []string{"a.com", "b.com"}, s.Values(KindDomainSuffix))
}

func TestParseJSONRoutesCIDRByFamily(t *testing.T) {
	text := `{"version": 1, "rules": [{"ip_cidr": ["2001:db8::/32", "10.0.0.0/8"]}]}`

	s, _, err := ParseJSON(text)
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/8"}, s.Values(KindIPCIDR))
	assert.Equal(t, []string{"2001:db8::/32"}, s.Values(KindIPCIDR6))
}

func TestParseJSONRejectsUnknownField(t *testing.T) {
	_, _, err := ParseJSON(`{"version": 1, "rules": [{"geoip": "cn"}]}`)
	assert.Error(t, err)
}

func TestParseJSONRejectsUnsupportedVersion(t *testing.T) {
	_, _, err := ParseJSON(`{"version": 99, "rules": []}`)
	assert.Error(t, err)

	_, _, err = ParseJSON(`{"version": 0, "rules": []}`)
	assert.Error(t, err)
}

func TestParseJSONRejectsBadCIDR(t *testing.T) {
	_, _, err := ParseJSON(`{"version": 1, "rules": [{"ip_cidr": "not-a-cidr"}]}`)
	assert.Error(t, err)
}

func TestGeneratedArtifactValidatesAgainstSchema(t *testing.T) {
	s := buildSet(
		Rule{KindDomain, "x.com"},
		Rule{KindIPCIDR, "10.0.0.0/8"},
	)

	text, err := RenderJSON(s, 1)
	require.NoError(t, err)
	assert.NoError(t, ValidateJSON(text))

	empty, err := RenderJSON(NewSet(), 1)
	require.NoError(t, err)
	assert.NoError(t, ValidateJSON(empty))
}

func TestSchemaRejectsMalformedArtifacts(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing version", `{"rules": []}`},
		{"unknown rule field", `{"version": 1, "rules": [{"geoip": "cn"}]}`},
		{"empty rule object", `{"version": 1, "rules": [{}]}`},
		{"empty value array", `{"version": 1, "rules": [{"domain": []}]}`},
		{"version out of range", `{"version": 9, "rules": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateJSON(tt.text))
		})
	}
}
