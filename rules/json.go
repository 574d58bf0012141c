package rules

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/rulefmt/rulefmt/errors"
)

// MaxJSONVersion is the highest rule-set format version ParseJSON accepts.
const MaxJSONVersion = 3

// ruleObject is the grouped rule form of the JSON artifact: each present
// kind maps to its sorted value array. Field order here fixes the key
// order in the rendered document. Both IP kinds merge into ip_cidr.
type ruleObject struct {
	Domain        stringList `json:"domain,omitempty"`
	DomainKeyword stringList `json:"domain_keyword,omitempty"`
	DomainSuffix  stringList `json:"domain_suffix,omitempty"`
	DomainRegex   stringList `json:"domain_regex,omitempty"`
	ProcessName   stringList `json:"process_name,omitempty"`
	UserAgent     stringList `json:"user_agent,omitempty"`
	IPCIDR        stringList `json:"ip_cidr,omitempty"`
}

type document struct {
	Version int          `json:"version"`
	Rules   []ruleObject `json:"rules"`
}

// stringList accepts either a single string or an array of strings when
// unmarshaling, mirroring the downstream engine's own leniency.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err != nil {
		return err
	}
	*l = stringList(ss)
	return nil
}

// RenderJSON renders the structured rule-set artifact in the grouped form:
// a version marker and a rules array holding one object that maps each
// present kind to its sorted value array. Kinds with no rules are omitted,
// never emitted as empty arrays; an empty set yields "rules": []. The
// output is pretty-printed with two-space indent and newline terminated.
func RenderJSON(s *Set, version int) (string, error) {
	doc := document{Version: version, Rules: []ruleObject{}}
	if s.Total() > 0 {
		obj := ruleObject{
			Domain:        s.Values(KindDomain),
			DomainKeyword: s.Values(KindDomainKeyword),
			DomainSuffix:  s.Values(KindDomainSuffix),
			DomainRegex:   s.Values(KindDomainRegex),
			ProcessName:   s.Values(KindProcessName),
			UserAgent:     s.Values(KindUserAgent),
			IPCIDR:        mergedCIDRs(s),
		}
		doc.Rules = append(doc.Rules, obj)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshaling rule-set artifact")
	}
	return string(out) + "\n", nil
}

// mergedCIDRs returns IPv4 and IPv6 CIDR values sorted together, empty
// slice normalized to nil so omitempty drops the field.
func mergedCIDRs(s *Set) stringList {
	merged := append(s.Values(KindIPCIDR), s.Values(KindIPCIDR6)...)
	if len(merged) == 0 {
		return nil
	}
	sort.Strings(merged)
	return merged
}

// ParseJSON round-trips a rendered artifact back into a rule set. It
// rejects unknown fields and unsupported versions, and routes ip_cidr
// entries back to IP-CIDR or IP-CIDR6 by address family.
func ParseJSON(text string) (*Set, int, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, 0, errors.Wrap(err, "parsing rule-set artifact")
	}
	if doc.Version < 1 || doc.Version > MaxJSONVersion {
		return nil, 0, errors.Newf("unsupported rule-set version %d", doc.Version)
	}

	s := NewSet()
	for _, obj := range doc.Rules {
		addAll(s, KindDomain, obj.Domain)
		addAll(s, KindDomainKeyword, obj.DomainKeyword)
		addAll(s, KindDomainSuffix, obj.DomainSuffix)
		addAll(s, KindDomainRegex, obj.DomainRegex)
		addAll(s, KindProcessName, obj.ProcessName)
		addAll(s, KindUserAgent, obj.UserAgent)
		for _, v := range obj.IPCIDR {
			v6, ok := ipFamily(v)
			if !ok {
				return nil, 0, errors.Newf("invalid ip_cidr value %q", v)
			}
			k := KindIPCIDR
			if v6 {
				k = KindIPCIDR6
			}
			s.Add(Rule{Kind: k, Value: v})
		}
	}
	return s, doc.Version, nil
}

func addAll(s *Set, k Kind, values []string) {
	for _, v := range values {
		if k.lowercased() {
			v = strings.ToLower(v)
		}
		s.Add(Rule{Kind: k, Value: v})
	}
}
