package ruleconfig

import (
	"bytes"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Serialize renders the document back to YAML text. It is total: any
// structurally valid Document serializes without error. Keys are emitted in
// KeyOrder, rules in RuleOrder, and comments are re-attached to the keys they
// anchor to; comments anchored to keys that no longer exist are dropped.
func Serialize(d *Document) []byte {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	var lastKeyNode *yaml.Node
	for _, key := range serializationOrder(d) {
		valNode := encodeTopLevel(d, key)
		if valNode == nil {
			continue
		}
		keyNode := scalarString(key)
		if text, ok := d.Comments[key]; ok && text != "" {
			keyNode.HeadComment = text
		}
		mapping.Content = append(mapping.Content, keyNode, valNode)
		lastKeyNode = keyNode
	}

	if text, ok := d.Comments[DocumentAnchor]; ok && text != "" {
		if lastKeyNode != nil {
			lastKeyNode.FootComment = text
		} else {
			// Comment-only document.
			var buf bytes.Buffer
			for _, line := range splitLines(text) {
				buf.WriteString("# ")
				buf.WriteString(line)
				buf.WriteString("\n")
			}
			return buf.Bytes()
		}
	}

	if len(mapping.Content) == 0 {
		return []byte{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	// The node tree is built from scalars, sequences, and mappings only, so
	// encoding cannot fail.
	_ = enc.Encode(mapping)
	_ = enc.Close()
	return buf.Bytes()
}

// serializationOrder yields KeyOrder first, then any present key KeyOrder is
// missing (a defensive path for hand-built documents) in canonical order.
func serializationOrder(d *Document) []string {
	order := make([]string, 0, len(d.KeyOrder))
	seen := map[string]bool{}
	for _, key := range d.KeyOrder {
		if !seen[key] {
			order = append(order, key)
			seen[key] = true
		}
	}

	canonical := []string{
		KeyDisabledRules, KeyOptInRules, KeyAnalyzerRules, KeyOnlyRules,
		KeyIncluded, KeyExcluded, KeyReporter, KeyWarningThreshold,
		KeyStrict, KeyRules,
	}
	for _, key := range canonical {
		if !seen[key] && topLevelPresent(d, key) {
			order = append(order, key)
			seen[key] = true
		}
	}

	var unknown []string
	for key := range d.Unknown {
		if !seen[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return append(order, unknown...)
}

func topLevelPresent(d *Document, key string) bool {
	switch key {
	case KeyRules:
		return len(d.Rules) > 0
	case KeyIncluded:
		return len(d.Included) > 0
	case KeyExcluded:
		return len(d.Excluded) > 0
	case KeyReporter:
		return d.Reporter != ""
	case KeyDisabledRules:
		return len(d.DisabledRules) > 0
	case KeyOptInRules:
		return len(d.OptInRules) > 0
	case KeyAnalyzerRules:
		return len(d.AnalyzerRules) > 0
	case KeyOnlyRules:
		return len(d.OnlyRules) > 0
	case KeyWarningThreshold:
		return d.WarningThreshold != nil
	case KeyStrict:
		return d.Strict != nil
	default:
		_, ok := d.Unknown[key]
		return ok
	}
}

func encodeTopLevel(d *Document, key string) *yaml.Node {
	if !topLevelPresent(d, key) {
		return nil
	}
	switch key {
	case KeyRules:
		return encodeRules(d)
	case KeyIncluded:
		return stringSequence(d.Included)
	case KeyExcluded:
		return stringSequence(d.Excluded)
	case KeyReporter:
		return scalarString(d.Reporter)
	case KeyDisabledRules:
		return stringSequence(d.DisabledRules)
	case KeyOptInRules:
		return stringSequence(d.OptInRules)
	case KeyAnalyzerRules:
		return stringSequence(d.AnalyzerRules)
	case KeyOnlyRules:
		return stringSequence(d.OnlyRules)
	case KeyWarningThreshold:
		return scalarInt(int64(*d.WarningThreshold))
	case KeyStrict:
		return scalarBool(*d.Strict)
	default:
		return encodeValue(d.Unknown[key])
	}
}

func encodeRules(d *Document) *yaml.Node {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, id := range ruleSerializationOrder(d) {
		entry := d.Rules[id]
		mapping.Content = append(mapping.Content, scalarString(id), encodeRuleEntry(entry))
	}
	return mapping
}

// ruleSerializationOrder yields RuleOrder first, then any rule RuleOrder is
// missing, sorted.
func ruleSerializationOrder(d *Document) []string {
	order := make([]string, 0, len(d.Rules))
	seen := map[string]bool{}
	for _, id := range d.RuleOrder {
		if _, ok := d.Rules[id]; ok && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	var rest []string
	for id := range d.Rules {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func encodeRuleEntry(entry RuleEntry) *yaml.Node {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	mapping.Content = append(mapping.Content, scalarString("enabled"), scalarBool(entry.Enabled))
	if entry.Severity != nil {
		mapping.Content = append(mapping.Content, scalarString("severity"), scalarString(string(*entry.Severity)))
	}
	if len(entry.Params) > 0 {
		params := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		names := make([]string, 0, len(entry.Params))
		for name := range entry.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			params.Content = append(params.Content, scalarString(name), encodeValue(entry.Params[name]))
		}
		mapping.Content = append(mapping.Content, scalarString("parameters"), params)
	}
	return mapping
}

func encodeValue(v Value) *yaml.Node {
	switch v.Kind() {
	case KindBool:
		return scalarBool(v.Bool())
	case KindInt:
		return scalarInt(v.Int())
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(v.Float())}
	case KindString:
		return scalarString(v.Str())
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.List() {
			seq.Content = append(seq.Content, encodeValue(item))
		}
		return seq
	case KindMap:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Entries() {
			mapping.Content = append(mapping.Content, scalarString(e.Key), encodeValue(e.Value))
		}
		return mapping
	default:
		return scalarString("")
	}
}

// formatFloat keeps integral floats tagged as floats across a round trip by
// forcing a decimal point.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !bytes.ContainsAny([]byte(s), ".eE") {
		s += ".0"
	}
	return s
}

func stringSequence(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, scalarString(v))
	}
	return seq
}

func scalarString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func scalarBool(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func scalarInt(n int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(n, 10)}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
