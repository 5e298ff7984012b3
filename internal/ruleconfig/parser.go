package ruleconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	scerrors "github.com/lint-studio/lint-studio/pkg/shared/errors"
)

// maxDocumentSize is the maximum size of a configuration file (1 MB). A config
// with hundreds of rules and detailed parameters is well under 100 KB.
const maxDocumentSize = 1 << 20

// ParseFile reads and parses the configuration document at path.
func ParseFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, scerrors.NewIOError("stat config", path, err)
	}
	if info.Size() > maxDocumentSize {
		return nil, scerrors.NewParseError(path, fmt.Sprintf("file exceeds maximum size (%d bytes > %d byte limit)", info.Size(), maxDocumentSize))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, scerrors.NewIOError("read config", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*scerrors.ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse converts document text into a Document. It fails with a ParseError on
// malformed syntax and never returns a partially populated model: the document
// is built into a scratch value and only handed back on full success.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, scerrors.NewParseError("", err.Error())
	}

	doc := NewDocument()
	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty file. Comment-only files keep their text under the document anchor.
		if text := cleanComment(root.HeadComment, root.FootComment); text != "" {
			doc.Comments[DocumentAnchor] = text
		}
		return doc, nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, scerrors.NewParseError("", fmt.Sprintf("expected a top-level mapping, got %s on line %d", nodeKindName(mapping), mapping.Line))
	}

	// A leading file comment may attach to the document node instead of the
	// first key, depending on blank lines. Fold it into the first key's anchor.
	if text := cleanComment(root.HeadComment, mapping.HeadComment); text != "" && len(mapping.Content) > 0 {
		appendComment(doc.Comments, mapping.Content[0].Value, text)
	}
	if text := cleanComment(root.FootComment, mapping.FootComment); text != "" {
		appendComment(doc.Comments, DocumentAnchor, text)
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valNode := resolveAlias(mapping.Content[i+1])
		key := keyNode.Value

		if containsString(doc.KeyOrder, key) {
			return nil, scerrors.NewParseError("", fmt.Sprintf("duplicate top-level key %q on line %d", key, keyNode.Line))
		}
		doc.KeyOrder = append(doc.KeyOrder, key)

		last := i+2 >= len(mapping.Content)
		if err := collectComments(doc, key, keyNode, valNode, last); err != nil {
			return nil, err
		}
		collectNestedComments(doc, key, valNode)

		var err error
		switch key {
		case KeyRules:
			err = parseRules(doc, valNode)
		case KeyIncluded:
			doc.Included, err = parseStringList(key, valNode)
		case KeyExcluded:
			doc.Excluded, err = parseStringList(key, valNode)
		case KeyReporter:
			doc.Reporter, err = parseString(key, valNode)
		case KeyDisabledRules:
			doc.DisabledRules, err = parseStringList(key, valNode)
		case KeyOptInRules:
			doc.OptInRules, err = parseStringList(key, valNode)
		case KeyAnalyzerRules:
			doc.AnalyzerRules, err = parseStringList(key, valNode)
		case KeyOnlyRules:
			doc.OnlyRules, err = parseStringList(key, valNode)
		case KeyWarningThreshold:
			var n int
			n, err = parseInt(key, valNode)
			if err == nil {
				doc.WarningThreshold = &n
			}
		case KeyStrict:
			var b bool
			b, err = parseBool(key, valNode)
			if err == nil {
				doc.Strict = &b
			}
		default:
			// Unrecognized keys are preserved structurally, never dropped.
			var v Value
			v, err = decodeValue(valNode)
			if err == nil {
				doc.Unknown[key] = v
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// parseRules decodes the rules mapping: rule id -> {enabled, severity, parameters}.
func parseRules(doc *Document, node *yaml.Node) error {
	if node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return scerrors.NewParseError("", fmt.Sprintf("rules must be a mapping, got %s on line %d", nodeKindName(node), node.Line))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		entryNode := resolveAlias(node.Content[i+1])
		if _, dup := doc.Rules[id]; dup {
			return scerrors.NewParseError("", fmt.Sprintf("duplicate rule %q on line %d", id, node.Content[i].Line))
		}
		entry, err := parseRuleEntry(id, entryNode)
		if err != nil {
			return err
		}
		doc.Rules[id] = entry
		doc.RuleOrder = append(doc.RuleOrder, id)
	}
	return nil
}

func parseRuleEntry(id string, node *yaml.Node) (RuleEntry, error) {
	// A bare rule id with no body means "configured and enabled".
	entry := RuleEntry{Enabled: true}
	if node.Tag == "!!null" {
		return entry, nil
	}
	if node.Kind != yaml.MappingNode {
		return entry, scerrors.NewParseError("", fmt.Sprintf("rule %q must be a mapping, got %s on line %d", id, nodeKindName(node), node.Line))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		valNode := resolveAlias(node.Content[i+1])
		switch key {
		case "enabled":
			b, err := parseBool(fmt.Sprintf("rules.%s.enabled", id), valNode)
			if err != nil {
				return entry, err
			}
			entry.Enabled = b
		case "severity":
			s, err := parseString(fmt.Sprintf("rules.%s.severity", id), valNode)
			if err != nil {
				return entry, err
			}
			sev := Severity(s)
			entry.Severity = &sev
		case "parameters":
			params, err := parseParams(id, valNode)
			if err != nil {
				return entry, err
			}
			entry.Params = params
		default:
			return entry, scerrors.NewParseError("", fmt.Sprintf("unknown key %q in rule %q on line %d", key, id, node.Content[i].Line))
		}
	}
	return entry, nil
}

func parseParams(id string, node *yaml.Node) (map[string]Value, error) {
	if node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, scerrors.NewParseError("", fmt.Sprintf("parameters of rule %q must be a mapping, got %s on line %d", id, nodeKindName(node), node.Line))
	}
	params := make(map[string]Value, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		v, err := decodeValue(resolveAlias(node.Content[i+1]))
		if err != nil {
			return nil, err
		}
		params[name] = v
	}
	return params, nil
}

// decodeValue converts a YAML node into the closed Value union. Nodes outside
// the union (timestamps, binary) are a ParseError.
func decodeValue(node *yaml.Node) (Value, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!bool":
			b, err := strconv.ParseBool(node.Value)
			if err != nil {
				return Value{}, scerrors.NewParseError("", fmt.Sprintf("invalid boolean %q on line %d", node.Value, node.Line))
			}
			return BoolValue(b), nil
		case "!!int":
			n, err := strconv.ParseInt(node.Value, 0, 64)
			if err != nil {
				return Value{}, scerrors.NewParseError("", fmt.Sprintf("invalid integer %q on line %d", node.Value, node.Line))
			}
			return IntValue(n), nil
		case "!!float":
			f, err := strconv.ParseFloat(node.Value, 64)
			if err != nil {
				return Value{}, scerrors.NewParseError("", fmt.Sprintf("invalid float %q on line %d", node.Value, node.Line))
			}
			return FloatValue(f), nil
		case "!!str":
			return StringValue(node.Value), nil
		case "!!null":
			return NullValue(), nil
		default:
			return Value{}, scerrors.NewParseError("", fmt.Sprintf("unsupported scalar %s on line %d", node.Tag, node.Line))
		}
	case yaml.SequenceNode:
		list := make([]Value, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeValue(item)
			if err != nil {
				return Value{}, err
			}
			list = append(list, v)
		}
		return ListValue(list...), nil
	case yaml.MappingNode:
		entries := make([]MapEntry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, scerrors.NewParseError("", fmt.Sprintf("non-scalar mapping key on line %d", keyNode.Line))
			}
			v, err := decodeValue(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, MapEntry{Key: keyNode.Value, Value: v})
		}
		return MapValue(entries...), nil
	default:
		return Value{}, scerrors.NewParseError("", fmt.Sprintf("unsupported value on line %d", node.Line))
	}
}

func parseString(key string, node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!str" {
		return "", scerrors.NewParseError("", fmt.Sprintf("%s must be a string, got %s on line %d", key, nodeTagOrKind(node), node.Line))
	}
	return node.Value, nil
}

func parseBool(key string, node *yaml.Node) (bool, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!bool" {
		return false, scerrors.NewParseError("", fmt.Sprintf("%s must be a boolean, got %s on line %d", key, nodeTagOrKind(node), node.Line))
	}
	b, err := strconv.ParseBool(node.Value)
	if err != nil {
		return false, scerrors.NewParseError("", fmt.Sprintf("invalid boolean for %s on line %d", key, node.Line))
	}
	return b, nil
}

func parseInt(key string, node *yaml.Node) (int, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!int" {
		return 0, scerrors.NewParseError("", fmt.Sprintf("%s must be an integer, got %s on line %d", key, nodeTagOrKind(node), node.Line))
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil {
		return 0, scerrors.NewParseError("", fmt.Sprintf("invalid integer for %s on line %d", key, node.Line))
	}
	return n, nil
}

func parseStringList(key string, node *yaml.Node) ([]string, error) {
	if node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, scerrors.NewParseError("", fmt.Sprintf("%s must be a list, got %s on line %d", key, nodeTagOrKind(node), node.Line))
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.ScalarNode {
			return nil, scerrors.NewParseError("", fmt.Sprintf("%s entries must be strings, got %s on line %d", key, nodeKindName(item), item.Line))
		}
		out = append(out, item.Value)
	}
	return out, nil
}

// collectComments associates head and inline comments with the current key.
// Foot comments of the last entry are trailing end-of-file text and anchor to
// the document sentinel; any other foot comment stays with its own key so no
// text is lost across a round trip.
func collectComments(doc *Document, key string, keyNode, valNode *yaml.Node, last bool) error {
	var pieces []string
	if text := cleanComment(keyNode.HeadComment); text != "" {
		pieces = append(pieces, text)
	}
	if text := cleanComment(keyNode.LineComment, valNode.LineComment); text != "" {
		pieces = append(pieces, text)
	}

	foot := cleanComment(keyNode.FootComment, valNode.FootComment)
	if foot != "" {
		if last {
			appendComment(doc.Comments, DocumentAnchor, foot)
		} else {
			pieces = append(pieces, foot)
		}
	}

	if len(pieces) > 0 {
		appendComment(doc.Comments, key, strings.Join(pieces, "\n"))
	}
	return nil
}

// collectNestedComments gathers comment text attached below a top-level value,
// such as a comment above a rule id or above a list item, and anchors it to the
// enclosing top-level key so no hand-authored text is lost across a round trip.
func collectNestedComments(doc *Document, anchor string, node *yaml.Node) {
	for _, child := range node.Content {
		if text := cleanComment(child.HeadComment, child.LineComment, child.FootComment); text != "" {
			appendComment(doc.Comments, anchor, text)
		}
		collectNestedComments(doc, anchor, child)
	}
}

func appendComment(comments map[string]string, anchor, text string) {
	if existing, ok := comments[anchor]; ok && existing != "" {
		comments[anchor] = existing + "\n" + text
		return
	}
	comments[anchor] = text
}

// cleanComment strips the leading '#' markers yaml.v3 keeps on decoded
// comments and joins the given fragments.
func cleanComment(fragments ...string) string {
	var lines []string
	for _, fragment := range fragments {
		if fragment == "" {
			continue
		}
		for _, line := range strings.Split(fragment, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "#")
			line = strings.TrimPrefix(line, " ")
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return node.Alias
	}
	return node
}

func nodeKindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.AliasNode:
		return "an alias"
	case yaml.DocumentNode:
		return "a document"
	default:
		return "an unknown node"
	}
}

func nodeTagOrKind(node *yaml.Node) string {
	if node.Kind == yaml.ScalarNode {
		return node.Tag
	}
	return nodeKindName(node)
}
