package ruleconfig

// Severity is the reported level of a rule violation.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Recognized top-level keys of the configuration document.
const (
	KeyRules            = "rules"
	KeyIncluded         = "included"
	KeyExcluded         = "excluded"
	KeyReporter         = "reporter"
	KeyDisabledRules    = "disabled_rules"
	KeyOptInRules       = "opt_in_rules"
	KeyAnalyzerRules    = "analyzer_rules"
	KeyOnlyRules        = "only_rules"
	KeyWarningThreshold = "warning_threshold"
	KeyStrict           = "strict"
)

// DocumentAnchor is the comment anchor for trailing end-of-file comments that
// do not precede any key.
const DocumentAnchor = "__document__"

var recognizedKeys = map[string]bool{
	KeyRules:            true,
	KeyIncluded:         true,
	KeyExcluded:         true,
	KeyReporter:         true,
	KeyDisabledRules:    true,
	KeyOptInRules:       true,
	KeyAnalyzerRules:    true,
	KeyOnlyRules:        true,
	KeyWarningThreshold: true,
	KeyStrict:           true,
}

// RuleEntry is the per-rule configuration: the enabled flag, an optional
// severity override, and optional dynamic parameters.
type RuleEntry struct {
	Enabled  bool
	Severity *Severity
	Params   map[string]Value
}

// Equal reports structural equality including deep parameter comparison.
func (r RuleEntry) Equal(other RuleEntry) bool {
	if r.Enabled != other.Enabled {
		return false
	}
	if (r.Severity == nil) != (other.Severity == nil) {
		return false
	}
	if r.Severity != nil && *r.Severity != *other.Severity {
		return false
	}
	if len(r.Params) != len(other.Params) {
		return false
	}
	for name, v := range r.Params {
		o, ok := other.Params[name]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (r RuleEntry) Clone() RuleEntry {
	out := RuleEntry{Enabled: r.Enabled}
	if r.Severity != nil {
		sev := *r.Severity
		out.Severity = &sev
	}
	if r.Params != nil {
		out.Params = make(map[string]Value, len(r.Params))
		for name, v := range r.Params {
			out.Params[name] = v.Clone()
		}
	}
	return out
}

// Document is the in-memory form of one linter configuration file.
//
// KeyOrder records every top-level key actually present, exactly once, in
// original order, so re-serializing an unchanged document keeps its layout.
// RuleOrder does the same for the entries of the rules mapping. Comments maps
// an anchor key (a top-level key or DocumentAnchor) to the comment text that
// preceded it. Unknown holds top-level keys the model does not recognize;
// they round-trip structurally instead of being dropped.
type Document struct {
	Rules            map[string]RuleEntry
	Included         []string
	Excluded         []string
	Reporter         string
	DisabledRules    []string
	OptInRules       []string
	AnalyzerRules    []string
	OnlyRules        []string
	WarningThreshold *int
	Strict           *bool
	Comments         map[string]string
	KeyOrder         []string
	RuleOrder        []string
	Unknown          map[string]Value
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Rules:    map[string]RuleEntry{},
		Comments: map[string]string{},
		Unknown:  map[string]Value{},
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Reporter:      d.Reporter,
		Included:      cloneStrings(d.Included),
		Excluded:      cloneStrings(d.Excluded),
		DisabledRules: cloneStrings(d.DisabledRules),
		OptInRules:    cloneStrings(d.OptInRules),
		AnalyzerRules: cloneStrings(d.AnalyzerRules),
		OnlyRules:     cloneStrings(d.OnlyRules),
		KeyOrder:      cloneStrings(d.KeyOrder),
		RuleOrder:     cloneStrings(d.RuleOrder),
		Rules:         make(map[string]RuleEntry, len(d.Rules)),
		Comments:      make(map[string]string, len(d.Comments)),
		Unknown:       make(map[string]Value, len(d.Unknown)),
	}
	if d.WarningThreshold != nil {
		v := *d.WarningThreshold
		out.WarningThreshold = &v
	}
	if d.Strict != nil {
		v := *d.Strict
		out.Strict = &v
	}
	for id, entry := range d.Rules {
		out.Rules[id] = entry.Clone()
	}
	for anchor, text := range d.Comments {
		out.Comments[anchor] = text
	}
	for key, v := range d.Unknown {
		out.Unknown[key] = v.Clone()
	}
	return out
}

// Equal reports structural equality: fields, comments, and key order.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Reporter != other.Reporter {
		return false
	}
	if !equalStrings(d.Included, other.Included) ||
		!equalStrings(d.Excluded, other.Excluded) ||
		!equalStrings(d.DisabledRules, other.DisabledRules) ||
		!equalStrings(d.OptInRules, other.OptInRules) ||
		!equalStrings(d.AnalyzerRules, other.AnalyzerRules) ||
		!equalStrings(d.OnlyRules, other.OnlyRules) ||
		!equalStrings(d.KeyOrder, other.KeyOrder) ||
		!equalStrings(d.RuleOrder, other.RuleOrder) {
		return false
	}
	if (d.WarningThreshold == nil) != (other.WarningThreshold == nil) {
		return false
	}
	if d.WarningThreshold != nil && *d.WarningThreshold != *other.WarningThreshold {
		return false
	}
	if (d.Strict == nil) != (other.Strict == nil) {
		return false
	}
	if d.Strict != nil && *d.Strict != *other.Strict {
		return false
	}
	if len(d.Rules) != len(other.Rules) {
		return false
	}
	for id, entry := range d.Rules {
		o, ok := other.Rules[id]
		if !ok || !entry.Equal(o) {
			return false
		}
	}
	if len(d.Comments) != len(other.Comments) {
		return false
	}
	for anchor, text := range d.Comments {
		if other.Comments[anchor] != text {
			return false
		}
	}
	if len(d.Unknown) != len(other.Unknown) {
		return false
	}
	for key, v := range d.Unknown {
		o, ok := other.Unknown[key]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}

// SetRule inserts or replaces a rule entry, keeping RuleOrder and KeyOrder
// consistent.
func (d *Document) SetRule(id string, entry RuleEntry) {
	if d.Rules == nil {
		d.Rules = map[string]RuleEntry{}
	}
	if _, exists := d.Rules[id]; !exists {
		d.RuleOrder = append(d.RuleOrder, id)
	}
	d.Rules[id] = entry
	d.ensureKey(KeyRules)
}

// RemoveRule deletes a rule entry and drops the rules key when the mapping
// empties. Comments anchored to removed keys are dropped on serialization.
func (d *Document) RemoveRule(id string) {
	if _, exists := d.Rules[id]; !exists {
		return
	}
	delete(d.Rules, id)
	d.RuleOrder = removeString(d.RuleOrder, id)
	if len(d.Rules) == 0 {
		d.removeKey(KeyRules)
	}
}

// EnableRule turns a rule on, removing it from the disabled list (the list key
// disappears when it empties) and registering it as opt-in when optIn is set.
func (d *Document) EnableRule(id string, severity *Severity, optIn bool) {
	entry := d.Rules[id]
	entry.Enabled = true
	if severity != nil {
		sev := *severity
		entry.Severity = &sev
	}
	d.SetRule(id, entry)

	d.DisabledRules = removeString(d.DisabledRules, id)
	if len(d.DisabledRules) == 0 {
		d.DisabledRules = nil
		d.removeKey(KeyDisabledRules)
	}

	if optIn && !containsString(d.OptInRules, id) {
		d.OptInRules = append(d.OptInRules, id)
		d.ensureKey(KeyOptInRules)
	}
}

// DisableRule turns a rule off and records it in the disabled list.
func (d *Document) DisableRule(id string) {
	if entry, ok := d.Rules[id]; ok {
		entry.Enabled = false
		d.Rules[id] = entry
	}
	if !containsString(d.DisabledRules, id) {
		d.DisabledRules = append(d.DisabledRules, id)
		d.ensureKey(KeyDisabledRules)
	}
}

// IsRuleEnabled reports whether the rule is effectively on: explicitly enabled
// or absent from every disable mechanism while listed in only/opt-in lists.
func (d *Document) IsRuleEnabled(id string) bool {
	if containsString(d.DisabledRules, id) {
		return false
	}
	if entry, ok := d.Rules[id]; ok {
		return entry.Enabled
	}
	if len(d.OnlyRules) > 0 {
		return containsString(d.OnlyRules, id)
	}
	return containsString(d.OptInRules, id)
}

func (d *Document) ensureKey(key string) {
	if !containsString(d.KeyOrder, key) {
		d.KeyOrder = append(d.KeyOrder, key)
	}
}

func (d *Document) removeKey(key string) {
	d.KeyOrder = removeString(d.KeyOrder, key)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	if len(out) == 0 && list != nil {
		return list[:0]
	}
	return out
}
