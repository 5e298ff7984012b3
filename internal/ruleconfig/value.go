package ruleconfig

// Kind identifies which branch of the Value union is populated.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// MapEntry is one key/value pair of a map-valued parameter. Entries keep the
// order they appeared in so serialization does not reshuffle hand-written files.
type MapEntry struct {
	Key   string
	Value Value
}

// Value is a closed union over the parameter types a rule accepts: bool, int,
// float, string, ordered list, or nested string-keyed map, plus an explicit
// null used by the unknown-key passthrough. Every consumer switches on Kind;
// there is no open interface{} branch.
type Value struct {
	kind     Kind
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	listVal  []Value
	mapVal   []MapEntry
}

func BoolValue(v bool) Value      { return Value{kind: KindBool, boolVal: v} }
func IntValue(v int64) Value      { return Value{kind: KindInt, intVal: v} }
func FloatValue(v float64) Value  { return Value{kind: KindFloat, floatVal: v} }
func StringValue(v string) Value  { return Value{kind: KindString, strVal: v} }
func ListValue(v ...Value) Value  { return Value{kind: KindList, listVal: v} }
func MapValue(v ...MapEntry) Value { return Value{kind: KindMap, mapVal: v} }
func NullValue() Value             { return Value{kind: KindNull} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Bool() bool          { return v.boolVal }
func (v Value) Int() int64          { return v.intVal }
func (v Value) Float() float64      { return v.floatVal }
func (v Value) Str() string         { return v.strVal }
func (v Value) List() []Value       { return v.listVal }
func (v Value) Entries() []MapEntry { return v.mapVal }

// Lookup returns the value stored under key in a map-valued parameter.
func (v Value) Lookup(key string) (Value, bool) {
	for _, e := range v.mapVal {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Equal reports deep equality. Lists compare element-wise in order; maps
// compare by key regardless of entry order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.boolVal == other.boolVal
	case KindInt:
		return v.intVal == other.intVal
	case KindFloat:
		return v.floatVal == other.floatVal
	case KindString:
		return v.strVal == other.strVal
	case KindList:
		if len(v.listVal) != len(other.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.mapVal) != len(other.mapVal) {
			return false
		}
		for _, e := range v.mapVal {
			o, ok := other.Lookup(e.Key)
			if !ok || !e.Value.Equal(o) {
				return false
			}
		}
		return true
	case KindNull:
		return true
	default:
		return false
	}
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		list := make([]Value, len(v.listVal))
		for i := range v.listVal {
			list[i] = v.listVal[i].Clone()
		}
		return Value{kind: KindList, listVal: list}
	case KindMap:
		entries := make([]MapEntry, len(v.mapVal))
		for i, e := range v.mapVal {
			entries[i] = MapEntry{Key: e.Key, Value: e.Value.Clone()}
		}
		return Value{kind: KindMap, mapVal: entries}
	default:
		return v
	}
}
