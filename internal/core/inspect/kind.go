package inspect

import "encoding/json"

// Kind names the JSON type of a decoded value.
type Kind string

const (
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindNull    Kind = "null"
	KindMissing Kind = "missing"
)

// IsPrimitive reports whether k is a scalar kind.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindNull:
		return true
	}
	return false
}

// KindOf returns the JSON kind of v.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case string:
		return KindString
	case json.Number, float64, float32, int, int64:
		return KindNumber
	case bool:
		return KindBoolean
	}
	return KindObject
}

// Field describes one member of a JSON object.
type Field struct {
	Name    string
	Present bool
	Value   any
	Kind    Kind
}

// FieldOf looks up name in v. A non-object v yields a missing field.
func FieldOf(v any, name string) Field {
	obj, ok := v.(map[string]any)
	if !ok {
		return Field{Name: name, Kind: KindMissing}
	}

	val, present := obj[name]
	if !present {
		return Field{Name: name, Kind: KindMissing}
	}

	return Field{Name: name, Present: true, Value: val, Kind: KindOf(val)}
}
