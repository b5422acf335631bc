package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Kind discriminates the shapes a payload value can take. The zero value is
// KindAbsent, so an unpopulated property reads as absent rather than null.
type Kind uint8

const (
	KindAbsent Kind = iota // property not present in the payload
	KindNull               // property present with an explicit JSON null
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is one decoded JSON payload value. Exactly one payload field is
// meaningful, selected by the kind. Values are immutable once built.
type Value struct {
	kind Kind
	b    bool
	n    json.Number
	s    string
	arr  []Value
	obj  map[string]Value
}

// Absent is the distinguished marker for a property missing from its payload.
// It is distinct from Null, which records an explicit JSON null.
var Absent = Value{kind: KindAbsent}

// Null records an explicit JSON null.
var Null = Value{kind: KindNull}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func NumberValue(n json.Number) Value {
	return Value{kind: KindNumber, n: n}
}

func IntValue(i int64) Value {
	return Value{kind: KindNumber, n: json.Number(fmt.Sprintf("%d", i))}
}

func FloatValue(f float64) Value {
	return Value{kind: KindNumber, n: json.Number(fmt.Sprintf("%g", f))}
}

func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

func ArrayValue(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

func ObjectValue(fields map[string]Value) Value {
	return Value{kind: KindObject, obj: fields}
}

// DecodeValue decodes a JSON document into a Value. Numbers are kept in their
// source form via json.Number so integral and fractional values stay
// distinguishable.
func DecodeValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Absent, err
	}
	return ValueOf(raw), nil
}

// ValueOf converts the result of a json.Unmarshal (or hand-built literals in
// tests) into a Value. Unrecognised Go types convert to their string form.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return BoolValue(t)
	case json.Number:
		return NumberValue(t)
	case int:
		return IntValue(int64(t))
	case int64:
		return IntValue(t)
	case float64:
		return FloatValue(t)
	case string:
		return StringValue(t)
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = ValueOf(e)
		}
		return Value{kind: KindArray, arr: elems}
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			fields[k] = ValueOf(e)
		}
		return Value{kind: KindObject, obj: fields}
	}
	return StringValue(fmt.Sprint(v))
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is the absent marker.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// IsNull reports whether the value is an explicit null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean payload. Meaningful only for KindBool.
func (v Value) Bool() bool {
	return v.b
}

// Number returns the numeric payload. Meaningful only for KindNumber.
func (v Value) Number() json.Number {
	return v.n
}

// Text returns the string payload. Meaningful only for KindString.
func (v Value) Text() string {
	return v.s
}

// Elems returns the elements of an array value.
func (v Value) Elems() []Value {
	return v.arr
}

// Field returns the named field of an object value.
func (v Value) Field(name string) (Value, bool) {
	f, ok := v.obj[name]
	return f, ok
}

// Keys returns the field names of an object value, sorted for determinism.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the element count for arrays and the field count for objects.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Interface converts the value back to plain decoded-JSON Go types. The
// second return is false for the absent marker, which has no JSON rendering.
func (v Value) Interface() (any, bool) {
	switch v.kind {
	case KindAbsent:
		return nil, false
	case KindNull:
		return nil, true
	case KindBool:
		return v.b, true
	case KindNumber:
		return v.n, true
	case KindString:
		return v.s, true
	case KindArray:
		out := make([]any, 0, len(v.arr))
		for _, e := range v.arr {
			if ev, ok := e.Interface(); ok {
				out = append(out, ev)
			}
		}
		return out, true
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			if ev, ok := e.Interface(); ok {
				out[k] = ev
			}
		}
		return out, true
	}
	return nil, false
}

// String renders the value compactly for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindNumber:
		return v.n.String()
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.arr))
	case KindObject:
		return fmt.Sprintf("object{%d}", len(v.obj))
	}
	return "unknown"
}
