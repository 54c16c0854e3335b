package report

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// Kind is the type of a report field value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single report field value. The zero Value is null, which means
// "could not determine".
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	obj  *Body
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Object returns a nested object value. A nil body is null.
func Object(b *Body) Value {
	if b == nil {
		return Null()
	}
	return Value{kind: KindObject, obj: b}
}

// IntPtr returns an integer value, or null when i is nil.
func IntPtr(i *int) Value {
	if i == nil {
		return Null()
	}
	return Int(int64(*i))
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean and whether v holds one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer and whether v holds one.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsString returns the string and whether v holds one.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsObject returns the nested body and whether v holds one.
func (v Value) AsObject() (*Body, bool) { return v.obj, v.kind == KindObject }

// Equal reports whether v and o hold the same kind and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindString:
		return v.s == o.s
	case KindObject:
		return v.obj.Equal(o.obj)
	}
	return true
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return strconv.Quote(v.s)
	case KindObject:
		data, _ := v.obj.MarshalJSON()
		return string(data)
	}
	return "null"
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindString:
		return json.Marshal(v.s)
	case KindObject:
		return v.obj.MarshalJSON()
	}
	return nil, fmt.Errorf("report: cannot encode value of kind %s", v.kind)
}

var _ msgpack.CustomEncoder = Value{}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindInt:
		return enc.EncodeInt(v.i)
	case KindString:
		return enc.EncodeString(v.s)
	case KindObject:
		return v.obj.EncodeMsgpack(enc)
	}
	return fmt.Errorf("report: cannot encode value of kind %s", v.kind)
}
