// Package report defines the report body sent to the collection endpoint and
// the assembler that merges collector output into it.
package report

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Body is an insertion-ordered mapping from field name to Value. Names are
// unique: setting an existing name replaces the value in its original position.
type Body struct {
	keys   []string
	values map[string]Value
}

// NewBody returns an empty Body.
func NewBody() *Body {
	return &Body{values: make(map[string]Value)}
}

// Set stores v under name and returns b for chaining.
func (b *Body) Set(name string, v Value) *Body {
	if b.values == nil {
		b.values = make(map[string]Value)
	}
	if _, ok := b.values[name]; !ok {
		b.keys = append(b.keys, name)
	}
	b.values[name] = v
	return b
}

// Get returns the value stored under name.
func (b *Body) Get(name string) (Value, bool) {
	if b == nil {
		return Value{}, false
	}
	v, ok := b.values[name]
	return v, ok
}

// Has reports whether name is present, null or not.
func (b *Body) Has(name string) bool {
	_, ok := b.Get(name)
	return ok
}

// Len returns the number of fields.
func (b *Body) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Keys returns the field names in insertion order.
func (b *Body) Keys() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.keys...)
}

// Range calls fn for every field in insertion order until fn returns false.
func (b *Body) Range(fn func(name string, v Value) bool) {
	if b == nil {
		return
	}
	for _, k := range b.keys {
		if !fn(k, b.values[k]) {
			return
		}
	}
}

// Merge copies every field of other into b, last writer wins.
func (b *Body) Merge(other *Body) *Body {
	other.Range(func(name string, v Value) bool {
		b.Set(name, v)
		return true
	})
	return b
}

// Equal reports whether b and o hold the same fields in the same order.
func (b *Body) Equal(o *Body) bool {
	if b.Len() != o.Len() {
		return false
	}
	if b.Len() == 0 {
		return true
	}
	for i, k := range b.keys {
		if o.keys[i] != k || !b.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON implements json.Marshaler, keeping insertion order.
func (b *Body) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := b.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ msgpack.CustomEncoder = (*Body)(nil)

// EncodeMsgpack implements msgpack.CustomEncoder, keeping insertion order.
func (b *Body) EncodeMsgpack(enc *msgpack.Encoder) error {
	if b == nil {
		return enc.EncodeNil()
	}
	if err := enc.EncodeMapLen(len(b.keys)); err != nil {
		return err
	}
	for _, k := range b.keys {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := b.values[k].EncodeMsgpack(enc); err != nil {
			return err
		}
	}
	return nil
}

// Assemble merges collector outputs into one Body in the order given. Nil
// parts are skipped; on a name collision the later part wins.
func Assemble(parts ...*Body) *Body {
	body := NewBody()
	for _, p := range parts {
		body.Merge(p)
	}
	return body
}
