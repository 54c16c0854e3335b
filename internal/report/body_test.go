package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestBody_MarshalJSON_KeepsOrder(t *testing.T) {
	b := NewBody().
		Set("diskspaceTotal", Int(1000)).
		Set("diskspaceFree", Int(400)).
		Set("cronApt", Bool(false)).
		Set("needrestart", Null()).
		Set("note", String(`say "hi"`))

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"diskspaceTotal":1000,"diskspaceFree":400,"cronApt":false,"needrestart":null,"note":"say \"hi\""}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestBody_SetReplacesInPlace(t *testing.T) {
	b := NewBody().Set("a", Int(1)).Set("b", Int(2)).Set("a", Int(3))

	if b.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", b.Len())
	}
	keys := b.Keys()
	if keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys: got %v, want [a b]", keys)
	}
	v, _ := b.Get("a")
	if i, ok := v.AsInt(); !ok || i != 3 {
		t.Errorf("a: got %v, want 3", v)
	}
}

func TestBody_NestedObject(t *testing.T) {
	users := NewBody().Set("fenhl", Bool(true)).Set("pi", Bool(false))
	b := NewBody().Set("oldconffiles", Object(users))

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"oldconffiles":{"fenhl":true,"pi":false}}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestBody_EmptyAndNil(t *testing.T) {
	data, err := json.Marshal(NewBody())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("empty body: got %s, want {}", data)
	}

	var nilBody *Body
	if nilBody.Len() != 0 || nilBody.Has("x") || nilBody.Keys() != nil {
		t.Error("nil body should behave as empty")
	}
}

func TestBody_EncodeMsgpack(t *testing.T) {
	b := NewBody().
		Set("diskspaceTotal", Int(1000)).
		Set("cronApt", Bool(true)).
		Set("needrestart", Null()).
		Set("name", String("x"))

	data, err := msgpack.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	n, err := dec.DecodeMapLen()
	if err != nil {
		t.Fatalf("decode map len: %v", err)
	}
	if n != 4 {
		t.Fatalf("map len: got %d, want 4", n)
	}

	wantKeys := []string{"diskspaceTotal", "cronApt", "needrestart", "name"}
	for i, want := range wantKeys {
		key, err := dec.DecodeString()
		if err != nil {
			t.Fatalf("decode key %d: %v", i, err)
		}
		if key != want {
			t.Errorf("key %d: got %s, want %s", i, key, want)
		}
		val, err := dec.DecodeInterface()
		if err != nil {
			t.Fatalf("decode value %d: %v", i, err)
		}
		switch want {
		case "diskspaceTotal":
			if val != int64(1000) && val != uint64(1000) && val != int16(1000) && val != uint16(1000) {
				t.Errorf("diskspaceTotal: got %v (%T)", val, val)
			}
		case "cronApt":
			if val != true {
				t.Errorf("cronApt: got %v", val)
			}
		case "needrestart":
			if val != nil {
				t.Errorf("needrestart: got %v, want nil", val)
			}
		case "name":
			if val != "x" {
				t.Errorf("name: got %v", val)
			}
		}
	}
}

func TestValue_Accessors(t *testing.T) {
	if !Null().IsNull() {
		t.Error("Null: not null")
	}
	if b, ok := Bool(true).AsBool(); !ok || !b {
		t.Error("Bool accessor")
	}
	if _, ok := Int(2).AsBool(); ok {
		t.Error("Int reported as bool")
	}
	if s, ok := String("s").AsString(); !ok || s != "s" {
		t.Error("String accessor")
	}
	if !IntPtr(nil).IsNull() {
		t.Error("IntPtr(nil) should be null")
	}
	two := 2
	if i, ok := IntPtr(&two).AsInt(); !ok || i != 2 {
		t.Error("IntPtr accessor")
	}
	if !Object(nil).IsNull() {
		t.Error("Object(nil) should be null")
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{Null(), Null(), true},
		{Null(), Bool(false), false},
		{Int(1), Int(1), true},
		{Int(1), Int(2), false},
		{String("a"), String("a"), true},
		{Object(NewBody().Set("x", Int(1))), Object(NewBody().Set("x", Int(1))), true},
		{Object(NewBody().Set("x", Int(1))), Object(NewBody().Set("x", Int(2))), false},
	}
	for i, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("case %d: %v.Equal(%v): got %v, want %v", i, tt.a, tt.b, got, tt.want)
		}
	}
}
