// Package rawjson keeps the JSON object a record was read from, so that
// writing the record back preserves keys its Go type does not model and
// values it has not changed.
package rawjson

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
)

// Field binds a JSON key to a pointer to the struct field holding it.
type Field struct {
	Key   string
	Value any
}

// Object is the stored form of one record. The zero value describes a record
// that was never stored; encoding it writes every field.
type Object struct {
	raw     map[string]json.RawMessage
	decoded map[string][]byte
}

// Decode reads data as a JSON object and fills fields from it.
//
// A stored value that does not fit its field is converted when it is a number
// held in a string, or a number read into a string field. Otherwise the field
// keeps its zero value; the stored value is still written back by Encode.
func Decode(data []byte, fields []Field) (Object, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Object{}, err
	}

	o := Object{raw: raw, decoded: make(map[string][]byte, len(fields))}
	for _, f := range fields {
		if v, ok := raw[f.Key]; ok {
			decodeLoose(v, f.Value)
		}
		enc, err := json.Marshal(f.Value)
		if err != nil {
			return Object{}, err
		}
		o.decoded[f.Key] = enc
	}
	return o, nil
}

// Encode writes fields in order, then the stored keys fields do not name in
// sorted order. A field still equal to its decoded value keeps its stored
// bytes, or stays absent when the stored object did not have it.
func (o Object) Encode(fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	write := func(key string, val []byte) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		n++
		return nil
	}

	modeled := make(map[string]bool, len(fields))
	for _, f := range fields {
		modeled[f.Key] = true
		enc, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		if prev, seen := o.decoded[f.Key]; seen && bytes.Equal(prev, enc) {
			stored, ok := o.raw[f.Key]
			if !ok {
				continue
			}
			enc = stored
		}
		if err := write(f.Key, enc); err != nil {
			return nil, err
		}
	}

	extra := make([]string, 0, len(o.raw))
	for k := range o.raw {
		if !modeled[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		if err := write(k, o.raw[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeLoose stores v into target, a pointer, leaving it untouched when v
// cannot be converted.
func decodeLoose(v json.RawMessage, target any) {
	dst := reflect.ValueOf(target).Elem()
	if tryDecode(v, dst) {
		return
	}

	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return
	}
	if v[0] == '"' {
		var s string
		if json.Unmarshal(v, &s) == nil {
			tryDecode([]byte(s), dst)
		}
		return
	}
	if dst.Kind() == reflect.String {
		var num json.Number
		if json.Unmarshal(v, &num) == nil {
			dst.SetString(num.String())
		}
	}
}

func tryDecode(data []byte, dst reflect.Value) bool {
	tmp := reflect.New(dst.Type())
	if json.Unmarshal(data, tmp.Interface()) != nil {
		return false
	}
	dst.Set(tmp.Elem())
	return true
}
