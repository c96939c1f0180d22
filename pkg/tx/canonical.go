package tx

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Object is a JSON object whose encoding always lists keys in ascending
// byte order with no insignificant whitespace. Values may be Objects, slices,
// strings, integers, booleans or nil. The resulting bytes are what gets signed.
type Object map[string]interface{}

// MarshalJSON encodes o with explicitly sorted keys.
func (o Object) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Canonical returns the canonical encoding of o.
func (o Object) Canonical() ([]byte, error) {
	return json.Marshal(o)
}
