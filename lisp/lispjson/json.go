// Package lispjson converts between mal values and JSON.
//
// JSON objects load as maps with string keys, arrays as vectors, and
// numbers as integers.  Numbers with a fractional part cannot be loaded.
package lispjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/bmatsuo/gomal/lisp"
)

// DefaultSerializer is the Serializer used by exported functions Load and
// Dump.
var DefaultSerializer = &Serializer{}

// Dump serializes the structure of v as a JSON formatted byte slice.
func Dump(v *lisp.LVal) ([]byte, error) {
	return DefaultSerializer.Dump(v)
}

// Load parses b as JSON and returns an equivalent LVal.
func Load(b []byte) *lisp.LVal {
	return DefaultSerializer.Load(b)
}

// Serializer defines JSON serialization rules for lisp values.
type Serializer struct {
	// KeywordKeys causes object keys to load as keywords instead of strings.
	KeywordKeys bool
}

// Load parses b and returns an LVal representing its structure.
func (s *Serializer) Load(b []byte) *lisp.LVal {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x interface{}
	err := dec.Decode(&x)
	if err != nil {
		return lisp.Error(err)
	}
	_, err = dec.Token()
	if err != io.EOF {
		return lisp.Errorf("invalid json: trailing data")
	}
	return s.loadInterface(x)
}

func (s *Serializer) loadInterface(x interface{}) *lisp.LVal {
	if x == nil {
		return lisp.Nil()
	}
	switch x := x.(type) {
	case bool:
		return lisp.Bool(x)
	case string:
		return lisp.String(x)
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return lisp.Errorf("unable to load json number: %v", x)
		}
		return lisp.Int(int(n))
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		kvs := make([]*lisp.LVal, 0, 2*len(keys))
		for _, k := range keys {
			v := s.loadInterface(x[k])
			if v.Type == lisp.LError {
				return v
			}
			kvs = append(kvs, s.loadKey(k), v)
		}
		return lisp.Map(kvs...)
	case []interface{}:
		cells := make([]*lisp.LVal, len(x))
		for i, v := range x {
			cells[i] = s.loadInterface(v)
			if cells[i].Type == lisp.LError {
				return cells[i]
			}
		}
		return lisp.Vector(cells...)
	default:
		return lisp.Errorf("unable to load json type: %T", x)
	}
}

func (s *Serializer) loadKey(k string) *lisp.LVal {
	if s.KeywordKeys {
		return lisp.Keyword(k)
	}
	return lisp.String(k)
}

// Dump serializes v as JSON.  Map entries are written in the order they
// appear in v.  Keywords are written as their name without the leading
// colon.
func (s *Serializer) Dump(v *lisp.LVal) ([]byte, error) {
	var buf bytes.Buffer
	err := s.dump(&buf, v)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Serializer) dump(buf *bytes.Buffer, v *lisp.LVal) error {
	switch v.Type {
	case lisp.LNil:
		buf.WriteString("null")
	case lisp.LTrue:
		buf.WriteString("true")
	case lisp.LFalse:
		buf.WriteString("false")
	case lisp.LInt:
		fmt.Fprint(buf, v.Int)
	case lisp.LString:
		return writeString(buf, v.Str)
	case lisp.LKeyword:
		return writeString(buf, v.Str[1:])
	case lisp.LList, lisp.LVector:
		buf.WriteByte('[')
		for i, x := range v.Cells {
			if i > 0 {
				buf.WriteByte(',')
			}
			err := s.dump(buf, x)
			if err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case lisp.LMap:
		buf.WriteByte('{')
		for i := 0; i < len(v.Cells); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			err := s.dump(buf, v.Cells[i])
			if err != nil {
				return err
			}
			buf.WriteByte(':')
			err = s.dump(buf, v.Cells[i+1])
			if err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("type cannot be converted to json: %v", v.Type)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
