/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package codec persists names as JSON or YAML documents.
//
// Every record carries its shape in the "type" field, nested records
// included. Decoding reads the discriminator with gjson, allocates the
// record type the registry declares for that shape and fills its fields,
// recursing into fields that hold names.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/gowebpki/jcs"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"

	"dirpx.dev/mrx/apis"
)

// ErrInvalidDocument is returned for input that is neither JSON nor YAML
// describing an object.
var ErrInvalidDocument = errors.New("mrx(codec): invalid name document")

var nameType = reflect.TypeFor[apis.Name]()

// Codec encodes and decodes the names of one registry.
type Codec struct {
	// types maps shapes to record struct types.
	types map[string]reflect.Type
	// carriers caches whether a type can hold a name.
	carriers sync.Map // map[reflect.Type]bool
}

// New creates a codec for the shapes registered in reg.
func New(reg apis.Registry) *Codec {
	c := &Codec{types: map[string]reflect.Type{}}
	for _, r := range reg.Registrations() {
		c.types[r.Scheme.Shape()] = r.Scheme.NameType().Elem()
	}
	return c
}

// Shapes returns the known shapes, sorted.
func (c *Codec) Shapes() []string {
	s := lo.Keys(c.types)
	slices.Sort(s)
	return s
}

// Encode renders name as JSON.
func (c *Codec) Encode(name apis.Name) ([]byte, error) {
	if apis.IsNil(name) {
		return []byte("null"), nil
	}
	return json.Marshal(name)
}

// EncodeYAML renders name as YAML.
func (c *Codec) EncodeYAML(name apis.Name) ([]byte, error) {
	data, err := c.Encode(name)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(data)
}

// Canonical renders name as canonical JSON (RFC 8785), so equal names
// always produce equal bytes.
func (c *Codec) Canonical(name apis.Name) ([]byte, error) {
	data, err := c.Encode(name)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(data)
}

// Decode parses a JSON or YAML name document.
func (c *Codec) Decode(data []byte) (apis.Name, error) {
	data, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}
	return c.decode(gjson.ParseBytes(data))
}

func (c *Codec) decode(doc gjson.Result) (apis.Name, error) {
	switch {
	case doc.Type == gjson.Null:
		return nil, nil
	case !doc.IsObject():
		return nil, fmt.Errorf("%w: expected object, got %s", ErrInvalidDocument, doc.Type)
	}
	shape := doc.Get("type").String()
	if shape == "" {
		return nil, &apis.NameError{Op: "decode", Err: apis.ErrNoShape}
	}
	t, ok := c.types[shape]
	if !ok {
		return nil, &apis.NameError{Op: "decode", Shape: shape, Err: apis.ErrUnknownShape}
	}
	p := reflect.New(t)
	if err := c.fill(p.Elem(), doc); err != nil {
		return nil, &apis.NameError{Op: "decode", Shape: shape, Err: err}
	}
	return p.Interface().(apis.Name), nil
}

// fill sets the fields of struct v from the members of doc.
func (c *Codec) fill(v reflect.Value, doc gjson.Result) error {
	fields := fieldsOf(v.Type())
	var err error
	doc.ForEach(func(key, val gjson.Result) bool {
		idx, ok := fields.lookup(key.String())
		if !ok {
			return true
		}
		if err = c.value(v.FieldByIndex(idx), val); err != nil {
			err = fmt.Errorf("field %q: %w", key.String(), err)
			return false
		}
		return true
	})
	return err
}

// value sets v from val. Values that cannot hold names go through
// encoding/json.
func (c *Codec) value(v reflect.Value, val gjson.Result) error {
	t := v.Type()
	if !c.carries(t) {
		return json.Unmarshal([]byte(val.Raw), v.Addr().Interface())
	}
	if val.Type == gjson.Null {
		v.Set(reflect.Zero(t))
		return nil
	}
	if t == nameType || t.Implements(nameType) {
		n, err := c.decode(val)
		if err != nil {
			return err
		}
		if apis.IsNil(n) {
			return nil
		}
		nv := reflect.ValueOf(n)
		if !nv.Type().AssignableTo(t) {
			return fmt.Errorf("%w: %s for %s", apis.ErrUnexpectedType, nv.Type(), t)
		}
		v.Set(nv)
		return nil
	}

	switch t.Kind() {
	case reflect.Slice:
		items := val.Array()
		s := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			if err := c.value(s.Index(i), item); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		v.Set(s)
	case reflect.Array:
		for i, item := range val.Array() {
			if i >= v.Len() {
				break
			}
			if err := c.value(v.Index(i), item); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	case reflect.Map:
		m := reflect.MakeMap(t)
		var err error
		val.ForEach(func(key, item gjson.Result) bool {
			e := reflect.New(t.Elem()).Elem()
			if err = c.value(e, item); err != nil {
				err = fmt.Errorf("key %q: %w", key.String(), err)
				return false
			}
			m.SetMapIndex(reflect.ValueOf(key.String()).Convert(t.Key()), e)
			return true
		})
		if err != nil {
			return err
		}
		v.Set(m)
	case reflect.Pointer:
		p := reflect.New(t.Elem())
		if err := c.value(p.Elem(), val); err != nil {
			return err
		}
		v.Set(p)
	case reflect.Struct:
		return c.fill(v, val)
	}
	return nil
}

// carries reports whether values of t can contain names.
func (c *Codec) carries(t reflect.Type) bool {
	if b, ok := c.carriers.Load(t); ok {
		return b.(bool)
	}
	b := carries(t, map[reflect.Type]bool{})
	c.carriers.Store(t, b)
	return b
}

func carries(t reflect.Type, seen map[reflect.Type]bool) bool {
	if t == nameType || t.Implements(nameType) {
		return true
	}
	if seen[t] {
		return false
	}
	seen[t] = true
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Pointer:
		return carries(t.Elem(), seen)
	case reflect.Map:
		return t.Key().Kind() == reflect.String && carries(t.Elem(), seen)
	case reflect.Struct:
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() && carries(f.Type, seen) {
				return true
			}
		}
	}
	return false
}

type fieldSet map[string][]int

// lookup matches names the way encoding/json does: exact first, then
// case-insensitive.
func (fs fieldSet) lookup(name string) ([]int, bool) {
	if idx, ok := fs[name]; ok {
		return idx, true
	}
	for k, idx := range fs {
		if strings.EqualFold(k, name) {
			return idx, true
		}
	}
	return nil, false
}

var fieldCache sync.Map // map[reflect.Type]fieldSet

// fieldsOf returns the JSON member names of struct t with their field
// index paths. Untagged embedded structs are flattened.
func fieldsOf(t reflect.Type) fieldSet {
	if fs, ok := fieldCache.Load(t); ok {
		return fs.(fieldSet)
	}
	fs := fieldSet{}
	collect(t, nil, fs)
	v, _ := fieldCache.LoadOrStore(t, fs)
	return v.(fieldSet)
}

func collect(t reflect.Type, prefix []int, fs fieldSet) {
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		idx := append(slices.Clone(prefix), i)
		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			collect(f.Type, idx, fs)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if _, dup := fs[name]; dup && len(prefix) > 0 {
			// outer fields shadow embedded ones
			continue
		}
		fs[name] = idx
	}
}
