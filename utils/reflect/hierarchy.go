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

package reflect

import (
	"reflect"
	"sync"
)

// Hierarchy indexes the supertype relation used to compute effective
// naming schemes. The direct supertypes of a type are, in this order:
//
//   - explicitly declared supertypes (WithSupertypes);
//   - for a pointer, its element type;
//   - for a struct, the types of its exported embedded fields, in field
//     order (unexported ones cannot be reached from another package);
//   - the known interface types the type implements. An interface type
//     only counts another interface as a supertype if its method set is a
//     strict superset, so equal method sets never form a cycle.
//
// Results are memoized; a Hierarchy is safe for concurrent use.
type Hierarchy struct {
	// interfaces are the known interface types in registration order.
	interfaces []reflect.Type
	// declared holds explicit supertypes by type.
	declared map[reflect.Type][]reflect.Type
	// cache maps reflect.Type to its direct supertypes.
	cache sync.Map // map[reflect.Type][]reflect.Type
}

// Option configures a Hierarchy during construction.
type Option func(*Hierarchy)

// WithInterfaces adds known interface types. Non-interface types are ignored.
func WithInterfaces(ts ...reflect.Type) Option {
	return func(h *Hierarchy) {
		for _, t := range ts {
			if t == nil || t.Kind() != reflect.Interface || contains(h.interfaces, t) {
				continue
			}
			h.interfaces = append(h.interfaces, t)
		}
	}
}

// WithSupertypes declares explicit supertypes for t.
func WithSupertypes(t reflect.Type, supers ...reflect.Type) Option {
	return func(h *Hierarchy) {
		if t == nil {
			return
		}
		for _, s := range supers {
			if s != nil && s != t && !contains(h.declared[t], s) {
				h.declared[t] = append(h.declared[t], s)
			}
		}
	}
}

// NewHierarchy constructs a Hierarchy.
func NewHierarchy(opts ...Option) *Hierarchy {
	h := &Hierarchy{declared: map[reflect.Type][]reflect.Type{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Interfaces returns the known interface types in registration order.
func (h *Hierarchy) Interfaces() []reflect.Type {
	return append([]reflect.Type(nil), h.interfaces...)
}

// Supertypes returns the direct supertypes of t.
func (h *Hierarchy) Supertypes(t reflect.Type) []reflect.Type {
	if t == nil {
		return nil
	}
	if v, ok := h.cache.Load(t); ok {
		return v.([]reflect.Type)
	}

	var out []reflect.Type
	add := func(s reflect.Type) {
		if s != nil && s != t && !contains(out, s) {
			out = append(out, s)
		}
	}

	for _, s := range h.declared[t] {
		add(s)
	}

	switch t.Kind() {
	case reflect.Pointer:
		add(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.Anonymous && f.IsExported() {
				add(f.Type)
			}
		}
	}

	for _, j := range h.interfaces {
		if j == t || !t.Implements(j) {
			continue
		}
		// Equal method sets would make two interfaces supertypes of each other.
		if t.Kind() == reflect.Interface && j.Implements(t) {
			continue
		}
		add(j)
	}

	v, _ := h.cache.LoadOrStore(t, out)
	return v.([]reflect.Type)
}

// contains reports whether ts holds t.
func contains(ts []reflect.Type, t reflect.Type) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}
