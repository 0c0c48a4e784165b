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

// Package reference is the entry point for naming arbitrary values.
//
// The factory tries, in order: simple values (nil, strings, booleans,
// numbers, uuids, times, binary data, lists, string keyed maps), session
// global variables, closed-option naming against the value context, the
// display label among those options and finally the model registry. The registry lookup is guarded, so a model scheme calling
// back into the factory (the wrapped value scheme) cannot recurse.
package reference

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/refs"
	"dirpx.dev/mrx/resolver"
	"dirpx.dev/mrx/session"
	"dirpx.dev/mrx/valuenaming"
)

// ErrNoReference is returned when no step finds a reference for a value.
var ErrNoReference = errors.New("mrx(reference): no reference for value")

// Factory builds references to arbitrary values.
type Factory struct {
	registry apis.Registry
	values   *valuenaming.Registry
	chain    apis.Resolver
}

// Ensure Factory can back the wrapped value scheme.
var _ refs.Referencer = (*Factory)(nil)

// New creates a factory over the model registry and the value scheme
// registry. values may be nil, which disables closed-option naming.
func New(reg apis.Registry, values *valuenaming.Registry) *Factory {
	f := &Factory{registry: reg, values: values}
	f.chain = resolver.New(
		apis.StepFunc(f.simpleValue),
		apis.StepFunc(f.globalVariable),
		apis.StepFunc(f.contextLocal),
		apis.StepFunc(f.labeled),
		apis.StepFunc(f.model),
	)
	return f
}

// TryReference returns a reference to value if some step finds one.
func (f *Factory) TryReference(ctx context.Context, vctx, value any) (apis.Name, bool) {
	return f.chain.Reference(f.bind(ctx), vctx, value)
}

// Reference is like TryReference but fails with ErrNoReference.
func (f *Factory) Reference(ctx context.Context, vctx, value any) (apis.Name, error) {
	n, ok := f.TryReference(ctx, vctx, value)
	if !ok {
		log.Debug("no reference for {{value}}", "value", fmt.Sprintf("%T", value))
		return nil, &apis.NameError{Op: "reference", Model: value, Err: ErrNoReference}
	}
	return n, nil
}

// ReferenceEach references every value, failing on the first one without
// a reference.
func (f *Factory) ReferenceEach(ctx context.Context, vctx any, values []any) ([]apis.Name, error) {
	out := make([]apis.Name, len(values))
	for i, v := range values {
		n, err := f.Reference(ctx, vctx, v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// Resolve maps a reference back to its value through the model registry.
func (f *Factory) Resolve(ctx context.Context, vctx any, name apis.Name) (any, error) {
	return f.registry.Resolve(f.bind(ctx), vctx, name)
}

func (f *Factory) bind(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := apis.RegistryFrom(ctx); ok {
		return ctx
	}
	return apis.WithRegistry(ctx, f.registry)
}

// simpleValue handles values carried inline by their reference.
func (f *Factory) simpleValue(ctx context.Context, vctx, value any) (apis.Name, bool) {
	switch v := value.(type) {
	case nil:
		return refs.NewNull(), true
	case string:
		return refs.NewString(v), true
	case bool:
		return &refs.BoolValue{NameMeta: apis.NewNameMeta(refs.ShapeBool), Value: v}, true
	case int:
		return &refs.IntValue{NameMeta: apis.NewNameMeta(refs.ShapeInt), Value: v}, true
	case int64:
		return long(v), true
	case float32:
		return &refs.FloatValue{NameMeta: apis.NewNameMeta(refs.ShapeFloat), Value: v}, true
	case float64:
		return &refs.DoubleValue{NameMeta: apis.NewNameMeta(refs.ShapeDouble), Value: v}, true
	case uuid.UUID:
		return &refs.UUIDValue{NameMeta: apis.NewNameMeta(refs.ShapeUUID), Value: v.String()}, true
	case time.Time:
		return refs.NewTime(v), true
	case []byte:
		return refs.NewBytes(v), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return long(rv.Int()), true
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return long(int64(rv.Uint())), true
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, false
		}
		items := make([]apis.Name, rv.Len())
		for i := range items {
			n, ok := f.TryReference(ctx, vctx, rv.Index(i).Interface())
			if !ok {
				return nil, false
			}
			items[i] = n
		}
		return &refs.ListValue{NameMeta: apis.NewNameMeta(refs.ShapeList), Items: items}, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return nil, false
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			}
			return 0
		})
		entries := make([]refs.MapEntry, len(keys))
		for i, k := range keys {
			n, ok := f.TryReference(ctx, vctx, rv.MapIndex(k).Interface())
			if !ok {
				return nil, false
			}
			entries[i] = refs.MapEntry{Key: k.String(), Value: n}
		}
		return &refs.MapValue{NameMeta: apis.NewNameMeta(refs.ShapeMap), Entries: entries}, true
	}
	return nil, false
}

// globalVariable references values held by a session global variable.
func (f *Factory) globalVariable(ctx context.Context, _, value any) (apis.Name, bool) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return nil, false
	}
	name, ok := s.Lookup(value)
	if !ok {
		return nil, false
	}
	return refs.NewGlobalVariable(name), true
}

// contextLocal names values among the options of the value context.
func (f *Factory) contextLocal(ctx context.Context, vctx, value any) (apis.Name, bool) {
	op, ok := vctx.(valuenaming.OptionProvider)
	if !ok || f.values == nil {
		return nil, false
	}
	if _, ok := f.values.SchemeFor(value); !ok {
		return nil, false
	}
	nv, err := f.values.Name(ctx, op, value)
	if err != nil {
		log.Debug("closed-option naming failed for {{value}}: {{error}}", "value", fmt.Sprintf("%T", value), "error", err)
		return nil, false
	}
	return nv, true
}

// labeled names values among the options of the value context by their
// display label.
func (f *Factory) labeled(_ context.Context, vctx, value any) (apis.Name, bool) {
	op, ok := vctx.(valuenaming.OptionProvider)
	if !ok || value == nil {
		return nil, false
	}
	lv, err := valuenaming.NameByLabel(op, value)
	if err != nil {
		log.Debug("label matching failed for {{value}}: {{error}}", "value", fmt.Sprintf("%T", value), "error", err)
		return nil, false
	}
	return lv, true
}

// model asks the model registry unless a factory-initiated registry
// lookup is already running.
func (f *Factory) model(ctx context.Context, vctx, value any) (apis.Name, bool) {
	if Building(ctx) {
		return nil, false
	}
	n, ok := f.registry.BuildNameIfAvailable(EnterBuilding(ctx), vctx, value)
	if !ok || apis.IsNil(n) {
		return nil, false
	}
	return n, true
}

func long(v int64) *refs.LongValue {
	return &refs.LongValue{NameMeta: apis.NewNameMeta(refs.ShapeLong), Value: v}
}
