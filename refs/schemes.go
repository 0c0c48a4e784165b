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

package refs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/scheme"
	"dirpx.dev/mrx/session"
)

var (
	// ErrNoRegistry is returned by nested schemes used outside a registry call.
	ErrNoRegistry = errors.New("mrx(refs): no registry in context")
	// ErrNoSession is returned when a global variable is resolved without a session.
	ErrNoSession = errors.New("mrx(refs): no session in context")
)

// primitive declares a global scheme for a value carried inline by its name.
func primitive[M any, N apis.Name](shape string, wrap func(M) N, unwrap func(N) M) *scheme.Typed[any, M, N] {
	return scheme.Global(shape,
		func(_ context.Context, m M) (N, error) { return wrap(m), nil },
		func(_ context.Context, n N) (M, error) { return unwrap(n), nil },
	)
}

// Null resolves NullValue names. It never builds names; nil models are
// handled by the registry and the reference factory.
func Null() apis.Scheme {
	return scheme.Global[any, *NullValue](ShapeNull, nil,
		func(context.Context, *NullValue) (any, error) { return nil, nil },
	)
}

// Strings names string values.
func Strings() apis.Scheme {
	return primitive(ShapeString,
		func(v string) *StringValue { return &StringValue{Value: v} },
		func(n *StringValue) string { return n.Value })
}

// Bools names bool values.
func Bools() apis.Scheme {
	return primitive(ShapeBool,
		func(v bool) *BoolValue { return &BoolValue{Value: v} },
		func(n *BoolValue) bool { return n.Value })
}

// Ints names int values.
func Ints() apis.Scheme {
	return primitive(ShapeInt,
		func(v int) *IntValue { return &IntValue{Value: v} },
		func(n *IntValue) int { return n.Value })
}

// Longs names int64 values.
func Longs() apis.Scheme {
	return primitive(ShapeLong,
		func(v int64) *LongValue { return &LongValue{Value: v} },
		func(n *LongValue) int64 { return n.Value })
}

// Floats names float32 values.
func Floats() apis.Scheme {
	return primitive(ShapeFloat,
		func(v float32) *FloatValue { return &FloatValue{Value: v} },
		func(n *FloatValue) float32 { return n.Value })
}

// Doubles names float64 values.
func Doubles() apis.Scheme {
	return primitive(ShapeDouble,
		func(v float64) *DoubleValue { return &DoubleValue{Value: v} },
		func(n *DoubleValue) float64 { return n.Value })
}

// UUIDs names uuid.UUID values.
func UUIDs() apis.Scheme {
	return scheme.Global(ShapeUUID,
		func(_ context.Context, v uuid.UUID) (*UUIDValue, error) { return &UUIDValue{Value: v.String()}, nil },
		func(_ context.Context, n *UUIDValue) (uuid.UUID, error) { return uuid.Parse(n.Value) },
	)
}

// Times names time.Time values.
func Times() apis.Scheme {
	return scheme.Global(ShapeTime,
		func(_ context.Context, v time.Time) (*TimeValue, error) { return NewTime(v), nil },
		func(_ context.Context, n *TimeValue) (time.Time, error) { return time.Parse(time.RFC3339Nano, n.Value) },
	)
}

// Bytes names []byte values.
func Bytes() apis.Scheme {
	return scheme.Global(ShapeBytes,
		func(_ context.Context, v []byte) (*BytesValue, error) { return NewBytes(v), nil },
		func(_ context.Context, n *BytesValue) ([]byte, error) {
			return base64.StdEncoding.DecodeString(n.Value)
		},
	)
}

// Lists names []any values element by element. Elements are named in the
// value context of the list.
func Lists() apis.Scheme {
	return scheme.New[any, []any, *ListValue](ShapeList,
		func(ctx context.Context, vctx any, m []any) (*ListValue, error) {
			reg, ok := apis.RegistryFrom(ctx)
			if !ok {
				return nil, ErrNoRegistry
			}
			items, err := reg.BuildNames(ctx, vctx, m)
			if err != nil {
				return nil, err
			}
			return &ListValue{Items: items}, nil
		},
		func(ctx context.Context, vctx any, n *ListValue) ([]any, error) {
			reg, ok := apis.RegistryFrom(ctx)
			if !ok {
				return nil, ErrNoRegistry
			}
			return reg.ResolveAll(ctx, vctx, n.Items, nil)
		},
	)
}

// Maps names map[string]any values entry by entry, sorted by key.
func Maps() apis.Scheme {
	return scheme.New[any, map[string]any, *MapValue](ShapeMap,
		func(ctx context.Context, vctx any, m map[string]any) (*MapValue, error) {
			reg, ok := apis.RegistryFrom(ctx)
			if !ok {
				return nil, ErrNoRegistry
			}
			keys := lo.Keys(m)
			slices.Sort(keys)
			entries := make([]MapEntry, 0, len(keys))
			for _, k := range keys {
				n, err := reg.BuildName(ctx, vctx, m[k])
				if err != nil {
					return nil, fmt.Errorf("key %q: %w", k, err)
				}
				entries = append(entries, MapEntry{Key: k, Value: n})
			}
			return &MapValue{Entries: entries}, nil
		},
		func(ctx context.Context, vctx any, n *MapValue) (map[string]any, error) {
			reg, ok := apis.RegistryFrom(ctx)
			if !ok {
				return nil, ErrNoRegistry
			}
			out := make(map[string]any, len(n.Entries))
			for _, e := range n.Entries {
				v, err := reg.Resolve(ctx, vctx, e.Value)
				if err != nil {
					return nil, fmt.Errorf("key %q: %w", e.Key, err)
				}
				out[e.Key] = v
			}
			return out, nil
		},
	)
}

// Globals resolves GlobalVariable names against the session carried by
// the context. Building them is up to the reference factory.
func Globals() apis.Scheme {
	return scheme.Global[any, *GlobalVariable](ShapeGlobal, nil,
		func(ctx context.Context, n *GlobalVariable) (any, error) {
			s, ok := session.FromContext(ctx)
			if !ok {
				return nil, ErrNoSession
			}
			v, ok := s.Get(n.Name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", session.ErrUnknownVariable, n.Name)
			}
			return v, nil
		},
	)
}
