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

package registry

import (
	"context"
	"fmt"
	"reflect"

	"dirpx.dev/mrx/apis"
)

// Resolve maps name back to its model object through the scheme that owns
// its shape. A nil name yields nil.
func (r *Registry) Resolve(ctx context.Context, vctx any, name apis.Name) (any, error) {
	v, err := r.resolve(ctx, vctx, name)
	r.metrics.Resolve(err)
	return v, err
}

func (r *Registry) resolve(ctx context.Context, vctx any, name apis.Name) (any, error) {
	if apis.IsNil(name) {
		return nil, nil
	}
	shape := name.GetType()
	if shape == "" {
		return nil, &apis.NameError{Op: "resolve", Err: apis.ErrNoShape, Detail: fmt.Sprintf("%T", name)}
	}
	e, ok := r.byShape[shape]
	if !ok {
		return nil, &apis.NameError{Op: "resolve", Shape: shape, Err: apis.ErrUnknownShape}
	}
	ctx = r.bind(ctx)
	vctx = apis.ContextOf(vctx)

	if nt := reflect.TypeOf(name); nt != e.scheme.NameType() {
		return nil, r.integrity(shape, fmt.Sprintf("name type %s, scheme expects %s", nt, e.scheme.NameType()))
	}
	if !apis.IsInstance(e.scheme.ContextType(), vctx) {
		return nil, r.integrity(shape, fmt.Sprintf("value context %T, scheme expects %s", vctx, e.scheme.ContextType()))
	}

	v, err := e.scheme.Resolve(ctx, vctx, name)
	if err != nil {
		return nil, &apis.NameError{Op: "resolve", Shape: shape, Err: err}
	}
	return v, nil
}

// ResolveAll resolves every name. Each non-nil result must be an instance
// of expected unless expected is nil.
func (r *Registry) ResolveAll(ctx context.Context, vctx any, names []apis.Name, expected reflect.Type) ([]any, error) {
	out := make([]any, len(names))
	for i, n := range names {
		v, err := r.Resolve(ctx, vctx, n)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if v != nil && expected != nil && !apis.IsInstance(expected, v) {
			return nil, &apis.NameError{
				Op:     "resolve",
				Shape:  n.GetType(),
				Err:    apis.ErrUnexpectedType,
				Detail: fmt.Sprintf("element %d: expected %s, got %T: %v", i, expected, v, v),
			}
		}
		out[i] = v
	}
	return out, nil
}

// ResolveAllAs resolves every name to a T. Nil results become the zero T.
func ResolveAllAs[T any](ctx context.Context, r apis.Registry, vctx any, names []apis.Name) ([]T, error) {
	vs, err := r.ResolveAll(ctx, vctx, names, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	out := make([]T, len(vs))
	for i, v := range vs {
		if v != nil {
			out[i] = v.(T)
		}
	}
	return out, nil
}

// integrity reports a name that does not fit its own scheme.
func (r *Registry) integrity(shape, detail string) error {
	err := &apis.NameError{Op: "resolve", Shape: shape, Err: apis.ErrIntegrity, Detail: detail}
	if r.cfg.StrictIntegrity {
		panic(err)
	}
	log.LogError(err, "name integrity violation for shape {{shape}}", "shape", shape)
	return err
}
