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

// BuildName names model, failing with apis.ErrNoScheme if no scheme applies.
// A nil model yields a nil name and no error.
func (r *Registry) BuildName(ctx context.Context, vctx, model any) (apis.Name, error) {
	n, ok := r.BuildNameIfAvailable(ctx, vctx, model)
	if !ok {
		return nil, &apis.NameError{Op: "build", Model: model, Err: apis.ErrNoScheme}
	}
	return n, nil
}

// BuildNameIfAvailable names model with the highest priority scheme that
// accepts both the value context and the model. Schemes that fail or
// panic are logged and skipped. A nil model yields (nil, true).
func (r *Registry) BuildNameIfAvailable(ctx context.Context, vctx, model any) (apis.Name, bool) {
	if model == nil {
		return nil, true
	}
	ctx = r.bind(ctx)
	vctx = apis.ContextOf(vctx)

	list := r.effectiveFor(reflect.TypeOf(model))
	for i := len(list) - 1; i >= 0; i-- {
		e := list[i]
		if !apis.IsInstance(e.scheme.ContextType(), vctx) {
			continue
		}
		res, crashed := r.try(ctx, e, vctx, model)
		switch res.Outcome() {
		case apis.Found:
			r.metrics.Build(true)
			return res.Name(), true
		case apis.Failed:
			// Panics are counted as crashes only.
			if !crashed {
				r.metrics.Failure(e.scheme.Shape())
			}
			log.Warn("model naming scheme {{scheme}} failed for object {{model}}: {{error}}",
				"scheme", describe(e.scheme), "model", display(model), "error", res.Err())
		}
	}
	r.metrics.Build(false)
	return nil, false
}

// BuildNames names every model, failing on the first one that cannot be named.
func (r *Registry) BuildNames(ctx context.Context, vctx any, models []any) ([]apis.Name, error) {
	out := make([]apis.Name, len(models))
	for i, m := range models {
		n, err := r.BuildName(ctx, vctx, m)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// BuildNamesIfAvailable names every model or reports false if any model
// cannot be named.
func (r *Registry) BuildNamesIfAvailable(ctx context.Context, vctx any, models []any) ([]apis.Name, bool) {
	out := make([]apis.Name, len(models))
	for i, m := range models {
		n, ok := r.BuildNameIfAvailable(ctx, vctx, m)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// try runs one scheme, turning a panic into a failed result.
func (r *Registry) try(ctx context.Context, e *entry, vctx, model any) (res apis.Result, crashed bool) {
	defer func() {
		if p := recover(); p != nil {
			r.metrics.Crash(e.scheme.Shape())
			res, crashed = apis.Fail(fmt.Errorf("%w: %v", ErrSchemeCrashed, p)), true
		}
	}()
	return e.scheme.BuildName(ctx, vctx, model), false
}

// bind makes the registry available to nested schemes.
func (r *Registry) bind(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if cur, ok := apis.RegistryFrom(ctx); ok && cur == apis.Registry(r) {
		return ctx
	}
	return apis.WithRegistry(ctx, r)
}

// display renders a model for log messages.
func display(model any) string {
	return fmt.Sprintf("%T(%v)", model, model)
}
