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

// Package scheme provides the typed building blocks for naming schemes.
//
// A scheme is declared with its value-context type C, its model type M and
// its name type N as type parameters; the reflect types the registry routes
// on are derived from them, so they cannot disagree with the code that
// builds and resolves names.
package scheme

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/mrx/apis"
	uref "dirpx.dev/mrx/utils/reflect"
)

var (
	// ErrSkip is returned by a build function that does not apply to a
	// model after all. It is reported as an inapplicable result.
	ErrSkip = errors.New("mrx(scheme): scheme does not apply")
	// ErrNotBuildable is returned when a resolve-only scheme is asked for a name.
	ErrNotBuildable = errors.New("mrx(scheme): scheme only resolves names")
)

// BuildFunc produces a name for a model in a value context.
type BuildFunc[C, M any, N apis.Name] func(ctx context.Context, vctx C, model M) (N, error)

// ResolveFunc maps a name back to its model in a value context.
type ResolveFunc[C, M any, N apis.Name] func(ctx context.Context, vctx C, name N) (M, error)

// Typed is an apis.Scheme over a value-context type C, a model type M and
// a name type N. It is immutable and safe for concurrent use.
type Typed[C, M any, N apis.Name] struct {
	shape       string
	nameType    reflect.Type
	modelType   reflect.Type
	contextType reflect.Type
	build       BuildFunc[C, M, N]
	resolve     ResolveFunc[C, M, N]
	settings
}

// Ensure Typed implements apis.Scheme.
var _ apis.Scheme = (*Typed[any, any, apis.Name])(nil)

// New constructs a scheme scoped to value contexts of type C.
// A nil build function declares a resolve-only scheme.
//
// New panics if shape is empty, if resolve is nil or if N is not a
// pointer to a struct.
func New[C, M any, N apis.Name](shape string, build BuildFunc[C, M, N], resolve ResolveFunc[C, M, N], opts ...Option) *Typed[C, M, N] {
	nt := reflect.TypeFor[N]()
	switch {
	case shape == "":
		panic("mrx(scheme): empty shape identifier")
	case resolve == nil:
		panic(fmt.Sprintf("mrx(scheme): scheme %q has no resolve function", shape))
	case nt.Kind() != reflect.Pointer || nt.Elem().Kind() != reflect.Struct:
		panic(fmt.Sprintf("mrx(scheme): name type %s of %q is not a pointer to a struct", nt, shape))
	}
	s := &Typed[C, M, N]{
		shape:       shape,
		nameType:    nt,
		modelType:   reflect.TypeFor[M](),
		contextType: reflect.TypeFor[C](),
		build:       build,
		resolve:     resolve,
		settings:    settings{recorded: build != nil},
	}
	for _, opt := range opts {
		opt(&s.settings)
	}
	if build == nil {
		s.recorded = false
	}
	return s
}

// Global constructs a scheme that applies in every value context.
func Global[M any, N apis.Name](shape string, build func(ctx context.Context, model M) (N, error), resolve func(ctx context.Context, name N) (M, error), opts ...Option) *Typed[any, M, N] {
	var b BuildFunc[any, M, N]
	if build != nil {
		b = func(ctx context.Context, _ any, model M) (N, error) { return build(ctx, model) }
	}
	var r ResolveFunc[any, M, N]
	if resolve != nil {
		r = func(ctx context.Context, _ any, name N) (M, error) { return resolve(ctx, name) }
	}
	return New(shape, b, r, opts...)
}

// Shape returns the shape identifier.
func (s *Typed[C, M, N]) Shape() string { return s.shape }

// NameType returns the concrete name type N.
func (s *Typed[C, M, N]) NameType() reflect.Type { return s.nameType }

// ModelType returns the model type M.
func (s *Typed[C, M, N]) ModelType() reflect.Type { return s.modelType }

// ContextType returns the value-context type C.
func (s *Typed[C, M, N]) ContextType() reflect.Type { return s.contextType }

// Recorded reports whether the scheme takes part in name building.
func (s *Typed[C, M, N]) Recorded() bool { return s.recorded }

// IsCompatibleModel checks the context and model types and the
// compatibility predicate. Models reaching M through pointers or embedded
// fields are accepted and seen as their M part.
func (s *Typed[C, M, N]) IsCompatibleModel(vctx, model any) bool {
	if _, ok := vctx.(C); !ok {
		return false
	}
	if _, ok := upcast[M](model); !ok {
		return false
	}
	return s.compatible == nil || s.compatible(vctx, model)
}

// BuildName produces a name for model. The shape identifier of the name
// is set by the scheme.
func (s *Typed[C, M, N]) BuildName(ctx context.Context, vctx, model any) apis.Result {
	if !s.recorded || !s.IsCompatibleModel(vctx, model) {
		return apis.None()
	}
	m, _ := upcast[M](model)
	n, err := s.build(ctx, vctx.(C), m)
	if errors.Is(err, ErrSkip) {
		return apis.None()
	}
	if err != nil {
		return apis.Fail(err)
	}
	if apis.IsNil(n) {
		return apis.None()
	}
	n.SetType(s.shape)
	return apis.Some(n)
}

// Resolve maps a name of this scheme back to its model.
func (s *Typed[C, M, N]) Resolve(ctx context.Context, vctx any, name apis.Name) (any, error) {
	n, ok := name.(N)
	if !ok {
		return nil, fmt.Errorf("%w: scheme %q cannot resolve %T", apis.ErrIntegrity, s.shape, name)
	}
	c, ok := vctx.(C)
	if !ok {
		return nil, fmt.Errorf("%w: scheme %q cannot resolve in context %T", apis.ErrIntegrity, s.shape, vctx)
	}
	m, err := s.resolve(ctx, c, n)
	if err != nil {
		return nil, err
	}
	return normalize(m), nil
}

// String returns the label of the scheme or "shape(Model)".
func (s *Typed[C, M, N]) String() string {
	if s.label != "" {
		return s.label
	}
	return fmt.Sprintf("%s(%s)", s.shape, uref.TypeName(s.modelType))
}

// normalize turns typed nil pointers into untyped nil.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	return v
}
