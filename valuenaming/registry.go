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

package valuenaming

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/samber/lo"

	"dirpx.dev/mrx/apis"
)

// Registry holds the value schemes by provider name. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	// byName maps provider names to schemes.
	byName map[string]Scheme
	// order holds the schemes in registration order.
	order []Scheme
	// byType caches the scheme chosen per model type.
	byType sync.Map // map[reflect.Type]Scheme (nil Scheme if none)
}

// NewRegistry creates a registry of value schemes. Provider names must be
// unique.
func NewRegistry(schemes ...Scheme) (*Registry, error) {
	r := &Registry{byName: map[string]Scheme{}}
	for _, s := range schemes {
		if s == nil {
			continue
		}
		if _, ok := r.byName[s.Name()]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProvider, s.Name())
		}
		r.byName[s.Name()] = s
		r.order = append(r.order, s)
	}
	return r, nil
}

// Lookup returns the scheme with the given provider name.
func (r *Registry) Lookup(name string) (Scheme, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Schemes returns the schemes in registration order.
func (r *Registry) Schemes() []Scheme {
	return append([]Scheme(nil), r.order...)
}

// SchemeFor returns the scheme handling model. If several apply, the last
// registered wins.
func (r *Registry) SchemeFor(model any) (Scheme, bool) {
	if model == nil {
		return nil, false
	}
	t := reflect.TypeOf(model)
	if v, ok := r.byType.Load(t); ok {
		s, _ := v.(Scheme)
		return s, s != nil
	}
	var found Scheme
	for i := len(r.order) - 1; i >= 0; i-- {
		if t.AssignableTo(r.order[i].ModelType()) {
			found = r.order[i]
			break
		}
	}
	v, _ := r.byType.LoadOrStore(t, found)
	s, _ := v.(Scheme)
	return s, s != nil
}

// Name names model among the options of vctx. The fingerprint must match
// exactly one option. Parts are named through the registry carried by
// ctx, each in a value context holding just the part value.
func (r *Registry) Name(ctx context.Context, vctx OptionProvider, model any) (*NamedValue, error) {
	if _, ok := vctx.(singleton); ok {
		return nil, ErrNestedOptions
	}
	s, ok := r.SchemeFor(model)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNoValueScheme, model)
	}
	reg, ok := apis.RegistryFrom(ctx)
	if !ok {
		return nil, ErrNoRegistry
	}
	fp, err := s.Fingerprint(model)
	if err != nil {
		return nil, err
	}
	if _, err := r.match(s, fp, vctx); err != nil {
		return nil, err
	}

	parts := make([]Part, len(fp))
	for i, f := range fp {
		n, err := reg.BuildName(ctx, singleton{f.Value}, f.Value)
		if err != nil {
			return nil, fmt.Errorf("mrx(valuenaming): field %q of %s: %w", f.Key, s.Name(), err)
		}
		parts[i] = Part{Key: f.Key, Value: n}
	}
	log.Trace("named value of {{provider}} with fingerprint {{fingerprint}}",
		"provider", s.Name(), "fingerprint", formatFingerprint(fp))
	return &NamedValue{NameMeta: apis.NewNameMeta(Shape), Provider: s.Name(), Parts: parts}, nil
}

// Resolve selects the option of vctx matching nv. Parts are resolved
// without a value context.
func (r *Registry) Resolve(ctx context.Context, vctx OptionProvider, nv *NamedValue) (any, error) {
	s, ok := r.Lookup(nv.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, nv.Provider)
	}
	reg, ok := apis.RegistryFrom(ctx)
	if !ok {
		return nil, ErrNoRegistry
	}
	fp := make([]Field, len(nv.Parts))
	for i, p := range nv.Parts {
		v, err := reg.Resolve(ctx, nil, p.Value)
		if err != nil {
			return nil, fmt.Errorf("mrx(valuenaming): field %q of %s: %w", p.Key, s.Name(), err)
		}
		fp[i] = Field{Key: p.Key, Value: v}
	}
	return r.match(s, fp, vctx)
}

// match returns the unique option of vctx matching fp.
func (r *Registry) match(s Scheme, fp []Field, vctx OptionProvider) (any, error) {
	candidates := options(vctx)
	matches := lo.Filter(candidates, func(c any, _ int) bool {
		return apis.IsInstance(s.ModelType(), c) && s.Matches(fp, c)
	})
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, &NotFoundError{Provider: s.Name(), Fingerprint: fp, Candidates: candidates}
	default:
		return nil, &AmbiguousError{Provider: s.Name(), Fingerprint: fp, Matches: matches, Candidates: candidates}
	}
}
