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
	"fmt"
	"reflect"
	"sync"

	"github.com/samber/lo"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/config"
	"dirpx.dev/mrx/metrics"
	uref "dirpx.dev/mrx/utils/reflect"
)

// Option configures a Registry during construction.
type Option func(*options)

type options struct {
	hierarchy  apis.Hierarchy
	supertypes []uref.Option
	metrics    *metrics.Metrics
}

// WithHierarchy replaces the default type hierarchy.
func WithHierarchy(h apis.Hierarchy) Option {
	return func(o *options) {
		o.hierarchy = h
	}
}

// WithSupertypes declares explicit supertypes for the default hierarchy.
func WithSupertypes(t reflect.Type, supers ...reflect.Type) Option {
	return func(o *options) {
		o.supertypes = append(o.supertypes, uref.WithSupertypes(t, supers...))
	}
}

// WithMetrics records registry activity in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// entry is a registered scheme with its priority.
// Entries are compared by identity.
type entry struct {
	scheme   apis.Scheme
	priority apis.Priority
}

// Registry is the central naming authority. It is immutable after New
// except for its memoization caches, and safe for concurrent use.
type Registry struct {
	// cfg is the configuration the registry was built with.
	cfg apis.Config
	// hierarchy answers direct supertype queries.
	hierarchy apis.Hierarchy
	// metrics is optional.
	metrics *metrics.Metrics

	// entries are the accepted registrations in declaration order.
	entries []*entry
	// byShape maps the shape identifier to its owning entry.
	byShape map[string]*entry
	// byModelType holds the direct registrations per model type.
	byModelType map[reflect.Type][]*entry
	// conflicts records shapes registered more than once.
	conflicts []apis.Conflict

	// effective caches the effective scheme list per model type.
	effective sync.Map // map[reflect.Type][]*entry
	// combinations canonicalizes identical effective lists.
	combinations sync.Map // map[string][]*entry
}

// Ensure Registry implements apis.Registry.
var _ apis.Registry = (*Registry)(nil)

// New registers the declared schemes in order.
//
// Declarations naming an unknown priority level are logged and ignored.
// A shape claimed twice is logged, owned by the later declaration and
// reported by Conflicts. Interface model types of the accepted schemes
// become part of the default type hierarchy.
func New(cfg apis.Config, decls []apis.Declaration, opts ...Option) *Registry {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	if cfg.DefaultPriority == "" {
		cfg.DefaultPriority = config.DefaultPriority
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		cfg:         cfg,
		metrics:     o.metrics,
		byShape:     map[string]*entry{},
		byModelType: map[reflect.Type][]*entry{},
	}

	levels := lo.SliceToMap(cfg.Levels(), func(l apis.PriorityLevel) (string, apis.PriorityLevel) {
		return l.Name, l
	})
	if _, ok := levels[cfg.DefaultPriority]; !ok {
		lowest := lo.MinBy(cfg.Levels(), func(a, b apis.PriorityLevel) bool { return a.Rank < b.Rank })
		log.Warn("default priority level {{level}} is not configured: using {{lowest}}",
			"level", cfg.DefaultPriority, "lowest", lowest.Name)
		cfg.DefaultPriority = lowest.Name
		r.cfg.DefaultPriority = lowest.Name
	}

	for i, d := range decls {
		if d.Scheme == nil {
			log.Error("ignoring empty scheme declaration {{index}}", "index", i)
			continue
		}
		if err := validate(d.Scheme); err != nil {
			log.LogError(err, "ignoring invalid naming scheme {{scheme}}", "scheme", describe(d.Scheme))
			continue
		}
		name := d.Priority
		if name == "" {
			name = cfg.DefaultPriority
		}
		level, ok := levels[name]
		if !ok {
			log.Error("unknown priority level {{level}} for naming scheme {{scheme}}: scheme ignored",
				"level", name, "scheme", describe(d.Scheme))
			continue
		}
		r.register(&entry{scheme: d.Scheme, priority: apis.Priority{Level: level, Order: i}})
	}

	r.hierarchy = o.hierarchy
	if r.hierarchy == nil {
		interfaces := lo.FilterMap(r.entries, func(e *entry, _ int) (reflect.Type, bool) {
			t := e.scheme.ModelType()
			return t, t.Kind() == reflect.Interface
		})
		r.hierarchy = uref.NewHierarchy(append(o.supertypes, uref.WithInterfaces(interfaces...))...)
	}
	return r
}

// register adds an accepted entry to the lookup maps.
func (r *Registry) register(e *entry) {
	shape := e.scheme.Shape()
	log.Debug("registering naming scheme {{scheme}} for shape {{shape}} at {{priority}}",
		"scheme", describe(e.scheme), "shape", shape, "priority", e.priority)

	if old, ok := r.byShape[shape]; ok {
		log.Error("duplicate naming scheme for shape {{shape}}: {{scheme}} replaces {{previous}}",
			"shape", shape, "scheme", describe(e.scheme), "previous", describe(old.scheme))
		r.conflicts = append(r.conflicts, apis.Conflict{Shape: shape, Kept: e.scheme, Replaced: old.scheme})
	}
	r.byShape[shape] = e

	mt := e.scheme.ModelType()
	r.byModelType[mt] = append(r.byModelType[mt], e)
	r.entries = append(r.entries, e)
}

// Config returns the configuration the registry was built with.
func (r *Registry) Config() apis.Config {
	return r.cfg
}

// Lookup returns the scheme registered for shape.
func (r *Registry) Lookup(shape string) (apis.Scheme, bool) {
	if e, ok := r.byShape[shape]; ok {
		return e.scheme, true
	}
	return nil, false
}

// Registrations returns the accepted registrations in declaration order.
func (r *Registry) Registrations() []apis.Registration {
	return lo.Map(r.entries, func(e *entry, _ int) apis.Registration {
		return apis.Registration{Scheme: e.scheme, Priority: e.priority}
	})
}

// Conflicts returns the shapes registered more than once.
func (r *Registry) Conflicts() []apis.Conflict {
	return append([]apis.Conflict(nil), r.conflicts...)
}

// validate checks the declared types of a scheme.
func validate(s apis.Scheme) error {
	switch nt := s.NameType(); {
	case s.Shape() == "":
		return ErrEmptyShape
	case nt == nil || s.ModelType() == nil || s.ContextType() == nil:
		return ErrNilType
	case !nt.Implements(nameType):
		return fmt.Errorf("%w: %s", ErrNotAName, nt)
	}
	return nil
}

var nameType = reflect.TypeFor[apis.Name]()

// describe returns a display string for a scheme.
func describe(s apis.Scheme) string {
	if st, ok := s.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T(%s)", s, s.Shape())
}
