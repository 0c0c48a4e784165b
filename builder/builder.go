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

package builder

import (
	"fmt"

	"github.com/mandelsoft/logging"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/registry"
)

// REALM is the logging realm of the registry builder.
var REALM = logging.DefineRealm("mrx/builder", "naming registry builder")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

// New creates an apis.Builder instantiating schemes from cat.
// Registry options are passed to every built registry.
func New(cat apis.Catalog, opts ...registry.Option) apis.Builder {
	return &builder{catalog: cat, opts: opts}
}

// builder resolves declarations through its catalog.
type builder struct {
	catalog apis.Catalog
	opts    []registry.Option
}

// BuildRegistry instantiates every referenced scheme and registers it in
// declaration order. Unknown implementation names and failing factories
// are configuration errors; priority level problems are left to the
// registry, which logs and skips such entries.
func (b *builder) BuildRegistry(cfg apis.Config, refs []apis.SchemeRef) (apis.Registry, error) {
	decls := make([]apis.Declaration, 0, len(refs))
	for i, ref := range refs {
		f, ok := b.catalog.Lookup(ref.Impl)
		if !ok {
			return nil, fmt.Errorf("%w: %q (entry %d)", ErrUnknownImpl, ref.Impl, i)
		}
		s, err := f()
		if err != nil {
			return nil, fmt.Errorf("mrx(builder): cannot create scheme %q: %w", ref.Impl, err)
		}
		log.Trace("declaring scheme {{impl}} at {{level}}", "impl", ref.Impl, "level", ref.Priority)
		decls = append(decls, apis.Declaration{Scheme: s, Priority: ref.Priority})
	}
	return registry.New(cfg, decls, b.opts...), nil
}
