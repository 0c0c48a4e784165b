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
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"dirpx.dev/mrx/apis"
)

// EffectiveSchemes returns the schemes applicable to model type t, lowest
// priority first. Name building consults them highest priority first.
func (r *Registry) EffectiveSchemes(t reflect.Type) []apis.Scheme {
	return lo.Map(r.effectiveFor(t), func(e *entry, _ int) apis.Scheme {
		return e.scheme
	})
}

// effectiveFor returns the memoized effective list for t.
func (r *Registry) effectiveFor(t reflect.Type) []*entry {
	if t == nil {
		return nil
	}
	if v, ok := r.effective.Load(t); ok {
		return v.([]*entry)
	}
	list, _ := r.compute(t, nil)
	return list
}

// noCut marks a computation that reached no type on its own path.
const noCut = math.MaxInt

// compute collects the direct registrations of t and the effective lists
// of its direct supertypes, sorts them by priority and removes duplicates.
//
// path holds the types currently being computed. A type met again on its
// own path contributes nothing at that point; cut reports the smallest
// path index met that way. A list is only complete (and memoized) if
// every cut points at its own frame or deeper, because those frames add
// their entries on the way up. Exceeding MaxDepth yields a cut of -1, so
// nothing on that path is memoized.
func (r *Registry) compute(t reflect.Type, path []reflect.Type) (list []*entry, cut int) {
	if v, ok := r.effective.Load(t); ok {
		return v.([]*entry), noCut
	}
	if i := slices.Index(path, t); i >= 0 {
		return nil, i
	}
	depth := len(path)
	if depth >= r.cfg.MaxDepth {
		log.Warn("type hierarchy of {{type}} exceeds depth {{depth}}", "type", t, "depth", r.cfg.MaxDepth)
		return nil, -1
	}
	path = append(path, t)

	cut = noCut
	list = append(list, r.byModelType[t]...)
	for _, s := range r.hierarchy.Supertypes(t) {
		sub, c := r.compute(s, path)
		cut = min(cut, c)
		list = append(list, sub...)
	}

	slices.SortStableFunc(list, func(a, b *entry) int {
		return a.priority.Compare(b.priority)
	})
	list = r.canonical(slices.Compact(list))

	if cut < depth {
		return list, cut
	}
	r.metrics.CacheMiss()
	v, _ := r.effective.LoadOrStore(t, list)
	return v.([]*entry), noCut
}

// canonical returns the shared instance of an effective list, so model
// types with the same schemes share one list.
func (r *Registry) canonical(list []*entry) []*entry {
	var b strings.Builder
	for i, e := range list {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e.priority.Order))
	}
	v, _ := r.combinations.LoadOrStore(b.String(), list)
	return v.([]*entry)
}
