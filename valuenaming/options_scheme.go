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

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/scheme"
)

// Impl is the catalog name of the options scheme.
const Impl = "valuenaming.options"

// NewOptionsScheme returns the model scheme that names values among the
// options of an OptionProvider value context. It does not apply in the
// single-value context used for naming parts, so naming a part never
// recurses into closed-option naming.
func NewOptionsScheme(r *Registry) apis.Scheme {
	return scheme.New[OptionProvider, any, *NamedValue](Shape,
		func(ctx context.Context, vctx OptionProvider, m any) (*NamedValue, error) {
			return r.Name(ctx, vctx, m)
		},
		func(ctx context.Context, vctx OptionProvider, n *NamedValue) (any, error) {
			return r.Resolve(ctx, vctx, n)
		},
		scheme.Compatible(func(vctx OptionProvider, m any) bool {
			if _, ok := vctx.(singleton); ok {
				return false
			}
			_, ok := r.SchemeFor(m)
			return ok
		}),
		scheme.Label(Impl),
	)
}
