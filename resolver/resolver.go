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

package resolver

import (
	"context"

	"dirpx.dev/mrx/apis"
)

// New constructs an apis.Resolver that tries the given steps in order.
// Nil steps are ignored. The returned resolver is safe for concurrent use
// provided steps themselves are safe for concurrent TryReference calls.
func New(steps ...apis.Step) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Step, 0, len(steps))
	for _, s := range steps {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{steps: out}
}

// chain is an immutable, order-preserving resolver over a set of steps.
type chain struct {
	steps []apis.Step
}

// Reference runs steps in order until one handles the value.
func (c chain) Reference(ctx context.Context, vctx, value any) (apis.Name, bool) {
	for _, s := range c.steps {
		if n, ok := s.TryReference(ctx, vctx, value); ok {
			return n, true
		}
	}
	return nil, false
}
