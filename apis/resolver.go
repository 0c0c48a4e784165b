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

package apis

import "context"

// Step is one stage of a reference chain. It returns (name, true) if it
// handled the value; otherwise (nil, false) to fall through.
type Step interface {
	TryReference(ctx context.Context, valueContext, value any) (Name, bool)
}

// StepFunc adapts a function to Step.
type StepFunc func(ctx context.Context, valueContext, value any) (Name, bool)

// TryReference calls f.
func (f StepFunc) TryReference(ctx context.Context, valueContext, value any) (Name, bool) {
	return f(ctx, valueContext, value)
}

// Resolver coordinates steps to find a reference for an arbitrary value.
type Resolver interface {
	// Reference returns the first name produced by the chain.
	Reference(ctx context.Context, valueContext, value any) (Name, bool)
}
