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

import (
	"context"
	"reflect"
)

// Registry is the central naming authority (the model resolver).
// It is built once from declarations and is read-only afterwards, so all
// methods are safe for concurrent use.
type Registry interface {
	// BuildName names model, failing with ErrNoScheme if no scheme applies.
	// A nil model yields a nil name and no error.
	BuildName(ctx context.Context, valueContext, model any) (Name, error)
	// BuildNameIfAvailable names model if some scheme applies.
	// A nil model yields (nil, true).
	BuildNameIfAvailable(ctx context.Context, valueContext, model any) (Name, bool)
	// BuildNames names every model or fails on the first one that cannot be named.
	BuildNames(ctx context.Context, valueContext any, models []any) ([]Name, error)
	// BuildNamesIfAvailable names every model or reports false if any is unnamed.
	BuildNamesIfAvailable(ctx context.Context, valueContext any, models []any) ([]Name, bool)

	// Resolve maps a name back to its model object. A nil name yields nil.
	Resolve(ctx context.Context, valueContext any, name Name) (any, error)
	// ResolveAll resolves every name and checks each non-nil result
	// against expected (when expected is not nil).
	ResolveAll(ctx context.Context, valueContext any, names []Name, expected reflect.Type) ([]any, error)

	// Lookup returns the scheme registered for a shape.
	Lookup(shape string) (Scheme, bool)
	// EffectiveSchemes returns the schemes applicable to t, lowest priority first.
	EffectiveSchemes(t reflect.Type) []Scheme
	// Registrations returns the accepted registrations in declaration order.
	Registrations() []Registration
	// Conflicts returns the shapes registered more than once.
	Conflicts() []Conflict
}

// Declaration asks the registry to register a scheme at a priority level.
type Declaration struct {
	// Scheme is the scheme instance to register.
	Scheme Scheme
	// Priority is the level name. Empty selects the configured default level.
	Priority string
}

// Registration is an accepted declaration with its computed priority.
type Registration struct {
	// Scheme is the registered scheme.
	Scheme Scheme
	// Priority is the total order key of the scheme.
	Priority Priority
}

// Conflict reports a shape claimed by more than one scheme.
// The later registration replaced the earlier one.
type Conflict struct {
	// Shape is the contested shape identifier.
	Shape string
	// Kept is the scheme that owns the shape.
	Kept Scheme
	// Replaced is the scheme that lost the shape.
	Replaced Scheme
}
