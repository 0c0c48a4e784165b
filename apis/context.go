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

// NoContextType is the type of NoContext. It has no methods, so a scheme
// scoped to an interface context never accepts it.
type NoContextType struct{}

// NoContext is the value context used when a caller supplies none.
// Only global schemes accept it.
var NoContext = NoContextType{}

// AnyContext is the context type of global schemes.
var AnyContext = reflect.TypeFor[any]()

// ContextOf normalizes a caller supplied value context.
func ContextOf(valueContext any) any {
	if valueContext == nil {
		return NoContext
	}
	return valueContext
}

// IsInstance reports whether v is an instance of t. Nil is never an
// instance of anything.
func IsInstance(t reflect.Type, v any) bool {
	if v == nil || t == nil {
		return false
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

// registryKey is the context key for the active Registry.
type registryKey struct{}

// WithRegistry returns a context carrying r. Nested schemes (lists, maps,
// wrapped values) use it to name and resolve their parts.
func WithRegistry(ctx context.Context, r Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// RegistryFrom returns the Registry carried by ctx.
func RegistryFrom(ctx context.Context) (Registry, bool) {
	if ctx == nil {
		return nil, false
	}
	r, ok := ctx.Value(registryKey{}).(Registry)
	return r, ok
}
