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

// Scheme is a bidirectional codec between one family of model objects and
// one name shape.
//
// A scheme declares four things up front: the concrete name type it
// produces, the shape identifier of those names, the model type it can
// name, and the value-context type it needs. The registry uses these to
// route requests without calling into the scheme.
type Scheme interface {
	// Shape returns the shape identifier of the names this scheme produces.
	Shape() string
	// NameType returns the concrete (pointer) type of the produced names.
	NameType() reflect.Type
	// ModelType returns the type of model objects the scheme can name.
	// Interface types match every implementing model type.
	ModelType() reflect.Type
	// ContextType returns the value-context type the scheme requires.
	// The empty interface marks a global scheme.
	ContextType() reflect.Type

	// IsCompatibleModel is a cheap pre-check for a model in a context.
	IsCompatibleModel(valueContext, model any) bool
	// BuildName attempts to produce a name for model. It never panics on
	// purpose; the registry still guards against it.
	BuildName(ctx context.Context, valueContext, model any) Result
	// Resolve maps a name of this scheme back to its model object.
	Resolve(ctx context.Context, valueContext any, name Name) (any, error)
}

// Outcome is the kind of a naming attempt result.
type Outcome int

const (
	// Inapplicable means the scheme does not apply to the model.
	Inapplicable Outcome = iota
	// Found means the scheme produced a name.
	Found
	// Failed means the scheme applied but could not produce a name.
	Failed
)

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Failed:
		return "failed"
	default:
		return "inapplicable"
	}
}

// Result is the tri-state outcome of Scheme.BuildName.
// The zero Result is Inapplicable.
type Result struct {
	outcome Outcome
	name    Name
	err     error
}

// Some returns a Found result. A nil name yields Inapplicable.
func Some(n Name) Result {
	if IsNil(n) {
		return Result{}
	}
	return Result{outcome: Found, name: n}
}

// None returns an Inapplicable result.
func None() Result {
	return Result{}
}

// Fail returns a Failed result carrying err.
func Fail(err error) Result {
	return Result{outcome: Failed, err: err}
}

// Outcome returns the kind of the result.
func (r Result) Outcome() Outcome { return r.outcome }

// Name returns the produced name, if any.
func (r Result) Name() Name { return r.name }

// Err returns the failure cause, if any.
func (r Result) Err() error { return r.err }

// HasName reports whether the result carries a name.
func (r Result) HasName() bool { return r.outcome == Found }

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Name) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
