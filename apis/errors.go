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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoScheme is returned when no scheme can name a model.
	ErrNoScheme = errors.New("mrx: no naming scheme applies")
	// ErrNoShape is returned for names without a shape identifier.
	ErrNoShape = errors.New("mrx: name carries no shape identifier")
	// ErrUnknownShape is returned for names whose shape has no scheme.
	ErrUnknownShape = errors.New("mrx: unknown name shape")
	// ErrIntegrity is returned when a name does not fit its own scheme
	// (name type or value context mismatch).
	ErrIntegrity = errors.New("mrx: name integrity violation")
	// ErrUnexpectedType is returned when a resolved object has the wrong type.
	ErrUnexpectedType = errors.New("mrx: resolved object has unexpected type")
)

// NameError describes a failed naming or resolution operation.
type NameError struct {
	// Op is the failed operation ("build" or "resolve").
	Op string
	// Shape is the shape identifier of the involved name, if any.
	Shape string
	// Model is the involved model object, if any.
	Model any
	// Detail is an optional human readable explanation.
	Detail string
	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *NameError) Error() string {
	var b strings.Builder
	b.WriteString("mrx: ")
	b.WriteString(e.Op)
	if e.Shape != "" {
		fmt.Fprintf(&b, " name %q", e.Shape)
	}
	if e.Model != nil {
		fmt.Fprintf(&b, " model %T(%v)", e.Model, e.Model)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(strings.TrimPrefix(e.Err.Error(), "mrx: "))
	}
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *NameError) Unwrap() error {
	return e.Err
}
