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
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrWrongModel is returned when a value scheme is given a foreign model.
var ErrWrongModel = errors.New("mrx(valuenaming): model does not fit value scheme")

// Field is one fingerprint field.
type Field struct {
	Key   string
	Value any
}

// String returns "key=value".
func (f Field) String() string {
	return fmt.Sprintf("%s=%v", f.Key, f.Value)
}

// Scheme reduces values of one model type to fingerprints.
type Scheme interface {
	// Name is the provider name recorded in named values.
	Name() string
	// ModelType is the type of the values the scheme handles.
	ModelType() reflect.Type
	// Fingerprint returns the identifying fields of model.
	Fingerprint(model any) ([]Field, error)
	// Matches reports whether candidate has the given fingerprint.
	Matches(fingerprint []Field, candidate any) bool
}

// Base is a Scheme for values of type M.
type Base[M any] struct {
	name        string
	fingerprint func(M) ([]Field, error)
	matches     func([]Field, M) bool
}

// Ensure Base implements Scheme.
var _ Scheme = (*Base[any])(nil)

// SchemeOption configures a Base.
type SchemeOption[M any] func(*Base[M])

// WithMatcher replaces the default matcher, which compares the fingerprint
// of the candidate field by field.
func WithMatcher[M any](f func(fingerprint []Field, candidate M) bool) SchemeOption[M] {
	return func(b *Base[M]) {
		b.matches = f
	}
}

// NewScheme creates a value scheme named name. It panics if name is
// empty or fingerprint is nil.
func NewScheme[M any](name string, fingerprint func(M) ([]Field, error), opts ...SchemeOption[M]) *Base[M] {
	if name == "" || fingerprint == nil {
		panic("mrx(valuenaming): value scheme needs a name and a fingerprint function")
	}
	b := &Base[M]{name: name, fingerprint: fingerprint}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the provider name.
func (b *Base[M]) Name() string { return b.name }

// ModelType returns M.
func (b *Base[M]) ModelType() reflect.Type { return reflect.TypeFor[M]() }

// Fingerprint returns the identifying fields of model.
func (b *Base[M]) Fingerprint(model any) ([]Field, error) {
	m, ok := model.(M)
	if !ok {
		return nil, fmt.Errorf("%w: %q cannot fingerprint %T", ErrWrongModel, b.name, model)
	}
	return b.fingerprint(m)
}

// Matches reports whether candidate has the given fingerprint.
func (b *Base[M]) Matches(fingerprint []Field, candidate any) bool {
	c, ok := candidate.(M)
	if !ok {
		return false
	}
	if b.matches != nil {
		return b.matches(fingerprint, c)
	}
	fp, err := b.fingerprint(c)
	return err == nil && FieldsEqual(fingerprint, fp)
}

// String returns the provider name.
func (b *Base[M]) String() string { return b.name }

// FieldsEqual compares two fingerprints field by field, values deeply.
func FieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key || !reflect.DeepEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// formatFingerprint renders "{k1=v1, k2=v2}".
func formatFingerprint(fp []Field) string {
	parts := make([]string, len(fp))
	for i, f := range fp {
		parts[i] = f.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
