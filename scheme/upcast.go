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

package scheme

import "reflect"

// maxUpcast bounds the embedded field search.
const maxUpcast = 16

// upcast returns model as an M. Besides a plain type assertion it follows
// the supertype relation of the registry: a non-nil pointer is
// dereferenced and exported embedded fields are searched in field order.
func upcast[M any](model any) (M, bool) {
	if m, ok := model.(M); ok {
		return m, true
	}
	var zero M
	if model == nil {
		return zero, false
	}
	if v, ok := embedded(reflect.ValueOf(model), reflect.TypeFor[M](), 0); ok {
		return v.Interface().(M), true
	}
	return zero, false
}

func embedded(v reflect.Value, target reflect.Type, depth int) (reflect.Value, bool) {
	if depth > maxUpcast {
		return reflect.Value{}, false
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
		if v.Type().AssignableTo(target) && v.CanInterface() {
			return v, true
		}
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous || !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Type.AssignableTo(target) {
			return fv, true
		}
		if r, ok := embedded(fv, target, depth+1); ok {
			return r, true
		}
	}
	return reflect.Value{}, false
}
