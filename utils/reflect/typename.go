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

package reflect

import (
	"path"
	"reflect"
	"strings"
	"sync"
)

// typeNameCache caches computed display names by type.
var typeNameCache sync.Map // key: reflect.Type, val: string

// TypeName returns a short, stable display name for t: "pkg.Type" for
// named types (generic instantiation parameters stripped), a leading "*"
// for pointers to named types, and t.String() for everything else.
// Nil yields "<nil>".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}

	var name string
	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Name() != "":
		name = "*" + TypeName(t.Elem())
	case t.Name() != "":
		name = stripTypeParams(t.Name())
		if p := t.PkgPath(); p != "" {
			name = path.Base(p) + "." + name
		}
	default:
		name = t.String()
	}

	typeNameCache.Store(t, name)
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
