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

package refs

import (
	"dirpx.dev/mrx/apis"
)

// Implementation names of the value family schemes.
const (
	ImplNull    = "refs.null"
	ImplString  = "refs.string"
	ImplBool    = "refs.bool"
	ImplInt     = "refs.int"
	ImplLong    = "refs.long"
	ImplFloat   = "refs.float"
	ImplDouble  = "refs.double"
	ImplUUID    = "refs.uuid"
	ImplTime    = "refs.time"
	ImplBytes   = "refs.bytes"
	ImplList    = "refs.list"
	ImplMap     = "refs.map"
	ImplGlobal  = "refs.global"
	ImplWrapped = "refs.wrapped"
)

// Register adds the value family schemes to cat. The wrapped scheme is
// shared, so it can be bound to a referencer after the registry is built.
func Register(cat apis.Catalog, wrapped *Wrapped) error {
	factories := []struct {
		impl string
		fn   func() apis.Scheme
	}{
		{ImplNull, Null},
		{ImplString, Strings},
		{ImplBool, Bools},
		{ImplInt, Ints},
		{ImplLong, Longs},
		{ImplFloat, Floats},
		{ImplDouble, Doubles},
		{ImplUUID, UUIDs},
		{ImplTime, Times},
		{ImplBytes, Bytes},
		{ImplList, Lists},
		{ImplMap, Maps},
		{ImplGlobal, Globals},
		{ImplWrapped, func() apis.Scheme { return wrapped }},
	}
	for _, f := range factories {
		if err := cat.Register(f.impl, single(f.fn)); err != nil {
			return err
		}
	}
	return nil
}

func single(f func() apis.Scheme) apis.SchemeFactory {
	return func() (apis.Scheme, error) { return f(), nil }
}
