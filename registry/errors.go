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

package registry

import "errors"

var (
	// ErrEmptyShape is logged for schemes without a shape identifier.
	ErrEmptyShape = errors.New("mrx(registry): scheme has an empty shape identifier")
	// ErrNilType is logged for schemes declaring a nil name, model or context type.
	ErrNilType = errors.New("mrx(registry): scheme declares a nil reflect.Type")
	// ErrNotAName is logged for schemes whose name type does not implement apis.Name.
	ErrNotAName = errors.New("mrx(registry): scheme name type does not implement apis.Name")
	// ErrSchemeCrashed wraps a panic raised by a scheme.
	ErrSchemeCrashed = errors.New("mrx(registry): naming scheme crashed")
)
