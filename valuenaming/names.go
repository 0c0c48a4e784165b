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

import "dirpx.dev/mrx/apis"

// Shape is the shape identifier of NamedValue.
const Shape = "value.named"

// Part is one named fingerprint field.
type Part struct {
	Key   string    `json:"key"`
	Value apis.Name `json:"value"`
}

// NamedValue references a value among a closed set of options.
type NamedValue struct {
	apis.NameMeta
	// Provider is the name of the value scheme that produced the parts.
	Provider string `json:"provider"`
	// Parts are the named fingerprint fields, in fingerprint order.
	Parts []Part `json:"parts"`
}

// OptionProvider supplies the closed set of options a value is named
// against. Value contexts implement it to enable closed-option naming.
type OptionProvider interface {
	Options() []any
}

// Options is a plain OptionProvider.
type Options []any

// Options returns o.
func (o Options) Options() []any { return o }

// singleton is the value context used to name the parts of a value.
type singleton struct{ value any }

func (s singleton) Options() []any { return []any{s.value} }
