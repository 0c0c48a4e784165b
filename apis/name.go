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

// Name is a persistable, self-describing reference to a model object.
//
// Concrete names are pointers to plain structs that embed NameMeta. The
// type tag carried by NameMeta is the shape identifier: it selects the
// scheme that resolves the name and it survives serialization.
type Name interface {
	// GetType returns the shape identifier of the name.
	GetType() string
	// SetType sets the shape identifier of the name.
	SetType(string)
}

// NameMeta carries the shape identifier of a name record.
// Embed it (by value, untagged) so the tag is flattened into the record.
type NameMeta struct {
	// Type is the shape identifier ("value.string", "row.key", ...).
	Type string `json:"type"`
}

// GetType returns the shape identifier.
func (m *NameMeta) GetType() string {
	return m.Type
}

// SetType sets the shape identifier.
func (m *NameMeta) SetType(t string) {
	m.Type = t
}

// NewNameMeta returns a NameMeta for the given shape.
func NewNameMeta(shape string) NameMeta {
	return NameMeta{Type: shape}
}
