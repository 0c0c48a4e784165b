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

// SchemeFactory creates a scheme instance for a catalog entry.
type SchemeFactory func() (Scheme, error)

// Catalog maps implementation names (as used in registration files) to
// scheme factories.
type Catalog interface {
	// Register adds a factory under impl. Duplicate names are rejected.
	Register(impl string, f SchemeFactory) error
	// Lookup returns the factory registered under impl.
	Lookup(impl string) (SchemeFactory, bool)
	// Names returns the registered implementation names, sorted.
	Names() []string
}

// SchemeRef is a declaration by implementation name, as found in
// registration files.
type SchemeRef struct {
	// Impl is the catalog name of the scheme implementation.
	Impl string `json:"impl"`
	// Priority is the priority level name. Empty selects the default level.
	Priority string `json:"priority,omitempty"`
}

// Builder composes a Registry from a Config and a declaration list.
type Builder interface {
	// BuildRegistry instantiates every referenced scheme through the
	// builder's catalog and registers it.
	BuildRegistry(cfg Config, refs []SchemeRef) (Registry, error)
}
