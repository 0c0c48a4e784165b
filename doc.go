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

// Package mrx provides a process-wide naming service: it turns model
// objects and plain values into persistable names and resolves those
// names back into objects.
//
// # Design
//
// A Service composes the pieces of the module:
//
//   - Registry: the scheme registry (package registry). Schemes are
//     declared at priority levels; for a model the applicable schemes are
//     the ones registered for its type and all of its supertypes, tried
//     from the highest priority down. Failing or panicking schemes are
//     logged and skipped.
//
//   - Values: the value scheme registry (package valuenaming), naming a
//     value among the closed set of options its value context offers.
//
//   - References: the reference factory (package reference), naming
//     arbitrary values. It handles simple values inline, knows session
//     global variables and delegates everything else to the registry.
//
//   - Codec: the persisted form of names (package codec).
//
// The registration is read from a YAML file (package config). Without one
// the embedded default registration is used: all value schemes, the
// closed-option scheme and the wrapped value scheme at the lowest level.
//
// The package keeps a default Service in an atomic pointer. Readers load
// it without locking:
//
//	name, err := mrx.Reference(ctx, nil, value)
//	value, err := mrx.Resolve(ctx, nil, name)
//
// SetDefault swaps in a new service; callers holding the old one keep a
// consistent view.
package mrx
