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

// Package valuenaming names values that are only meaningful among a
// closed set of options, such as one row of a table.
//
// A value scheme reduces a value to a fingerprint: an ordered list of
// key/value fields. A NamedValue records the provider (the value scheme)
// and the names of the fingerprint fields. Resolving it rebuilds the
// fingerprint and selects the unique option that matches it; zero or
// several matches are reported with the full candidate list.
//
// A LabeledValue is the lighter alternative: it records the display label
// of an option (see Labeler) and resolves to the one option carrying it.
package valuenaming
