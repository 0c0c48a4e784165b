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

// settings holds the optional behavior of a scheme.
type settings struct {
	// compatible is the optional compatibility predicate.
	compatible func(vctx, model any) bool
	// recorded controls whether the scheme takes part in name building.
	recorded bool
	// label is an optional display name.
	label string
}

// Option configures a scheme during construction.
type Option func(*settings)

// Compatible adds a compatibility predicate. It is only called with a
// context of type C and a model of type M.
func Compatible[C, M any](f func(vctx C, model M) bool) Option {
	return func(s *settings) {
		if f == nil {
			s.compatible = nil
			return
		}
		s.compatible = func(vctx, model any) bool {
			c, ok := vctx.(C)
			if !ok {
				return false
			}
			m, ok := upcast[M](model)
			return ok && f(c, m)
		}
	}
}

// Recorded controls whether the scheme takes part in name building.
// Schemes that are not recorded still resolve their names.
func Recorded(recorded bool) Option {
	return func(s *settings) {
		s.recorded = recorded
	}
}

// Label sets the display name used in logs and listings.
func Label(label string) Option {
	return func(s *settings) {
		s.label = label
	}
}
