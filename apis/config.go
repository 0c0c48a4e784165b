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

// Config carries read-only registry knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Priorities lists the priority level names, highest first.
	Priorities []string

	// DefaultPriority is the level used by declarations that name none.
	DefaultPriority string

	// StrictIntegrity turns integrity violations (a name that does not fit
	// its own scheme) into panics instead of returned errors.
	StrictIntegrity bool

	// MaxDepth limits the depth of the type hierarchy walk.
	// Acts as a safety guard against pathological embedding chains.
	MaxDepth int
}

// Levels returns the configured priority levels with their ranks.
func (c Config) Levels() []PriorityLevel {
	names := c.Priorities
	if len(names) == 0 {
		names = []string{DefaultPriorityLevel}
	}
	levels := make([]PriorityLevel, len(names))
	for i, n := range names {
		levels[i] = PriorityLevel{Name: n, Rank: len(names) - 1 - i}
	}
	return levels
}
