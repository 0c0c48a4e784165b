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

import (
	"cmp"
	"fmt"
)

// DefaultPriorityLevel is the level used by declarations that name none.
const DefaultPriorityLevel = "default"

// PriorityLevel is a named, ranked group of schemes.
// Levels are configured highest first; the first of n levels has Rank n-1.
type PriorityLevel struct {
	// Name is the configured level name.
	Name string
	// Rank is the comparable weight of the level. Higher wins.
	Rank int
}

// Priority is the total order key of a registered scheme.
// Within a level, later declarations win.
type Priority struct {
	// Level is the priority level of the scheme.
	Level PriorityLevel
	// Order is the position of the scheme in the declaration list.
	Order int
}

// Compare orders priorities ascending by level rank, then by order.
func (p Priority) Compare(o Priority) int {
	if c := cmp.Compare(p.Level.Rank, o.Level.Rank); c != 0 {
		return c
	}
	return cmp.Compare(p.Order, o.Order)
}

// String returns "level#order".
func (p Priority) String() string {
	return fmt.Sprintf("%s#%d", p.Level.Name, p.Order)
}
