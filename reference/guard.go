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

package reference

import "context"

type buildingKey struct{}

// Building reports whether ctx is inside a model-registry lookup started
// by the reference factory.
func Building(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	b, _ := ctx.Value(buildingKey{}).(bool)
	return b
}

// EnterBuilding returns a context marked as inside a model-registry
// lookup. The mark ends with the derived context, so the previous state
// is restored when the nested call returns.
func EnterBuilding(ctx context.Context) context.Context {
	return context.WithValue(ctx, buildingKey{}, true)
}
