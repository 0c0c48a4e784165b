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

package builder

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"dirpx.dev/mrx/apis"
)

var (
	// ErrDuplicateImpl is returned when an implementation name is registered twice.
	ErrDuplicateImpl = errors.New("mrx(builder): duplicate scheme implementation")
	// ErrUnknownImpl is returned for declarations naming an unregistered implementation.
	ErrUnknownImpl = errors.New("mrx(builder): unknown scheme implementation")
	// ErrNilFactory is returned when a nil factory is registered.
	ErrNilFactory = errors.New("mrx(builder): nil scheme factory")
)

// NewCatalog creates an empty scheme catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: map[string]apis.SchemeFactory{}}
}

// Catalog maps implementation names to scheme factories.
// It is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]apis.SchemeFactory
}

// Ensure Catalog implements apis.Catalog.
var _ apis.Catalog = (*Catalog)(nil)

// Register adds a factory under impl.
func (c *Catalog) Register(impl string, f apis.SchemeFactory) error {
	if f == nil {
		return fmt.Errorf("%w: %q", ErrNilFactory, impl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.factories[impl]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateImpl, impl)
	}
	c.factories[impl] = f
	return nil
}

// MustRegister is like Register but panics on error.
func (c *Catalog) MustRegister(impl string, f apis.SchemeFactory) {
	if err := c.Register(impl, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under impl.
func (c *Catalog) Lookup(impl string) (apis.SchemeFactory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.factories[impl]
	return f, ok
}

// Names returns the registered implementation names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := lo.Keys(c.factories)
	slices.Sort(names)
	return names
}
