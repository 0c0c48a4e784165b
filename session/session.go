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

// Package session holds per-session state consulted while naming values:
// the named global variables a value may be referenced by.
package session

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ErrUnknownVariable is returned for undefined global variables.
var ErrUnknownVariable = errors.New("mrx(session): unknown global variable")

// Session is a set of named global variables. It is safe for concurrent use.
type Session struct {
	id   uuid.UUID
	mu   sync.RWMutex
	vars map[string]any
}

// New creates an empty session with a random id.
func New() *Session {
	return &Session{id: uuid.New(), vars: map[string]any{}}
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Set defines or replaces a global variable.
func (s *Session) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
}

// Get returns the value of a global variable.
func (s *Session) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// Delete removes a global variable.
func (s *Session) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vars, name)
}

// Names returns the variable names, sorted.
func (s *Session) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := lo.Keys(s.vars)
	slices.Sort(names)
	return names
}

// Lookup returns the name of a global variable holding value. If several
// variables hold it, the first name in sorted order wins.
func (s *Session) Lookup(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := lo.Keys(s.vars)
	slices.Sort(names)
	for _, n := range names {
		if equal(s.vars[n], value) {
			return n, true
		}
	}
	return "", false
}

// equal compares values of the same dynamic type deeply.
func equal(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

type sessionKey struct{}

// NewContext returns a context carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session carried by ctx.
func FromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
