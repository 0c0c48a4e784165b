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

package refs

import (
	"context"
	"sync/atomic"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/scheme"
)

// Referencer finds a reference for an arbitrary value.
type Referencer interface {
	TryReference(ctx context.Context, vctx, value any) (apis.Name, bool)
}

// Wrapped is the lowest-priority model scheme that hands values no other
// scheme names to a Referencer and wraps what it finds. It is the edge
// from the model family back into the value family.
type Wrapped struct {
	*scheme.Typed[any, any, *WrappedValue]
	target atomic.Pointer[Referencer]
}

// NewWrapped creates an unbound Wrapped scheme. It stays inapplicable
// until Bind is called.
func NewWrapped() *Wrapped {
	w := &Wrapped{}
	w.Typed = scheme.New[any, any, *WrappedValue](ShapeWrapped, w.build, w.resolve)
	return w
}

// Bind sets the referencer used for building names.
func (w *Wrapped) Bind(r Referencer) {
	w.target.Store(&r)
}

func (w *Wrapped) build(ctx context.Context, vctx, model any) (*WrappedValue, error) {
	p := w.target.Load()
	if p == nil {
		return nil, scheme.ErrSkip
	}
	ref, ok := (*p).TryReference(ctx, vctx, model)
	if !ok || apis.IsNil(ref) {
		return nil, scheme.ErrSkip
	}
	if wv, ok := ref.(*WrappedValue); ok {
		return wv, nil
	}
	return &WrappedValue{Ref: ref}, nil
}

func (w *Wrapped) resolve(ctx context.Context, vctx any, n *WrappedValue) (any, error) {
	reg, ok := apis.RegistryFrom(ctx)
	if !ok {
		return nil, ErrNoRegistry
	}
	return reg.Resolve(ctx, vctx, n.Ref)
}
