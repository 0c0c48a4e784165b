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

package refs_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/builder"
	"dirpx.dev/mrx/config"
	"dirpx.dev/mrx/refs"
	"dirpx.dev/mrx/registry"
	"dirpx.dev/mrx/session"
)

// stub is a Referencer answering from a fixed table.
type stub map[string]apis.Name

func (s stub) TryReference(_ context.Context, _, value any) (apis.Name, bool) {
	k, ok := value.(interface{ Key() string })
	if !ok {
		return nil, false
	}
	n, ok := s[k.Key()]
	return n, ok
}

type Ticket struct{ ID string }

func (t Ticket) Key() string { return t.ID }

func values(wrapped *refs.Wrapped) *registry.Registry {
	return registry.New(config.DefaultConfig(), []apis.Declaration{
		{Scheme: refs.Null()},
		{Scheme: refs.Strings()},
		{Scheme: refs.Bools()},
		{Scheme: refs.Ints()},
		{Scheme: refs.Longs()},
		{Scheme: refs.Floats()},
		{Scheme: refs.Doubles()},
		{Scheme: refs.UUIDs()},
		{Scheme: refs.Times()},
		{Scheme: refs.Bytes()},
		{Scheme: refs.Lists()},
		{Scheme: refs.Maps()},
		{Scheme: refs.Globals()},
		{Scheme: wrapped, Priority: "fallback"},
	})
}

func TestRoundTrip(t *testing.T) {
	reg := values(refs.NewWrapped())
	ctx := context.Background()

	models := []any{
		"text",
		true,
		42,
		int64(-7),
		float32(0.5),
		3.75,
		uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		time.Date(2025, time.March, 14, 15, 9, 26, 535897932, time.UTC),
		[]byte{0, 1, 0xfe, 0xff},
		[]any{"a", []any{1, 2}, map[string]any{"k": false}},
		map[string]any{"z": 1.5, "a": "x"},
	}
	for _, m := range models {
		n, err := reg.BuildName(ctx, nil, m)
		require.NoError(t, err, "%T", m)
		require.NotEmpty(t, n.GetType())

		back, err := reg.Resolve(ctx, nil, n)
		require.NoError(t, err)
		if diff := deep.Equal(back, m); diff != nil {
			t.Errorf("%T: %v", m, diff)
		}
	}
}

func TestTimeAndBytes(t *testing.T) {
	reg := values(refs.NewWrapped())
	ctx := context.Background()

	at := time.Date(2025, time.March, 14, 15, 9, 26, 0, time.FixedZone("CET", 3600))
	n, err := reg.BuildName(ctx, nil, at)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14T15:09:26+01:00", n.(*refs.TimeValue).Value)
	back, err := reg.Resolve(ctx, nil, n)
	require.NoError(t, err)
	assert.True(t, at.Equal(back.(time.Time)), "same instant")

	n, err = reg.BuildName(ctx, nil, []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "aGk=", n.(*refs.BytesValue).Value)

	_, err = reg.Resolve(ctx, nil, &refs.BytesValue{NameMeta: apis.NewNameMeta(refs.ShapeBytes), Value: "%%"})
	assert.Error(t, err)
	_, err = reg.Resolve(ctx, nil, &refs.TimeValue{NameMeta: apis.NewNameMeta(refs.ShapeTime), Value: "yesterday"})
	assert.Error(t, err)
}

func TestDeterministic(t *testing.T) {
	reg := values(refs.NewWrapped())
	ctx := context.Background()
	m := map[string]any{"c": 3, "a": 1, "b": 2}

	first, err := reg.BuildName(ctx, nil, m)
	require.NoError(t, err)
	for range 10 {
		again, err := reg.BuildName(ctx, nil, m)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	keys := []string{}
	for _, e := range first.(*refs.MapValue).Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestNullValue(t *testing.T) {
	reg := values(refs.NewWrapped())
	ctx := context.Background()

	n, err := reg.BuildName(ctx, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, n)

	v, err := reg.Resolve(ctx, nil, refs.NewNull())
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestListElementUnnamed(t *testing.T) {
	reg := values(refs.NewWrapped())
	_, err := reg.BuildName(context.Background(), nil, []any{"a", struct{}{}})
	assert.ErrorIs(t, err, apis.ErrNoScheme)
}

func TestGlobalVariable(t *testing.T) {
	reg := values(refs.NewWrapped())
	s := session.New()
	s.Set("limit", 100)

	v, err := reg.Resolve(session.NewContext(context.Background(), s), nil, refs.NewGlobalVariable("limit"))
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	_, err = reg.Resolve(session.NewContext(context.Background(), s), nil, refs.NewGlobalVariable("other"))
	assert.ErrorIs(t, err, session.ErrUnknownVariable)

	_, err = reg.Resolve(context.Background(), nil, refs.NewGlobalVariable("limit"))
	assert.ErrorIs(t, err, refs.ErrNoSession)

	_, ok := reg.BuildNameIfAvailable(context.Background(), nil, refs.NewGlobalVariable("limit"))
	assert.False(t, ok, "global variables are never built by the registry")
}

func TestWrapped(t *testing.T) {
	wrapped := refs.NewWrapped()
	reg := values(wrapped)
	ctx := context.Background()

	_, ok := reg.BuildNameIfAvailable(ctx, nil, Ticket{ID: "T-1"})
	assert.False(t, ok, "unbound wrapped scheme is inapplicable")

	wrapped.Bind(stub{
		"T-1":   refs.NewString("ticket one"),
		"T-2":   refs.NewWrappedValue(refs.NewString("ticket two")),
		"T-nil": nil,
	})

	n, err := reg.BuildName(ctx, nil, Ticket{ID: "T-1"})
	require.NoError(t, err)
	assert.Equal(t, refs.NewWrappedValue(refs.NewString("ticket one")), n)

	v, err := reg.Resolve(ctx, nil, n)
	require.NoError(t, err)
	assert.Equal(t, "ticket one", v)

	n, err = reg.BuildName(ctx, nil, Ticket{ID: "T-2"})
	require.NoError(t, err)
	assert.Equal(t, refs.NewWrappedValue(refs.NewString("ticket two")), n, "references are not wrapped twice")

	_, ok = reg.BuildNameIfAvailable(ctx, nil, Ticket{ID: "T-nil"})
	assert.False(t, ok)
	_, ok = reg.BuildNameIfAvailable(ctx, nil, Ticket{ID: "T-3"})
	assert.False(t, ok)
}

func TestCatalog(t *testing.T) {
	cat := builder.NewCatalog()
	require.NoError(t, refs.Register(cat, refs.NewWrapped()))
	assert.Contains(t, cat.Names(), refs.ImplWrapped)
	assert.Len(t, cat.Names(), 14)

	assert.Error(t, refs.Register(cat, refs.NewWrapped()), "implementations are registered once")
}
