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

package registry_test

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/config"
	"dirpx.dev/mrx/metrics"
	"dirpx.dev/mrx/registry"
)

func TestBuildAndResolve_RoundTrip(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{decl(dogs("test.dog"), "")})

	n, err := reg.BuildName(ctx, nil, Dog{Name: "rex"})
	require.NoError(t, err)
	assert.Equal(t, "test.dog", n.GetType())

	again, err := reg.BuildName(ctx, nil, Dog{Name: "rex"})
	require.NoError(t, err)
	if diff := deep.Equal(n, again); diff != nil {
		t.Fatalf("naming is not deterministic: %v", diff)
	}

	v, err := reg.Resolve(ctx, nil, n)
	require.NoError(t, err)
	assert.Equal(t, Dog{Name: "rex"}, v)
}

func TestPriority_HigherLevelAndLaterDeclarationWin(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewConfig(config.WithPriorities("override", "default", "fallback"))

	tests := []struct {
		name  string
		decls []apis.Declaration
		want  string
	}{
		{
			name:  "override beats default",
			decls: []apis.Declaration{decl(dogs("test.dog.override"), "override"), decl(dogs("test.dog"), "default")},
			want:  "test.dog.override",
		},
		{
			name:  "default beats fallback regardless of order",
			decls: []apis.Declaration{decl(dogs("test.dog"), ""), decl(dogs("test.dog.fallback"), "fallback")},
			want:  "test.dog",
		},
		{
			name:  "later declaration wins within a level",
			decls: []apis.Declaration{decl(dogs("test.dog.first"), ""), decl(dogs("test.dog.second"), "")},
			want:  "test.dog.second",
		},
		{
			name:  "specific scheme at lower level loses to interface scheme at higher level",
			decls: []apis.Declaration{decl(dogs("test.dog"), "fallback"), decl(animals(), "default")},
			want:  "test.animal",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registry.New(cfg, tt.decls)
			n, err := reg.BuildName(ctx, nil, Dog{Name: "rex"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.GetType())
		})
	}
}

func TestEffectiveSchemes_HierarchyClosure(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{
		decl(animals(), "fallback"),
		decl(dogs("test.dog"), ""),
		decl(dogs("test.dog.override"), "override"),
	})

	// Puppy reaches the animal scheme through itself and through Dog;
	// it must appear once.
	got := shapes(reg.EffectiveSchemes(reflect.TypeFor[Puppy]()))
	assert.Equal(t, []string{"test.animal", "test.dog", "test.dog.override"}, got)

	assert.Equal(t, []string{"test.animal"}, shapes(reg.EffectiveSchemes(reflect.TypeFor[Cat]())))
	assert.Empty(t, reg.EffectiveSchemes(reflect.TypeFor[int]()))
	assert.Empty(t, reg.EffectiveSchemes(nil))

	// Puppy is named by the highest priority scheme of its supertype Dog.
	n, err := reg.BuildName(context.Background(), nil, Puppy{Dog: Dog{Name: "bit"}})
	require.NoError(t, err)
	assert.Equal(t, "test.dog.override", n.GetType())
}

func TestEffectiveSchemes_UnexportedEmbedding(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{decl(tags(), "")})

	assert.Empty(t, reg.EffectiveSchemes(reflect.TypeFor[Holder]()))
	_, err := reg.BuildName(ctx, nil, Holder{tag: tag{Name: "x"}})
	assert.ErrorIs(t, err, apis.ErrNoScheme)

	n, err := reg.BuildName(ctx, nil, tag{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "test.tag", n.GetType())
}

func TestEffectiveSchemes_CyclicHierarchy(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{decl(dogs("test.dog"), "")},
		registry.WithSupertypes(reflect.TypeFor[Loop](), reflect.TypeFor[Dog]()))

	assert.Equal(t, []string{"test.dog"}, shapes(reg.EffectiveSchemes(reflect.TypeFor[*Loop]())))
	assert.Equal(t, []string{"test.dog"}, shapes(reg.EffectiveSchemes(reflect.TypeFor[Loop]())))
}

func TestBuildName_FailSoft(t *testing.T) {
	ctx := context.Background()
	preg := prometheus.NewRegistry()
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{
		decl(dogs("test.dog"), "fallback"),
		decl(failing(), "override"),
		decl(crashing(), "override"),
	}, registry.WithMetrics(metrics.New(preg)))

	n, err := reg.BuildName(ctx, nil, Dog{Name: "rex"})
	require.NoError(t, err)
	assert.Equal(t, "test.dog", n.GetType())

	// The failing scheme counts as a failure, the panicking one as a crash only.
	failures := `
# HELP mrx_scheme_failures_total Naming scheme failures while building names, by shape.
# TYPE mrx_scheme_failures_total counter
mrx_scheme_failures_total{shape="test.failing"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(preg, strings.NewReader(failures), "mrx_scheme_failures_total"))
	crashes, err := testutil.GatherAndCount(preg, "mrx_scheme_crashes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, crashes)

	// Resolution failures surface as errors.
	_, err = reg.Resolve(ctx, nil, &dogName{NameMeta: apis.NewNameMeta("test.failing")})
	assert.ErrorContains(t, err, "unsupported")
}

func TestBuildName_NoScheme(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{decl(dogs("test.dog"), "")})

	_, err := reg.BuildName(ctx, nil, Cat{Name: "tom"})
	assert.ErrorIs(t, err, apis.ErrNoScheme)

	n, ok := reg.BuildNameIfAvailable(ctx, nil, Cat{Name: "tom"})
	assert.False(t, ok)
	assert.Nil(t, n)

	// Only a failing scheme applies.
	reg = registry.New(config.DefaultConfig(), []apis.Declaration{decl(failing(), "")})
	_, err = reg.BuildName(ctx, nil, Dog{Name: "rex"})
	assert.ErrorIs(t, err, apis.ErrNoScheme)
}

func TestNilHandling(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{decl(dogs("test.dog"), "")})

	n, err := reg.BuildName(ctx, nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, n)

	n, ok := reg.BuildNameIfAvailable(ctx, nil, nil)
	assert.True(t, ok)
	assert.Nil(t, n)

	v, err := reg.Resolve(ctx, nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, v)

	var typedNil *dogName
	v, err = reg.Resolve(ctx, nil, typedNil)
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestContextIsolation(t *testing.T) {
	ctx := context.Background()
	table := &TableContext{Rows: []string{"alpha", "beta"}}
	tree := &TreeContext{Nodes: map[string]string{"/a/b": "beta"}}

	reg := registry.New(config.DefaultConfig(), []apis.Declaration{decl(rows(), ""), decl(nodes(), "")})

	rn, err := reg.BuildName(ctx, table, "beta")
	require.NoError(t, err)
	assert.Equal(t, "test.row", rn.GetType())

	tn, err := reg.BuildName(ctx, tree, "beta")
	require.NoError(t, err)
	assert.Equal(t, "test.node", tn.GetType())

	// No context: no scoped scheme applies.
	_, err = reg.BuildName(ctx, nil, "beta")
	assert.ErrorIs(t, err, apis.ErrNoScheme)

	v, err := reg.Resolve(ctx, table, rn)
	require.NoError(t, err)
	assert.Equal(t, "beta", v)

	// A row name resolved in a tree context is an integrity violation.
	_, err = reg.Resolve(ctx, tree, rn)
	assert.ErrorIs(t, err, apis.ErrIntegrity)
}

func TestContextIsolation_InterfaceContext(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{decl(labels(), "")})

	// A missing value context satisfies no interface.
	_, err := reg.BuildName(ctx, nil, "x")
	assert.ErrorIs(t, err, apis.ErrNoScheme)

	n, err := reg.BuildName(ctx, time.Second, "x")
	require.NoError(t, err)
	assert.Equal(t, "test.label", n.GetType())

	v, err := reg.Resolve(ctx, time.Second, n)
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestStrictIntegrity_Panics(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(config.NewConfig(config.WithStrictIntegrity(true)), []apis.Declaration{decl(rows(), "")})

	assert.Panics(t, func() {
		_, _ = reg.Resolve(ctx, nil, &rowName{NameMeta: apis.NewNameMeta("test.row")})
	})
	// Name type does not match the scheme of its shape.
	assert.Panics(t, func() {
		_, _ = reg.Resolve(ctx, &TableContext{}, &nodeName{NameMeta: apis.NewNameMeta("test.row")})
	})
}

func TestResolve_Errors(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{decl(dogs("test.dog"), "")})

	_, err := reg.Resolve(ctx, nil, &dogName{Name: "rex"})
	assert.ErrorIs(t, err, apis.ErrNoShape)

	_, err = reg.Resolve(ctx, nil, &dogName{NameMeta: apis.NewNameMeta("test.unknown")})
	assert.ErrorIs(t, err, apis.ErrUnknownShape)

	_, err = reg.Resolve(ctx, nil, &animalName{NameMeta: apis.NewNameMeta("test.dog")})
	assert.ErrorIs(t, err, apis.ErrIntegrity)
}

func TestBatchOperations(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{decl(dogs("test.dog"), ""), decl(animals(), "fallback")})

	names, err := reg.BuildNames(ctx, nil, []any{Dog{Name: "a"}, nil, Cat{Name: "b"}})
	require.NoError(t, err)
	require.Len(t, names, 3)
	assert.Equal(t, "test.dog", names[0].GetType())
	assert.Nil(t, names[1])
	assert.Equal(t, "test.animal", names[2].GetType())

	_, err = reg.BuildNames(ctx, nil, []any{Dog{Name: "a"}, 42})
	assert.ErrorIs(t, err, apis.ErrNoScheme)
	assert.ErrorContains(t, err, "element 1")

	_, ok := reg.BuildNamesIfAvailable(ctx, nil, []any{Dog{Name: "a"}, 42})
	assert.False(t, ok)

	all, ok := reg.BuildNamesIfAvailable(ctx, nil, []any{Cat{Name: "b"}})
	assert.True(t, ok)
	assert.Len(t, all, 1)

	animalsOnly, err := registry.ResolveAllAs[Animal](ctx, reg, nil, names)
	require.NoError(t, err)
	assert.Equal(t, []Animal{Dog{Name: "a"}, nil, Cat{Name: "b"}}, animalsOnly)

	_, err = reg.ResolveAll(ctx, nil, names, reflect.TypeFor[Dog]())
	assert.ErrorIs(t, err, apis.ErrUnexpectedType)
	assert.ErrorContains(t, err, "element 2")

	vs, err := reg.ResolveAll(ctx, nil, names, nil)
	require.NoError(t, err)
	assert.Len(t, vs, 3)
}

func TestRegistration_DuplicatesAndUnknownLevels(t *testing.T) {
	first, second := dogs("test.dog"), dogs("test.dog")
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{
		decl(first, ""),
		decl(animals(), "no-such-level"),
		decl(second, ""),
		{},
	})

	require.Len(t, reg.Registrations(), 2)
	_, ok := reg.Lookup("test.animal")
	assert.False(t, ok, "scheme with unknown level must be ignored")

	s, ok := reg.Lookup("test.dog")
	require.True(t, ok)
	assert.Same(t, second, s)

	conflicts := reg.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "test.dog", conflicts[0].Shape)
	assert.Same(t, second, conflicts[0].Kept)
	assert.Same(t, first, conflicts[0].Replaced)

	assert.Equal(t, 2, reg.Registrations()[1].Priority.Order)
}

func TestRegistration_DefaultLevelNotConfigured(t *testing.T) {
	cfg := apis.Config{Priorities: []string{"high", "low"}, DefaultPriority: "default"}
	reg := registry.New(cfg, []apis.Declaration{decl(dogs("test.dog"), ""), decl(animals(), "high")})

	require.Len(t, reg.Registrations(), 2)
	assert.Equal(t, "low", reg.Registrations()[0].Priority.Level.Name)
	assert.Equal(t, "low", reg.Config().DefaultPriority)

	n, err := reg.BuildName(context.Background(), nil, Dog{Name: "rex"})
	require.NoError(t, err)
	assert.Equal(t, "test.animal", n.GetType())
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	preg := prometheus.NewRegistry()
	reg := registry.New(config.DefaultConfig(), []apis.Declaration{
		decl(dogs("test.dog"), "fallback"),
		decl(crashing(), "override"),
	}, registry.WithMetrics(metrics.New(preg)))

	_, err := reg.BuildName(ctx, nil, Dog{Name: "rex"})
	require.NoError(t, err)
	_, _ = reg.BuildName(ctx, nil, Dog{Name: "rex"})

	n, err := testutil.GatherAndCount(preg, "mrx_scheme_crashes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = testutil.GatherAndCount(preg, "mrx_scheme_failures_total")
	require.NoError(t, err)
	assert.Zero(t, n, "a panic is not also a failure")
}
