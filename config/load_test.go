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

package config_test

import (
	"context"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/config"
	"dirpx.dev/mrx/refs"
	"dirpx.dev/mrx/registry"
)

const registration = `
priorities: [override, default, fallback]
strictIntegrity: true
schemes:
  - impl: refs.string
  - impl: refs.wrapped
    priority: ${WRAPPED_LEVEL}
`

func TestLoad(t *testing.T) {
	t.Setenv("WRAPPED_LEVEL", "fallback")

	f, err := config.Load([]byte(registration))
	require.NoError(t, err)

	assert.Equal(t, []apis.SchemeRef{
		{Impl: "refs.string"},
		{Impl: "refs.wrapped", Priority: "fallback"},
	}, f.Schemes)

	cfg := f.Config(config.WithMaxDepth(3))
	assert.Equal(t, []string{"override", "default", "fallback"}, cfg.Priorities)
	assert.Equal(t, config.DefaultPriority, cfg.DefaultPriority)
	assert.True(t, cfg.StrictIntegrity)
	assert.Equal(t, 3, cfg.MaxDepth)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"empty impl", "schemes:\n  - priority: default\n", config.ErrEmptyImpl},
		{"duplicate level", "priorities: [a, b, a]\n", config.ErrDuplicateLevel},
		{"unknown default level", "priorities: [high, low]\ndefaultPriority: default\n", config.ErrUnknownDefaultLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load([]byte(tt.data))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := config.Load([]byte("unknown: field\n"))
	assert.Error(t, err)
	_, err = config.Load([]byte("schemes: [\n"))
	assert.Error(t, err)
}

func TestLoad_DefaultLevelFollowsPriorities(t *testing.T) {
	f, err := config.Load([]byte("priorities: [high, low]\nschemes:\n  - impl: refs.string\n"))
	require.NoError(t, err)

	cfg := f.Config()
	assert.Equal(t, "low", cfg.DefaultPriority)

	// Untagged declarations land on the lowest level instead of being dropped.
	r := registry.New(cfg, []apis.Declaration{{Scheme: refs.Strings()}})
	require.Len(t, r.Registrations(), 1)
	assert.Equal(t, "low", r.Registrations()[0].Priority.Level.Name)

	name, err := r.BuildName(context.Background(), nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, refs.ShapeString, name.GetType())
}

func TestLoadFile(t *testing.T) {
	fs := memoryfs.New()
	require.NoError(t, vfs.WriteFile(fs, "/registration.yaml", []byte("schemes:\n  - impl: refs.bool\n"), 0o644))

	f, err := config.LoadFile(fs, "/registration.yaml")
	require.NoError(t, err)
	assert.Equal(t, []apis.SchemeRef{{Impl: "refs.bool"}}, f.Schemes)

	// No levels in the file: defaults apply.
	assert.Equal(t, config.DefaultPriorities(), f.Config().Priorities)

	_, err = config.LoadFile(fs, "/missing.yaml")
	assert.Error(t, err)
}
