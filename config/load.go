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

package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"dirpx.dev/mrx/apis"
)

var (
	// ErrEmptyImpl is returned for scheme entries without an implementation name.
	ErrEmptyImpl = errors.New("mrx(config): scheme entry without impl")
	// ErrDuplicateLevel is returned when a priority level is listed twice.
	ErrDuplicateLevel = errors.New("mrx(config): duplicate priority level")
	// ErrUnknownDefaultLevel is returned when defaultPriority is not one of the listed levels.
	ErrUnknownDefaultLevel = errors.New("mrx(config): default priority is not a configured level")
)

// File is the registration file: the priority levels and the ordered list
// of schemes to register.
//
//	priorities: [override, default, fallback]
//	schemes:
//	  - impl: refs.string
//	  - impl: refs.wrapped
//	    priority: fallback
//
// ${VAR} references are expanded from the environment before parsing.
type File struct {
	// Priorities lists the level names, highest first.
	Priorities []string `json:"priorities,omitempty"`
	// DefaultPriority is the level of entries that name none.
	DefaultPriority string `json:"defaultPriority,omitempty"`
	// StrictIntegrity turns integrity violations into panics.
	StrictIntegrity bool `json:"strictIntegrity,omitempty"`
	// MaxDepth limits the type hierarchy walk.
	MaxDepth int `json:"maxDepth,omitempty"`
	// Schemes are the declarations in registration order.
	Schemes []apis.SchemeRef `json:"schemes,omitempty"`
}

// Load parses a registration file.
func Load(data []byte) (*File, error) {
	expanded, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("mrx(config): cannot expand environment: %w", err)
	}
	var f File
	if err := yaml.UnmarshalStrict([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("mrx(config): cannot parse registration file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and parses a registration file from fs.
// A nil fs selects the operating system filesystem.
func LoadFile(fs vfs.FileSystem, path string) (*File, error) {
	if fs == nil {
		fs = osfs.OsFs
	}
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("mrx(config): cannot read %q: %w", path, err)
	}
	f, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks the structural constraints of the file. Unknown priority
// levels of scheme entries are not checked here; the registry logs and
// skips such entries. Without defaultPriority the lowest listed level
// takes untagged entries.
func (f *File) Validate() error {
	for i, l := range f.Priorities {
		if slices.Contains(f.Priorities[:i], l) {
			return fmt.Errorf("%w: %q", ErrDuplicateLevel, l)
		}
	}
	if f.DefaultPriority != "" && len(f.Priorities) > 0 && !slices.Contains(f.Priorities, f.DefaultPriority) {
		return fmt.Errorf("%w: %q", ErrUnknownDefaultLevel, f.DefaultPriority)
	}
	for i, s := range f.Schemes {
		if s.Impl == "" {
			return fmt.Errorf("%w (entry %d)", ErrEmptyImpl, i)
		}
	}
	return nil
}

// Config returns the registry configuration described by the file.
// Additional options are applied after the file settings.
func (f *File) Config(opts ...Option) apis.Config {
	all := []Option{
		WithDefaultPriority(f.DefaultPriority),
		WithStrictIntegrity(f.StrictIntegrity),
		WithMaxDepth(f.MaxDepth),
	}
	if len(f.Priorities) > 0 {
		all = append(all, WithPriorities(f.Priorities...))
	}
	return NewConfig(append(all, opts...)...)
}
