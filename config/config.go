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
	"slices"

	"dirpx.dev/mrx/apis"
)

const (
	// DefaultPriority represents the default for DefaultPriority.
	// Declarations without a level are registered here.
	DefaultPriority = apis.DefaultPriorityLevel
	// DefaultStrictIntegrity represents the default for StrictIntegrity.
	// Integrity violations are returned as errors unless enabled.
	DefaultStrictIntegrity = false
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 32 should be sufficient for all practical purposes.
	DefaultMaxDepth = 32
)

// DefaultPriorities are the priority levels used when none are configured,
// highest first.
func DefaultPriorities() []string {
	return []string{"override", DefaultPriority, "fallback"}
}

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.DefaultPriority == "" {
		cfg.DefaultPriority = DefaultPriority
	}
	if len(cfg.Priorities) == 0 {
		cfg.Priorities = []string{cfg.DefaultPriority}
	}
	// Untagged declarations go to the lowest level unless the default is one of the levels.
	if !slices.Contains(cfg.Priorities, cfg.DefaultPriority) {
		cfg.DefaultPriority = cfg.Priorities[len(cfg.Priorities)-1]
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Priorities:      DefaultPriorities(),
		DefaultPriority: DefaultPriority,
		StrictIntegrity: DefaultStrictIntegrity,
		MaxDepth:        DefaultMaxDepth,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPriorities sets the priority levels, highest first.
// Empty names and repeated names are dropped.
func WithPriorities(levels ...string) Option {
	return func(c *apis.Config) {
		out := make([]string, 0, len(levels))
		for _, l := range levels {
			if l != "" && !slices.Contains(out, l) {
				out = append(out, l)
			}
		}
		c.Priorities = out
	}
}

// WithDefaultPriority sets the level used by declarations that name none.
func WithDefaultPriority(level string) Option {
	return func(c *apis.Config) {
		c.DefaultPriority = level
	}
}

// WithStrictIntegrity sets the StrictIntegrity option.
func WithStrictIntegrity(strict bool) Option {
	return func(c *apis.Config) {
		c.StrictIntegrity = strict
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}
