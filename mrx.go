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

package mrx

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/mrx/apis"
	"dirpx.dev/mrx/builder"
	"dirpx.dev/mrx/codec"
	"dirpx.dev/mrx/config"
	"dirpx.dev/mrx/metrics"
	"dirpx.dev/mrx/reference"
	"dirpx.dev/mrx/refs"
	"dirpx.dev/mrx/registry"
	"dirpx.dev/mrx/valuenaming"
)

//go:embed default.yaml
var defaultRegistration []byte

// ErrNilService is returned when SetDefault is called with nil.
var ErrNilService = errors.New("mrx: nil service")

// DefaultFile returns the embedded default registration.
func DefaultFile() *config.File {
	f, err := config.Load(defaultRegistration)
	if err != nil {
		panic(fmt.Errorf("mrx: invalid embedded registration: %w", err))
	}
	return f
}

// Service is a naming service built from one registration.
// It is immutable and safe for concurrent use.
type Service struct {
	config     apis.Config
	catalog    *builder.Catalog
	registry   apis.Registry
	values     *valuenaming.Registry
	references *reference.Factory
	codec      *codec.Codec
}

// Option configures New.
type Option func(*options)

type options struct {
	file         *config.File
	configOpts   []config.Option
	valueSchemes []valuenaming.Scheme
	schemes      []impl
	metrics      prometheus.Registerer
	registryOpts []registry.Option
}

type impl struct {
	name    string
	factory apis.SchemeFactory
}

// WithFile sets the registration. Nil selects the embedded default.
func WithFile(f *config.File) Option {
	return func(o *options) {
		o.file = f
	}
}

// WithConfig applies configuration options on top of the registration.
func WithConfig(opts ...config.Option) Option {
	return func(o *options) {
		o.configOpts = append(o.configOpts, opts...)
	}
}

// WithValueSchemes adds value schemes for closed-option naming.
func WithValueSchemes(schemes ...valuenaming.Scheme) Option {
	return func(o *options) {
		o.valueSchemes = append(o.valueSchemes, schemes...)
	}
}

// WithScheme makes a scheme implementation available to the registration
// under name. The registration decides whether and where it is declared.
func WithScheme(name string, f apis.SchemeFactory) Option {
	return func(o *options) {
		o.schemes = append(o.schemes, impl{name: name, factory: f})
	}
}

// WithMetrics registers the registry collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.metrics = reg
	}
}

// WithRegistryOptions passes options to the scheme registry.
func WithRegistryOptions(opts ...registry.Option) Option {
	return func(o *options) {
		o.registryOpts = append(o.registryOpts, opts...)
	}
}

// New builds a naming service.
func New(opts ...Option) (*Service, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.file == nil {
		o.file = DefaultFile()
	}

	values, err := valuenaming.NewRegistry(o.valueSchemes...)
	if err != nil {
		return nil, err
	}

	wrapped := refs.NewWrapped()
	cat := builder.NewCatalog()
	if err := refs.Register(cat, wrapped); err != nil {
		return nil, err
	}
	if err := cat.Register(valuenaming.Impl, func() (apis.Scheme, error) {
		return valuenaming.NewOptionsScheme(values), nil
	}); err != nil {
		return nil, err
	}
	if err := cat.Register(valuenaming.LabelImpl, func() (apis.Scheme, error) {
		return valuenaming.NewLabelScheme(), nil
	}); err != nil {
		return nil, err
	}
	for _, s := range o.schemes {
		if err := cat.Register(s.name, s.factory); err != nil {
			return nil, err
		}
	}

	ropts := o.registryOpts
	if o.metrics != nil {
		ropts = append(ropts, registry.WithMetrics(metrics.New(o.metrics)))
	}
	cfg := o.file.Config(o.configOpts...)
	reg, err := builder.New(cat, ropts...).BuildRegistry(cfg, o.file.Schemes)
	if err != nil {
		return nil, err
	}

	f := reference.New(reg, values)
	wrapped.Bind(f)

	return &Service{
		config:     cfg,
		catalog:    cat,
		registry:   reg,
		values:     values,
		references: f,
		codec:      codec.New(reg),
	}, nil
}

// Config returns the registry configuration.
func (s *Service) Config() apis.Config { return s.config }

// Catalog returns the scheme implementations known to the service.
func (s *Service) Catalog() *builder.Catalog { return s.catalog }

// Registry returns the scheme registry.
func (s *Service) Registry() apis.Registry { return s.registry }

// Values returns the value scheme registry.
func (s *Service) Values() *valuenaming.Registry { return s.values }

// References returns the reference factory.
func (s *Service) References() *reference.Factory { return s.references }

// Codec returns the codec for the registered shapes.
func (s *Service) Codec() *codec.Codec { return s.codec }

// BuildName names a model object through the registry.
func (s *Service) BuildName(ctx context.Context, vctx, model any) (apis.Name, error) {
	return s.registry.BuildName(ctx, vctx, model)
}

// Reference names an arbitrary value through the reference factory.
func (s *Service) Reference(ctx context.Context, vctx, value any) (apis.Name, error) {
	return s.references.Reference(ctx, vctx, value)
}

// Resolve maps a name back to its value.
func (s *Service) Resolve(ctx context.Context, vctx any, name apis.Name) (any, error) {
	return s.references.Resolve(ctx, vctx, name)
}

// def is the current default service.
var def atomic.Pointer[Service]

func init() {
	s, err := New()
	if err != nil {
		panic(fmt.Errorf("mrx: cannot build default service: %w", err))
	}
	def.Store(s)
}

// Default returns the default service.
func Default() *Service {
	return def.Load()
}

// SetDefault replaces the default service and returns the previous one.
func SetDefault(s *Service) (*Service, error) {
	if s == nil {
		return nil, ErrNilService
	}
	return def.Swap(s), nil
}

// Reference names value with the default service.
func Reference(ctx context.Context, vctx, value any) (apis.Name, error) {
	return def.Load().Reference(ctx, vctx, value)
}

// Resolve resolves name with the default service.
func Resolve(ctx context.Context, vctx any, name apis.Name) (any, error) {
	return def.Load().Resolve(ctx, vctx, name)
}
