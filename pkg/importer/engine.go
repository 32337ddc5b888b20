// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"fmt"

	"github.com/schemabind/schemabind/pkg/config"
	"github.com/schemabind/schemabind/pkg/logger"
)

// EngineConfig carries every tunable the engine needs. Defaults that used to
// live in string literals are explicit named fields here; note that the
// core-API default version and the naming primary version are independent
// values answering different questions.
type EngineConfig struct {
	// DefaultCoreAPIVersion is used when the `k8s` alias carries no version.
	DefaultCoreAPIVersion string

	// CoreAPISchemaURL is a printf template with one %s for the version.
	CoreAPISchemaURL string

	// RegistryBaseURL is where registry-alias imports are resolved.
	RegistryBaseURL string

	// AllowPrivateSourceIP permits fetching from private addresses.
	AllowPrivateSourceIP bool

	// CACertificatePath optionally points at a CA bundle for TLS fetches.
	CACertificatePath string

	// Naming controls identifier derivation.
	Naming NamingConfig
}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultCoreAPIVersion: config.DefaultCoreAPIVersion,
		CoreAPISchemaURL:      "https://raw.githubusercontent.com/cdk8s-team/cdk8s/master/kubernetes-schemas/v%s/_definitions.json",
		RegistryBaseURL:       config.DefaultRegistryBaseURL,
		Naming:                DefaultNamingConfig(),
	}
}

// EngineConfigFromAppConfig derives an engine configuration from the
// persisted application config, filling gaps with defaults.
func EngineConfigFromAppConfig(c *config.Config) EngineConfig {
	cfg := DefaultEngineConfig()
	if c == nil {
		return cfg
	}
	if c.DefaultCoreAPIVersion != "" {
		cfg.DefaultCoreAPIVersion = c.DefaultCoreAPIVersion
	}
	if c.RegistryBaseURL != "" {
		cfg.RegistryBaseURL = c.RegistryBaseURL
	}
	cfg.AllowPrivateSourceIP = c.AllowPrivateSourceIp
	cfg.CACertificatePath = c.CACertificatePath
	return cfg
}

// ImportRecorder persists successfully processed import specifications.
// config.Provider satisfies it.
type ImportRecorder interface {
	RegisterImport(ctx context.Context, spec string) error
}

// Importer resolves one import specification into definitions.
type Importer interface {
	Import(ctx context.Context) (*DefinitionSet, error)
}

// Engine runs import specifications through the full pipeline: dispatch,
// fetch, sanitize, validate, build, name. One engine instance serves one
// invocation; it holds no shared mutable state.
type Engine struct {
	cfg      EngineConfig
	fetcher  SourceFetcher
	puller   ChartPuller
	recorder ImportRecorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithFetcher overrides the source fetcher (used by tests).
func WithFetcher(f SourceFetcher) Option {
	return func(e *Engine) { e.fetcher = f }
}

// WithChartPuller overrides the helm chart puller.
func WithChartPuller(p ChartPuller) Option {
	return func(e *Engine) { e.puller = p }
}

// WithRecorder sets the recorder that persists import specifications.
func WithRecorder(r ImportRecorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine creates an import engine.
func NewEngine(cfg EngineConfig, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg, puller: &execChartPuller{}}
	for _, opt := range opts {
		opt(e)
	}

	if e.fetcher == nil {
		fetcher, err := newDefaultFetcher(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create source fetcher: %w", err)
		}
		e.fetcher = fetcher
	}
	return e, nil
}

// Run processes import specifications sequentially in the given order; later
// imports may depend on config state written by earlier ones, so the order
// must not be parallelized. Any fatal condition unwinds immediately and no
// partial definition set is returned.
func (e *Engine) Run(ctx context.Context, specs []ImportSpec) (*DefinitionSet, error) {
	combined := NewDefinitionSet()
	for _, spec := range specs {
		imp, err := e.Resolve(spec)
		if err != nil {
			return nil, err
		}

		logger.Debugf("importing %q", spec.Source)
		set, err := imp.Import(ctx)
		if err != nil {
			return nil, err
		}
		combined.AddAll(set)

		// Core-API imports are implicit and not recorded.
		if _, core := imp.(*CoreAPIImporter); core || e.recorder == nil {
			continue
		}
		if err := e.recorder.RegisterImport(ctx, spec.Original); err != nil {
			return nil, fmt.Errorf("failed to record import %q: %w", spec.Original, err)
		}
	}
	return combined, nil
}

// moduleName partitions definitions on disk. Distinct prefixes keep two
// same-kind CRDs from different imports distinguishable.
func moduleName(prefix, group string) string {
	if prefix == "" {
		return group
	}
	return fmt.Sprintf("%s-%s", prefix, group)
}
