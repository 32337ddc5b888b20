package config

import "context"

// Provider defines the interface for configuration operations
type Provider interface {
	LoadOrCreateConfig() (*Config, error)
	UpdateConfig(updateFn func(*Config)) error

	// Import-list operations
	RegisterImport(ctx context.Context, spec string) error
	ListImports() ([]string, error)
}

// DefaultProvider implements Provider using the default XDG config path
type DefaultProvider struct{}

// NewDefaultProvider creates a new default config provider
func NewDefaultProvider() *DefaultProvider {
	return &DefaultProvider{}
}

// LoadOrCreateConfig loads or creates config using the default path
func (*DefaultProvider) LoadOrCreateConfig() (*Config, error) {
	return LoadOrCreateConfig()
}

// UpdateConfig updates the config using the default path
func (*DefaultProvider) UpdateConfig(updateFn func(*Config)) error {
	return NewLocalStore("").Update(context.Background(), updateFn)
}

// RegisterImport appends an import specification to the persisted list
func (d *DefaultProvider) RegisterImport(ctx context.Context, spec string) error {
	return registerImport(ctx, NewLocalStore(""), spec)
}

// ListImports returns the persisted import specification list
func (d *DefaultProvider) ListImports() ([]string, error) {
	return listImports(d)
}

// PathProvider implements Provider using a specific config path
type PathProvider struct {
	configPath string
}

// NewPathProvider creates a new config provider with a specific path
func NewPathProvider(configPath string) *PathProvider {
	return &PathProvider{configPath: configPath}
}

// LoadOrCreateConfig loads or creates config at the specific path
func (p *PathProvider) LoadOrCreateConfig() (*Config, error) {
	return NewLocalStore(p.configPath).Load(context.Background())
}

// UpdateConfig updates the config at the specific path
func (p *PathProvider) UpdateConfig(updateFn func(*Config)) error {
	return NewLocalStore(p.configPath).Update(context.Background(), updateFn)
}

// RegisterImport appends an import specification to the persisted list
func (p *PathProvider) RegisterImport(ctx context.Context, spec string) error {
	return registerImport(ctx, NewLocalStore(p.configPath), spec)
}

// ListImports returns the persisted import specification list
func (p *PathProvider) ListImports() ([]string, error) {
	return listImports(p)
}
