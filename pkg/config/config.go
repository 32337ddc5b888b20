// Package config contains the definition of the application config structure
// and logic required to load and update it.
package config

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Default values applied when a config file is created for the first time.
// Each default is an explicit, independently overridable field; the core-API
// default version and the naming primary version deliberately do not share a
// constant because they answer different questions.
const (
	// DefaultCoreAPIVersion is the Kubernetes API version imported when the
	// `k8s` alias carries no explicit version.
	DefaultCoreAPIVersion = "1.22.0"

	// DefaultRegistryBaseURL is where registry-alias imports are resolved.
	DefaultRegistryBaseURL = "https://doc.crds.dev/raw"
)

// Config represents the configuration of the application.
type Config struct {
	// Imports is the persisted list of import specification strings, in the
	// exact pre-dispatch form the user supplied them.
	Imports []string `yaml:"imports"`

	DefaultCoreAPIVersion string `yaml:"default_core_api_version"`
	RegistryBaseURL       string `yaml:"registry_base_url"`
	AllowPrivateSourceIp  bool   `yaml:"allow_private_source_ip"`
	CACertificatePath     string `yaml:"ca_certificate_path,omitempty"`
}

// defaultPathGenerator generates the default config path using xdg
var defaultPathGenerator = func() (string, error) {
	return xdg.ConfigFile("schemabind/config.yaml")
}

// getConfigPath is the current path generator, can be replaced in tests
var getConfigPath = defaultPathGenerator

// createNewConfigWithDefaults creates a new config with default values
func createNewConfigWithDefaults() Config {
	return Config{
		DefaultCoreAPIVersion: DefaultCoreAPIVersion,
		RegistryBaseURL:       DefaultRegistryBaseURL,
		AllowPrivateSourceIp:  false,
	}
}

// save serializes the config to the default path.
func (c *Config) save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("unable to fetch config path: %w", err)
	}
	return c.saveToPath(configPath)
}

// saveToPath serializes the config to the given path.
func (c *Config) saveToPath(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	configPath = path.Clean(configPath)
	if err := os.MkdirAll(path.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}
	return nil
}

// LoadOrCreateConfig fetches the application configuration.
// If it does not already exist - it will create a new config file with default values.
func LoadOrCreateConfig() (*Config, error) {
	store, err := NewConfigStore()
	if err != nil {
		return nil, fmt.Errorf("failed to create config store: %w", err)
	}

	return store.Load(context.Background())
}
