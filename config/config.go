// Package config provides configuration loading and management for
// semdistill: the YAML service configuration and the explicit per-run
// processing options the resolution engine requires.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semdistill/host"
)

// Config represents the complete semdistill configuration.
type Config struct {
	Distill DistillConfig `yaml:"distill"`
	NATS    NATSConfig    `yaml:"nats"`
}

// DistillConfig configures document processing.
type DistillConfig struct {
	// DefaultVersion is the RDFa version assumed when a document does
	// not declare one ("1.0" or "1.1").
	DefaultVersion string `yaml:"default_version"`
	// ForcedVersion overrides the version for every document, even ones
	// declaring their own; empty means detect.
	ForcedVersion string `yaml:"forced_version"`
	// HostLanguage forces a host language for every input; empty means
	// detect from the media type or file suffix.
	HostLanguage string `yaml:"host_language"`
	// ProcessorGraph also emits the processor graph with warnings and
	// errors encountered during distillation.
	ProcessorGraph bool `yaml:"processor_graph"`
	// Lite reports markup outside the RDFa Lite subset.
	Lite bool `yaml:"lite"`
	// MetaName treats <meta name="..."> as <meta property="..."> so
	// legacy header metadata distills too.
	MetaName bool `yaml:"meta_name"`
}

// NATSConfig configures the NATS connection used when publishing
// distilled entities.
type NATSConfig struct {
	// URL is the NATS server URL; empty disables publishing.
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Distill: DistillConfig{
			DefaultVersion: string(host.CurrentVersion),
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch host.Version(c.Distill.DefaultVersion) {
	case host.Version10, host.Version11:
	default:
		return fmt.Errorf("distill.default_version must be %q or %q", host.Version10, host.Version11)
	}
	switch host.Version(c.Distill.ForcedVersion) {
	case "", host.Version10, host.Version11:
	default:
		return fmt.Errorf("distill.forced_version must be %q or %q", host.Version10, host.Version11)
	}
	if c.Distill.HostLanguage != "" {
		if _, err := ParseLanguage(c.Distill.HostLanguage); err != nil {
			return fmt.Errorf("distill.host_language: %w", err)
		}
	}
	return nil
}

// ParseLanguage maps a configuration name to a host language.
func ParseLanguage(name string) (host.Language, error) {
	switch name {
	case "html5":
		return host.HTML5, nil
	case "xhtml":
		return host.XHTML, nil
	case "xhtml5":
		return host.XHTML5, nil
	case "svg":
		return host.SVG, nil
	case "atom":
		return host.Atom, nil
	case "xml", "core":
		return host.Core, nil
	default:
		return "", fmt.Errorf("unknown host language %q", name)
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence
// for non-zero values; boolean flags can only be switched on).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Distill.DefaultVersion != "" {
		c.Distill.DefaultVersion = other.Distill.DefaultVersion
	}
	if other.Distill.ForcedVersion != "" {
		c.Distill.ForcedVersion = other.Distill.ForcedVersion
	}
	if other.Distill.HostLanguage != "" {
		c.Distill.HostLanguage = other.Distill.HostLanguage
	}
	if other.Distill.ProcessorGraph {
		c.Distill.ProcessorGraph = true
	}
	if other.Distill.Lite {
		c.Distill.Lite = true
	}
	if other.Distill.MetaName {
		c.Distill.MetaName = true
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
}
