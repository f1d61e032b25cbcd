// Package config persists the lcagents runtime configuration record at
// runtime/config.yaml and the tech-stack metadata at runtime/tech-stack.yaml.
// Implements: prd002-runtime-config (R1.4, R1.5, R1.6, R8).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/lcagents/internal/paths"
	"github.com/mesh-intelligence/lcagents/pkg/types"
)

// Store reads and writes the runtime configuration of one install root.
// The config path does not depend on the active core system, so a Store
// needs only the project root; resolving the active core system is what
// the store is for.
type Store struct {
	root string
}

// NewStore creates a Store for the given project root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// configPath returns the runtime config file location. The Tree accessors
// for the runtime layer are independent of the core-system name.
func (s *Store) configPath() string {
	return paths.NewTree(s.root, "").RuntimeConfigPath()
}

// techStackPath returns the tech-stack metadata file location.
func (s *Store) techStackPath() string {
	return paths.NewTree(s.root, "").TechStackPath()
}

// Load reads runtime/config.yaml. A missing file is not an error: the zero
// RuntimeConfig is returned so callers can treat an uninstalled tree as
// "nothing configured yet".
func (s *Store) Load() (types.RuntimeConfig, error) {
	v := viper.New()
	v.SetConfigFile(s.configPath())
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return types.RuntimeConfig{}, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return types.RuntimeConfig{}, nil
		}
		return types.RuntimeConfig{}, fmt.Errorf("read runtime config: %w", err)
	}

	var cfg types.RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.RuntimeConfig{}, fmt.Errorf("unmarshal runtime config: %w", err)
	}
	return cfg, nil
}

// Save validates and writes runtime/config.yaml, creating the runtime
// directory if needed.
func (s *Store) Save(cfg types.RuntimeConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal runtime config: %w", err)
	}

	path := s.configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create runtime dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Get returns the value of a dotted config key ("coreSystem",
// "techStack.primary") as a string, or "" when unset.
func (s *Store) Get(key string) (string, error) {
	v := viper.New()
	v.SetConfigFile(s.configPath())
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read runtime config: %w", err)
	}
	return v.GetString(key), nil
}

// Set updates a dotted config key and persists the record. The resulting
// config must still validate; setting coreSystem to "" is rejected.
func (s *Store) Set(key, value string) error {
	v := viper.New()
	v.SetConfigFile(s.configPath())
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read runtime config: %w", err)
	}
	v.Set(key, value)

	var cfg types.RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal runtime config: %w", err)
	}
	return s.Save(cfg)
}

// LoadTechStack reads runtime/tech-stack.yaml. A missing file yields the
// zero TechStack.
func (s *Store) LoadTechStack() (types.TechStack, error) {
	data, err := os.ReadFile(s.techStackPath())
	if err != nil {
		if os.IsNotExist(err) {
			return types.TechStack{}, nil
		}
		return types.TechStack{}, fmt.Errorf("read tech stack: %w", err)
	}

	var ts types.TechStack
	if err := yaml.Unmarshal(data, &ts); err != nil {
		return types.TechStack{}, fmt.Errorf("unmarshal tech stack: %w", err)
	}
	return ts, nil
}

// SaveTechStack writes runtime/tech-stack.yaml.
func (s *Store) SaveTechStack(ts types.TechStack) error {
	data, err := yaml.Marshal(&ts)
	if err != nil {
		return fmt.Errorf("marshal tech stack: %w", err)
	}

	path := s.techStackPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create runtime dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
