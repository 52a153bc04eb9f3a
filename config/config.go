package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultRootName is the name given to the partition at the top of a tree
	DefaultRootName = "root"

	// DefaultCapacity is the partition capacity in bytes
	DefaultCapacity ByteSize = 10_000

	DefaultLogLvl = util.InfoLevel
)

// CLI style verbosity values accepted by [ConfigOverride.LogLvl]
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Config contains runtime configuration values for a namespace tree.
type Config struct {
	RootName string        // Name of the root partition (Default "root")
	Capacity ByteSize      // Partition capacity in bytes (Default 10000)
	LogLvl   util.LogLevel // Internal log level (Default info)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	RootName *string   `yaml:"root_name,omitempty" json:"root_name,omitempty"`
	Capacity *ByteSize `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	// LogLvl is a verbosity between 1 (error) and 5 (trace); out of range values are clamped
	LogLvl *int `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		RootName: DefaultRootName,
		Capacity: DefaultCapacity,
		LogLvl:   DefaultLogLvl,
	}
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.RootName != nil {
		c.RootName = *override.RootName
	}
	if override.Capacity != nil {
		c.Capacity = *override.Capacity
	}
	if override.LogLvl != nil {
		c.LogLvl = util.LevelFromVerbosity(*override.LogLvl)
	}
}

// Validate reports configuration values the tree cannot be built with
func (c *Config) Validate() error {
	if c.RootName == "" {
		return errors.New(errors.CodeInvalidConfig, "root name must not be empty")
	}
	return nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats. Keys the
// override does not know are rejected so a misspelled setting cannot be
// silently ignored; an empty file is an empty override.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride
	if ext == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&override)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&override)
	}
	if err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WithContext(
			errors.Wrap(err, errors.CodeInvalidConfig, "failed to unmarshal config file"), "path", path)
	}
	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig(override)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
