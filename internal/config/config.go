// Package config reads and validates the rsv-config.yml file that points the
// validator at a service's schema metadata and tunes how payloads are
// checked.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const RSVConfigFile = "rsv-config.yml"

const DefaultConfigContent = `# Redfish Service Validator Configuration

# SCHEMA METADATA
#
# The directory containing the CSDL (XML) schema documents describing the
# service's data model. Every .xml file in this directory is loaded into the
# schema catalog. Redfish schema bundles (DSP8010) unpack their CSDL files
# into a metadata directory of this shape.
metadataDir: "./SchemaFiles/metadata"

# Versioned schema documents are conventionally named <Resource>_v1.xml.
# Adjust this if your bundle uses a different suffix. The suffix must end in
# .xml, as only XML documents are loaded.
schemaSuffix: "_v1.xml"

# JSON SCHEMA CROSS-CHECK
#
# Redfish schema bundles also ship a JSON Schema rendition of the data model.
# Point this at that directory to enable 'rsv crosscheck', which validates
# payloads against the JSON Schema files as a second opinion.
# jsonSchemaPackDir: "./SchemaFiles/json-schema"

# LOGGING
#
# Detailed debug logs are written as JSON lines beneath this directory.
logDir: "./logs"

# STRICT MODE
#
# When true (the default), payload values that cannot be read as their
# declared types fail validation. Set false to record values as-is and only
# report unresolvable types.
strict: true
`

// Config is the validator configuration. Strict is a pointer so an omitted
// key keeps the strict default rather than reading as false.
type Config struct {
	MetadataDir       string `yaml:"metadataDir"`
	SchemaSuffix      string `yaml:"schemaSuffix"`
	JSONSchemaPackDir string `yaml:"jsonSchemaPackDir"`
	LogDir            string `yaml:"logDir"`
	Strict            *bool  `yaml:"strict"`
	Workers           int    `yaml:"workers"`
}

// Default returns the built-in configuration used when no rsv-config.yml is
// present.
func Default() *Config {
	return &Config{
		MetadataDir:  "./SchemaFiles/metadata",
		SchemaSuffix: "_v1.xml",
		LogDir:       "./logs",
	}
}

// New reads and validates the configuration file in the given directory.
func New(dir string) (*Config, error) {
	configPath := filepath.Join(dir, RSVConfigFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &MissingConfigError{Path: dir}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}

	if vErr := config.Validate(); vErr != nil {
		return nil, vErr
	}

	return &config, nil
}

// Load returns the directory's configuration when an rsv-config.yml is
// present, and the built-in defaults otherwise.
func Load(dir string) (*Config, error) {
	c, err := New(dir)
	if err != nil {
		var missing *MissingConfigError
		if errors.As(err, &missing) {
			return Default(), nil
		}
		return nil, err
	}
	return c, nil
}

// IsStrict reports the configured strict mode, defaulting to true when the
// key is omitted.
func (c *Config) IsStrict() bool {
	if c.Strict == nil {
		return true
	}
	return *c.Strict
}

// Validate checks the configuration, filling defaultable properties.
func (c *Config) Validate() error {
	if c.MetadataDir == "" {
		return &MissingPropertyError{Property: "metadataDir"}
	}

	if c.SchemaSuffix == "" {
		c.SchemaSuffix = "_v1.xml"
	}
	if !strings.HasSuffix(c.SchemaSuffix, ".xml") {
		return &InvalidSchemaSuffixError{Value: c.SchemaSuffix}
	}

	if c.Workers < 0 {
		return &InvalidWorkersError{Value: c.Workers}
	}

	return nil
}
