package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/goran-ethernal/ReorgGuard/pkg/config"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

type decodeFunc func(data []byte, cfg *pkgconfig.Config) error

type format struct {
	name   string
	decode decodeFunc
}

var (
	yamlFormat = format{name: "YAML", decode: func(data []byte, cfg *pkgconfig.Config) error {
		return yaml.Unmarshal(data, cfg)
	}}
	jsonFormat = format{name: "JSON", decode: func(data []byte, cfg *pkgconfig.Config) error {
		return json.Unmarshal(data, cfg)
	}}
	tomlFormat = format{name: "TOML", decode: func(data []byte, cfg *pkgconfig.Config) error {
		return toml.Unmarshal(data, cfg)
	}}
)

// formats maps a config file extension to its decoder.
var formats = map[string]format{
	".yaml": yamlFormat,
	".yml":  yamlFormat,
	".json": jsonFormat,
	".toml": tomlFormat,
}

// LoadFromFile loads the configuration, choosing the decoder by file extension
// (.yaml, .yml, .json or .toml).
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))

	f, ok := formats[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %q (supported: .yaml, .yml, .json, .toml)", ext)
	}

	return load(path, f)
}

// LoadFromYAML loads configuration from a YAML file.
func LoadFromYAML(path string) (*pkgconfig.Config, error) {
	return load(path, yamlFormat)
}

// LoadFromJSON loads configuration from a JSON file.
func LoadFromJSON(path string) (*pkgconfig.Config, error) {
	return load(path, jsonFormat)
}

// LoadFromTOML loads configuration from a TOML file.
func LoadFromTOML(path string) (*pkgconfig.Config, error) {
	return load(path, tomlFormat)
}

// load decodes the file, applies defaults and validates the result.
func load(path string, f format) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &pkgconfig.Config{}
	if err := f.decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s config %s: %w", f.name, path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return cfg, nil
}

// JSONSchema returns the JSON schema describing the configuration file.
func JSONSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		FieldNameTag:               "json",
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.Reflect(&pkgconfig.Config{})
	schema.Title = "ReorgGuard configuration"

	return json.MarshalIndent(schema, "", "  ")
}
