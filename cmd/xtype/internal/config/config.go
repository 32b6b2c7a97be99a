// Package config resolves CLI settings from xtype.yaml, XTYPE_* environment
// variables and command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/xtype/pkg/catalog"
)

const (
	// FileName is the optional config file looked up in the working directory.
	FileName = "xtype.yaml"
	// EnvPrefix prefixes environment overrides, e.g. XTYPE_CATALOG.
	EnvPrefix = "XTYPE"
)

// Setting keys shared by the config file, the environment and flags.
const (
	KeyCatalog = "catalog"
	KeyStrict  = "strict"
	KeyVerbose = "verbose"
	KeyScope   = "scope"
)

// Config represents the optional xtype.yaml configuration.
type Config struct {
	Catalog string `yaml:"catalog,omitempty"`
	Strict  *bool  `yaml:"strict,omitempty"`
	Verbose *bool  `yaml:"verbose,omitempty"`
	Scope   string `yaml:"scope,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// File is the config file that was read, or empty.
	File    string
	Catalog string
	Strict  bool
	Verbose bool
	Scope   string
}

// Load reads and strictly decodes the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional reads xtype.yaml in dir if present.
func LoadOptional(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

// Defaults registers the built-in defaults on v.
func Defaults(v *viper.Viper) {
	v.SetDefault(KeyCatalog, "svg")
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyScope, "")
}

// Resolve merges, from lowest to highest priority, the built-in defaults, the
// config file, XTYPE_* environment variables and any flags already bound on
// v. An empty file means xtype.yaml in dir, which may be absent; a named file
// must exist.
func Resolve(v *viper.Viper, dir, file string) (*Resolved, error) {
	var (
		cfg  *Config
		used string
		err  error
	)
	if file != "" {
		cfg, err = Load(file)
		used = file
	} else {
		cfg, used, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}

	Defaults(v)
	if err := v.MergeConfigMap(cfg.settings()); err != nil {
		return nil, fmt.Errorf("failed to merge %s: %w", used, err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	r := &Resolved{
		File:    used,
		Catalog: strings.ToLower(strings.TrimSpace(v.GetString(KeyCatalog))),
		Strict:  v.GetBool(KeyStrict),
		Verbose: v.GetBool(KeyVerbose),
		Scope:   strings.TrimSpace(v.GetString(KeyScope)),
	}
	if _, ok := catalog.Named(r.Catalog); !ok {
		return nil, fmt.Errorf("unknown catalog %q (want one of %s)", r.Catalog, strings.Join(catalog.Names(), ", "))
	}
	return r, nil
}

// settings returns the keys set in the file.
func (c *Config) settings() map[string]any {
	out := make(map[string]any)
	if c.Catalog != "" {
		out[KeyCatalog] = c.Catalog
	}
	if c.Strict != nil {
		out[KeyStrict] = *c.Strict
	}
	if c.Verbose != nil {
		out[KeyVerbose] = *c.Verbose
	}
	if c.Scope != "" {
		out[KeyScope] = c.Scope
	}
	return out
}
