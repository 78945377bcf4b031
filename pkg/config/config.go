// Package config loads gqlcheck settings from defaults, a config file,
// GQLCHECK_ environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "GQLCHECK_"

// Default values.
const (
	DefaultSchema   = "schema.graphql"
	DefaultMaxDepth = 512
)

// FileNames are the config files Load looks for in the working directory,
// in order.
var FileNames = []string{".gqlcheck.yaml", ".gqlcheck.yml", ".gqlcheck.toml"}

// Config holds the settings of a gqlcheck run.
type Config struct {
	// Schema is the SDL file validated against. Empty selects schema
	// definition language mode: built-in directives only.
	Schema string `koanf:"schema"`
	// Format is the output format; empty picks one based on the terminal.
	Format string `koanf:"format"`
	// MaxDepth limits document nesting. Zero or less disables the limit.
	MaxDepth int `koanf:"max_depth"`
	// Rules selects rules by name; empty runs the default set.
	Rules []string `koanf:"rules"`
	// Directives is an SDL file whose directive definitions are added to
	// every validated document.
	Directives string `koanf:"directives"`
	Verbose    bool   `koanf:"verbose"`
	// Jobs bounds how many documents are validated at once.
	Jobs int `koanf:"jobs"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// Validate checks values that cannot be checked by the type system.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	for _, r := range c.Rules {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("rules must not contain empty names")
		}
	}
	return nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"schema":     DefaultSchema,
		"format":     "",
		"max_depth":  DefaultMaxDepth,
		"rules":      []string{},
		"directives": "",
		"verbose":    false,
		"jobs":       runtime.GOMAXPROCS(0),
	}
}

// findConfigFile returns explicit when set, otherwise the first of
// FileNames present in dir.
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return TOMLParser(), nil
	}
	return nil, fmt.Errorf("unsupported config file type %q", filepath.Ext(path))
}

// Load reads the configuration. cfgFile names an explicit config file; when
// empty the working directory is searched for FileNames. Only flags that
// were set on the command line override other sources.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	cwd, _ := os.Getwd()
	used := findConfigFile(cfgFile, cwd)
	if used != "" {
		parser, err := parserFor(used)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(used), parser); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: GQLCHECK_MAX_DEPTH -> max_depth, GQLCHECK_RULES is
	// comma separated.
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "rules" {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were set explicitly; kebab-case names map to snake_case keys.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
