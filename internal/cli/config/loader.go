package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/leapstack-labs/sharplint/internal/config"
)

// EnvPrefix starts every environment variable the loader reads. A double
// underscore separates nested keys: SHARPLINT_FIX__SCOPE sets fix.scope.
const EnvPrefix = "SHARPLINT_"

var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// flagKeys maps flag names to config keys. Flags not listed are command
// options and are not part of the configuration.
var flagKeys = map[string]string{
	"verbose": "verbose",
	"output":  "output",
	"include": "include",
	"exclude": "exclude",
	"scope":   "fix.scope",
}

// ResetConfig resets the loader state. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// projectRoot determines the directory relative paths are anchored to.
// Priority: --project-dir, the directory of an explicit config file, the
// closest ancestor of the working directory holding a config file, the
// working directory.
func projectRoot(cfgFile string, flags *pflag.FlagSet) string {
	if flags != nil && flags.Changed("project-dir") {
		if dir, _ := flags.GetString("project-dir"); dir != "" {
			if abs, err := filepath.Abs(dir); err == nil {
				return abs
			}
			return filepath.Clean(dir)
		}
	}
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}
	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := intconfig.FindProjectRoot(cwd); root != "" {
		return root
	}
	return cwd
}

// LoadConfig loads configuration from defaults, cfgFile (or the project's
// sharplint.yaml), the environment and the changed flags in flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	root := projectRoot(cfgFile, flags)

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"verbose":       false,
		"output":        intconfig.DefaultOutput,
		"exclude":       intconfig.DefaultExclude,
		"fix.scope":     string(intconfig.DefaultScope),
		"cache.enabled": false,
		"cache.path":    intconfig.DefaultCachePath,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		cfgFile = intconfig.FindConfigFile(root)
	}
	configFileUsed = cfgFile
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment: SHARPLINT_LINT__DISABLED -> lint.disabled
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = root
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// listKeys are the keys whose environment values are comma-separated lists.
var listKeys = map[string]bool{
	"include":       true,
	"exclude":       true,
	"lint.disabled": true,
}

// envValue maps SHARPLINT_A__B to the key a.b and splits list values.
func envValue(name, value string) (string, any) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "__", ".")
	if !listKeys[key] {
		return key, value
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the configuration of the last successful
// LoadConfig, or nil.
func GetCurrentConfig() *Config {
	return currentConfig
}
