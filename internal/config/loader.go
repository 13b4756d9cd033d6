package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/leapstack-labs/sharplint/pkg/core"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "sharplint.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "sharplint.yml"

// MaxUpwardSearchLevels limits how far FindProjectRoot walks up.
const MaxUpwardSearchLevels = 10

// ProjectConfig is the part of sharplint.yaml that describes a project.
type ProjectConfig struct {
	Output  string          `koanf:"output" yaml:"output,omitempty"`
	Include []string        `koanf:"include" yaml:"include,omitempty"`
	Exclude []string        `koanf:"exclude" yaml:"exclude,omitempty"`
	Lint    core.LintConfig `koanf:"lint" yaml:"lint"`
	Fix     FixConfig       `koanf:"fix" yaml:"fix"`
	Cache   CacheConfig     `koanf:"cache" yaml:"cache"`
}

// FixConfig configures the fix command.
type FixConfig struct {
	Scope string `koanf:"scope" yaml:"scope,omitempty"`
}

// CacheConfig configures the lint result cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled" yaml:"enabled"`
	// Path is relative to the project root unless absolute.
	Path string `koanf:"path" yaml:"path,omitempty"`
}

// LoadFromDir loads a ProjectConfig from sharplint.yaml or sharplint.yml
// in dir. It returns nil, nil when neither exists.
func LoadFromDir(dir string) (*ProjectConfig, error) {
	path := FindConfigFile(dir)
	if path == "" {
		return nil, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg ProjectConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// FindConfigFile returns the config file in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir to the closest directory holding
// a config file. It returns "" when none is found within
// MaxUpwardSearchLevels.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for range MaxUpwardSearchLevels {
		if FindConfigFile(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
	return ""
}
