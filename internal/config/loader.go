package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "sqlbuild.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "sqlbuild.yml"

// EnvPrefix is the prefix for environment variable overrides,
// e.g. SQLBUILD_SCRIPTS_DIR -> scripts_dir.
const EnvPrefix = "SQLBUILD_"

// findConfigFile finds the config file to use.
// Priority: explicit path > sqlbuild.yaml > sqlbuild.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// A missing config file is not an error; defaults apply.
func Load(cfgFile string, flags *pflag.FlagSet) (*ProjectConfig, error) {
	k := koanf.New(".")

	configFile := findConfigFile(cfgFile)
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// Environment overrides: SQLBUILD_SCRIPTS_DIR -> scripts_dir,
	// SQLBUILD_TARGET_TYPE -> target.type.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if rest, ok := strings.CutPrefix(key, "target_"); ok {
			return "target." + rest
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Flags have the highest priority; only explicitly set flags are loaded.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			switch f.Name {
			case "scripts-dir":
				return "scripts_dir", posflag.FlagVal(flags, f)
			case "target-type":
				return "target.type", posflag.FlagVal(flags, f)
			case "database":
				return "target.database", posflag.FlagVal(flags, f)
			case "verbose":
				return "verbose", posflag.FlagVal(flags, f)
			}
			return "", nil
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg ProjectConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ApplyDefaults()

	// Resolve the scripts directory relative to the config file's directory
	// so the tool behaves the same from any working directory.
	if configFile != "" && !filepath.IsAbs(cfg.ScriptsDir) {
		base := filepath.Dir(configFile)
		scriptsFlagSet := flags != nil && flags.Changed("scripts-dir")
		if base != "." && !scriptsFlagSet {
			cfg.ScriptsDir = filepath.Join(base, cfg.ScriptsDir)
		}
	}

	return &cfg, nil
}
