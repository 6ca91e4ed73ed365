// Package config builds runtime settings from defaults, an optional YAML
// config file, environment variables and command line flags, in rising
// priority.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ledgerline/statement-extractor/internal/parser"
)

// Config holds all runtime settings.
type Config struct {
	OutputDir      string            `mapstructure:"output-dir"`
	RulesFile      string            `mapstructure:"rules-file"`
	ListenAddr     string            `mapstructure:"listen-addr"`
	CardOwners     map[string]string `mapstructure:"card-owners"`
	RevolutAccount string            `mapstructure:"revolut-account"`
	RevolutCard    string            `mapstructure:"revolut-card"`
}

// Load assembles the configuration. When cfgFile is empty, a
// statement-extractor.yaml in the working directory is used if present.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("output-dir", ".")
	v.SetDefault("listen-addr", ":3000")
	v.SetDefault("revolut-account", parser.DefaultRevolutAccount)
	v.SetDefault("revolut-card", parser.DefaultRevolutCard)

	v.SetEnvPrefix("STATEMENT_EXTRACTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("statement-extractor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// The default config file is optional.
		_ = v.ReadInConfig()
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
