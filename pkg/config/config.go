package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the run settings resolved from config file, environment and
// flags, in increasing precedence.
type Config struct {
	Manifest    string `mapstructure:"manifest"`
	OutputPath  string `mapstructure:"output"`
	Split       bool   `mapstructure:"split"`
	SampleLimit int    `mapstructure:"sample_limit"`
	ListenAddr  string `mapstructure:"listen"`
}

// Build loads configuration from an optional YAML file, LEDGERU_* environment
// variables and the given flag set.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("sample_limit", 10)
	v.SetDefault("listen", ":8080")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ledgeru")
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional unless explicitly requested.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
