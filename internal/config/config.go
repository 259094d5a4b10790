package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for plandes.
// Values are populated from .plandes.yaml, PLANDES_* env vars, and CLI flags.
type Config struct {
	DBPath      string `mapstructure:"db_path"`
	TemplateDir string `mapstructure:"template_dir"`
	Role        string `mapstructure:"role"`
	Responsible string `mapstructure:"responsible"`
	NoColor     bool   `mapstructure:"no_color"`
	Verbose     bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}

	viper.SetDefault("db_path", filepath.Join(home, ".plandes", "plandes.db"))
	viper.SetDefault("template_dir", filepath.Join(home, ".plandes", "templates"))
	viper.SetDefault("role", "admin")
	viper.SetDefault("responsible", "")
	viper.SetDefault("no_color", false)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Init points viper at the config file and environment. It is safe to call
// when no config file exists; defaults apply.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".plandes")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PLANDES")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
