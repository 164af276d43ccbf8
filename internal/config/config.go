package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all mocotch settings
type Config struct {
	// ProjectsDir is the directory every project lives in, one per subdirectory
	ProjectsDir string `mapstructure:"projects_dir"`
	// DefaultBranch is the branch projects track when none is given
	DefaultBranch string `mapstructure:"default_branch"`
	// InitialBranch is the branch HEAD points at in a freshly initialized repository
	InitialBranch string    `mapstructure:"initial_branch"`
	Log           LogConfig `mapstructure:"log"`
}

// LogConfig controls console verbosity and the rotating log file
type LogConfig struct {
	File       string `mapstructure:"file"`
	Debug      bool   `mapstructure:"debug"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	return &Config{
		ProjectsDir:   "./projects",
		DefaultBranch: "develop",
		InitialBranch: "main",
		Log: LogConfig{
			MaxSize:    1,
			MaxBackups: 2,
			MaxAge:     30,
		},
	}
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("projects_dir", defaults.ProjectsDir)
	v.SetDefault("default_branch", defaults.DefaultBranch)
	v.SetDefault("initial_branch", defaults.InitialBranch)

	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.debug", defaults.Log.Debug)
	v.SetDefault("log.max_size", defaults.Log.MaxSize)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age", defaults.Log.MaxAge)
}

// New returns a viper instance with defaults and environment binding set up.
// cfgFile, when non-empty, is read instead of the default config locations.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix("MOCOTCH")
	// e.g., MOCOTCH_LOG_MAX_SIZE for log.max_size
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the config file into v. A missing file in the default location
// is not an error; an explicitly given file must exist.
func Read(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}
	return err
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mocotch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mocotch"
	}
	return filepath.Join(home, ".config", "mocotch")
}

// ConfigFile returns the path to the default config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
