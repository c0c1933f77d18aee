// Package config loads nush settings. Values are layered, lowest first:
// defaults, config.yaml, .env, NUSH_* environment variables, then any
// command-line flags bound to the viper instance.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	ConfigurationName = "config.yaml"
	DotEnvName        = ".env"
	EnvPrefix         = "NUSH"
)

// Configuration holds the resolved settings.
type Configuration struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error fatal"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	HistoryFile string `mapstructure:"history_file" yaml:"history_file"`
	Root        string `mapstructure:"root" yaml:"root" validate:"required"`
	Plain       bool   `mapstructure:"plain" yaml:"plain"`
	JSON        bool   `mapstructure:"json" yaml:"json"`
	TestMode    bool   `mapstructure:"test_mode" yaml:"test_mode"`
	NoPrelude   bool   `mapstructure:"no_prelude" yaml:"no_prelude"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})
	return validate.Struct(c)
}

// SetDefaults registers every key so that environment variables are seen
// when unmarshalling.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("history_file", "")
	v.SetDefault("root", "")
	v.SetDefault("plain", false)
	v.SetDefault("json", false)
	v.SetDefault("test_mode", false)
	v.SetDefault("no_prelude", false)
}

// Load reads configuration from dir on fs into v and returns the validated
// result. Missing files are not an error.
func Load(v *viper.Viper, fs afero.Fs, dir string) (*Configuration, error) {
	SetDefaults(v)
	v.SetFs(fs)
	v.SetConfigType("yaml")

	configPath := filepath.Join(dir, ConfigurationName)
	if exists, _ := afero.Exists(fs, configPath); exists {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}
	}

	if err := mergeDotEnv(v, fs, filepath.Join(dir, DotEnvName)); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if cfg.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg.Root = wd
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// mergeDotEnv layers NUSH_* entries of a .env file over config.yaml.
func mergeDotEnv(v *viper.Viper, fs afero.Fs, envPath string) error {
	data, err := afero.ReadFile(fs, envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read .env file %s: %w", envPath, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", envPath, err)
	}

	values := make(map[string]any)
	for key, value := range envMap {
		if !strings.HasPrefix(key, EnvPrefix+"_") {
			continue
		}
		values[strings.ToLower(strings.TrimPrefix(key, EnvPrefix+"_"))] = value
	}
	if len(values) == 0 {
		return nil
	}
	return v.MergeConfigMap(values)
}
