package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/extsrc-labs/extsrc/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	// SourcesFile is the default sources file name inside Dir.
	SourcesFile = "sources.json"
)

// Setting keys.
const (
	KeyStorage    = "storage"
	KeyLogLevel   = "log_level"
	KeySearchPath = "search_path"
)

// ErrUnknownKey is returned for a setting name outside Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Keys returns every setting name in display order.
func Keys() []string {
	return []string{KeyStorage, KeyLogLevel, KeySearchPath}
}

// CheckKey returns an error wrapping ErrUnknownKey unless key is a known
// setting.
func CheckKey(key string) error {
	for _, k := range Keys() {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("%w %q (known keys: storage, log_level, search_path)", ErrUnknownKey, key)
}

// Dir returns the config directory. EXTSRC_HOME overrides the default
// ~/.extsrc/.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.extsrc/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyStorage, filepath.Join(Dir(), SourcesFile))
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeySearchPath, "")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file. Unknown
// keys are rejected.
func Set(key, value string) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// StoragePath returns the sources file location, made absolute.
func StoragePath() string {
	p := Get(KeyStorage)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return Get(KeyLogLevel)
}

// SearchPathSeed returns the directories the search path starts with, in
// PATH form.
func SearchPathSeed() string {
	return Get(KeySearchPath)
}
