package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"ptjobs/internal/logging"
	"ptjobs/internal/store"
)

// EnvPrefix prefixes environment overrides, e.g. PTJOBS_API_BASE_URL.
const EnvPrefix = "PTJOBS"

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type OAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	Passphrase string `mapstructure:"passphrase"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds runtime wiring options for building the app.
type Config struct {
	Home    string        `mapstructure:"-"` // data directory, e.g. $HOME/.ptjobs
	API     APIConfig     `mapstructure:"api"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`

	HTTP     *http.Client          `mapstructure:"-"` // optional; built from API.Timeout when nil
	Registry prometheus.Registerer `mapstructure:"-"` // optional; nil disables client metrics
}

var defaults = map[string]any{
	"api.base_url":        "http://127.0.0.1:8000",
	"api.timeout":         15 * time.Second,
	"oauth.client_id":     "",
	"oauth.client_secret": "",
	"storage.backend":     store.BackendFile,
	"storage.passphrase":  "",
	"log.level":           "warn",
	"log.format":          "console",
}

// DefaultHome returns $HOME/.ptjobs.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".ptjobs"), nil
}

// LoadConfig reads configuration for home. An explicit file must exist;
// otherwise home/config.yaml is read when present. Environment variables
// override both, and defaults fill the rest.
func LoadConfig(home, file string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else if home != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(home)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Home = home
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: api.base_url %q must be an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("config: api.timeout must not be negative")
	}
	switch c.Storage.Backend {
	case store.BackendFile, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("config: storage.backend %q is not one of file, sqlite, memory", c.Storage.Backend)
	}
	if c.Storage.Backend != store.BackendMemory && c.Home == "" {
		return errors.New("config: a home directory is required for persistent storage")
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "text", "json", "":
	default:
		return fmt.Errorf("config: log.format %q is not one of console, json", c.Log.Format)
	}
	return logging.Validate(c.Log.Level)
}
