package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	App         AppConfig         `toml:"app"`
	API         APIConfig         `toml:"api"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Geo         GeoConfig         `toml:"geo"`
}

// AppConfig contains display name and environment flag.
type AppConfig struct {
	Name        string `toml:"name"`
	Environment string `toml:"environment"`
}

// APIConfig contains backend REST API settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// CredentialsConfig contains provider-specific credentials.
type CredentialsConfig struct {
	Google GoogleConfig `toml:"google"`
	Maps   MapsConfig   `toml:"maps"`
}

// GoogleConfig contains Google OAuth client credentials.
type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// MapsConfig contains the map provider API key.
type MapsConfig struct {
	APIKey string `toml:"api_key"`
}

// DatabaseConfig contains session database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains OAuth callback server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// GeoConfig contains the fallback coordinate used when no device
// location is available.
type GeoConfig struct {
	DefaultLat float64 `toml:"default_lat"`
	DefaultLng float64 `toml:"default_lng"`
}

// IsDevelopment reports whether the environment flag is set to development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment != "production"
}

// LoadConfig reads and parses a TOML configuration file from the specified path,
// then applies HEILOCAL_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyEnvOverrides(&config)
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the
// embedded example config, with environment overrides applied.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	applyEnvOverrides(&config)
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidArgument)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvOverrides layers HEILOCAL_* environment variables over file values.
// The original deployment is environment-configured, so the env always wins.
func applyEnvOverrides(c *Config) {
	set := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set("HEILOCAL_APP_NAME", &c.App.Name)
	set("HEILOCAL_ENV", &c.App.Environment)
	set("HEILOCAL_API_BASE_URL", &c.API.BaseURL)
	set("HEILOCAL_GOOGLE_CLIENT_ID", &c.Credentials.Google.ClientID)
	set("HEILOCAL_GOOGLE_CLIENT_SECRET", &c.Credentials.Google.ClientSecret)
	set("HEILOCAL_GOOGLE_REDIRECT_URI", &c.Credentials.Google.RedirectURI)
	set("HEILOCAL_MAPS_API_KEY", &c.Credentials.Maps.APIKey)
	set("HEILOCAL_DB_PATH", &c.Database.Path)

	if v := os.Getenv("HEILOCAL_CALLBACK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}
