package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Mode selects how the backend origin is resolved
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

const (
	// DefaultProductionOrigin is used in production when no origin is configured
	DefaultProductionOrigin = "https://socialflow-ai.up.railway.app"

	// DefaultSameOrigin is where the development rewrite proxy listens
	DefaultSameOrigin = "http://localhost:3000"

	// DefaultProxyTarget is the local backend the rewrite proxy forwards /api/* to
	DefaultProxyTarget = "http://localhost:8000"
)

// Credential storage backends
const (
	CredentialsFile   = "file"
	CredentialsSQLite = "sqlite"
	CredentialsMemory = "memory"
)

// Config holds application configuration
type Config struct {
	Mode        Mode
	APIURL      string // Production backend origin; empty selects DefaultProductionOrigin
	SameOrigin  string // Origin addressed when the resolved base URL is empty
	Credentials string // file|sqlite|memory
	DataDir     string // Holds the token file or sqlite database
	LogDir      string
	Timeout     time.Duration
	Debug       bool

	// Development rewrite proxy
	ProxyListen string
	ProxyTarget string
}

// ParseMode parses a mode name; anything other than development is production
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return ModeDevelopment
	default:
		return ModeProduction
	}
}

// ResolveBaseURL returns the prefix for every API path.
// Development relies on a same-origin rewrite proxy and yields "".
func ResolveBaseURL(mode Mode, origin string) string {
	if mode == ModeDevelopment {
		return ""
	}
	if origin != "" {
		return strings.TrimRight(origin, "/")
	}
	return DefaultProductionOrigin
}

// BaseURL resolves the API base URL for this configuration
func (c Config) BaseURL() string {
	return ResolveBaseURL(c.Mode, c.APIURL)
}

// TokenPath is the file used by the file credential backend
func (c Config) TokenPath() string {
	return filepath.Join(c.DataDir, "auth.json")
}

// DBPath is the database used by the sqlite credential backend
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "socialflow.db")
}

// Load reads an optional .env file and SOCIALFLOW_* environment variables
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// A missing .env is normal
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvPrefix("SOCIALFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", string(ModeProduction))
	v.SetDefault("api_url", "")
	v.SetDefault("same_origin", DefaultSameOrigin)
	v.SetDefault("credentials", CredentialsFile)
	v.SetDefault("data_dir", ".socialflow")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("timeout", "30s")
	v.SetDefault("debug", false)
	v.SetDefault("proxy_listen", ":3000")
	v.SetDefault("proxy_target", DefaultProxyTarget)

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SOCIALFLOW_TIMEOUT: %w", err)
	}

	cfg := Config{
		Mode:        ParseMode(v.GetString("mode")),
		APIURL:      v.GetString("api_url"),
		SameOrigin:  v.GetString("same_origin"),
		Credentials: v.GetString("credentials"),
		DataDir:     v.GetString("data_dir"),
		LogDir:      v.GetString("log_dir"),
		Timeout:     timeout,
		Debug:       v.GetBool("debug"),
		ProxyListen: v.GetString("proxy_listen"),
		ProxyTarget: v.GetString("proxy_target"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that have a closed set of options
func (c Config) Validate() error {
	switch c.Credentials {
	case CredentialsFile, CredentialsSQLite, CredentialsMemory:
	default:
		return fmt.Errorf("unknown credential backend: %s", c.Credentials)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
