package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DatabaseURL     string   `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32    `mapstructure:"DB_MIN_CONNS"`
	FHIRBaseURL     string   `mapstructure:"FHIR_BASE_URL"`
	FHIRTimeoutMS   int      `mapstructure:"FHIR_TIMEOUT_MS"`
	SchemaDir       string   `mapstructure:"SCHEMA_DIR"`
	MigrationsDir   string   `mapstructure:"MIGRATIONS_DIR"`
	DistributorName string   `mapstructure:"DISTRIBUTOR_NAME"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS    float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int      `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout  int      `mapstructure:"REQUEST_TIMEOUT_SEC"`
	BodyLimit       string   `mapstructure:"BODY_LIMIT"`
	ResolveLimit    string   `mapstructure:"RESOLVE_BODY_LIMIT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("FHIR_TIMEOUT_MS", 3000)
	v.SetDefault("SCHEMA_DIR", "schemas")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("DISTRIBUTOR_NAME", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT_SEC", 30)
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("RESOLVE_BODY_LIMIT", "10M")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("FHIR_BASE_URL")
	v.BindEnv("FHIR_TIMEOUT_MS")
	v.BindEnv("SCHEMA_DIR")
	v.BindEnv("MIGRATIONS_DIR")
	v.BindEnv("DISTRIBUTOR_NAME")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("REQUEST_TIMEOUT_SEC")
	v.BindEnv("BODY_LIMIT")
	v.BindEnv("RESOLVE_BODY_LIMIT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// FHIRTimeout returns the external-record lookup timeout as a duration.
func (c *Config) FHIRTimeout() time.Duration {
	return time.Duration(c.FHIRTimeoutMS) * time.Millisecond
}

// UsesDatabase reports whether schemas are served from postgres.
// Without a DATABASE_URL the server falls back to the YAML schema
// directory, which is read-only.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// Validate checks that the configuration is safe to run. Schemas must
// come from somewhere: either a database or a schema directory. In
// production a database is required so that mapping confirmations can
// be persisted.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" && c.SchemaDir == "" {
		return fmt.Errorf("either DATABASE_URL or SCHEMA_DIR must be set")
	}
	if c.IsProduction() && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required in production")
	}
	if c.FHIRTimeoutMS <= 0 {
		return fmt.Errorf("FHIR_TIMEOUT_MS must be positive, got %d", c.FHIRTimeoutMS)
	}
	if c.DBMaxConns < c.DBMinConns {
		return fmt.Errorf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", c.DBMaxConns, c.DBMinConns)
	}
	return nil
}
