package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable the loader reads.
const EnvPrefix = "STAYSUITE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced by tests and docs.
const (
	EnvAppEnv   = "STAYSUITE_APP_ENV"
	EnvLogLevel = "STAYSUITE_LOG_LEVEL"
	EnvDBDSN    = "STAYSUITE_DB_DSN"
	EnvSeed     = "STAYSUITE_SEED_SAMPLE_DATA"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Seed     SeedConfig
	Password PasswordConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STAYSUITE_APP_ENV" default:"development"`
	LogLevel     string `envconfig:"STAYSUITE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STAYSUITE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig describes the in-memory sqlite database backing the store.
// The default DSN keeps every connection attached to one shared in-memory
// database for the lifetime of the process.
type DBConfig struct {
	DSN string `envconfig:"STAYSUITE_DB_DSN" default:"file::memory:?cache=shared"`

	// MaxOpenConns stays at 1 so sqlite sees a single writer and every
	// store call remains atomic relative to every other store call.
	MaxOpenConns int `envconfig:"STAYSUITE_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns int `envconfig:"STAYSUITE_DB_MAX_IDLE_CONNS" default:"1"`
}

type SeedConfig struct {
	SampleData bool `envconfig:"STAYSUITE_SEED_SAMPLE_DATA" default:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STAYSUITE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STAYSUITE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STAYSUITE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STAYSUITE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STAYSUITE_ARGON_KEY_LEN" default:"32"`
}
