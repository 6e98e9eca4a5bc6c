package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/token-tracker/internal/domain"
	"github.com/feral-file/token-tracker/internal/store"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"log_level"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Engine string `mapstructure:"engine"` // sqlite or postgres
	// Path is the SQLite database file
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Ignored for SQLite, which always uses one connection
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
	TxTimeout       time.Duration `mapstructure:"tx_timeout"`         // Deadline of every store operation
	RetryMaxElapsed time.Duration `mapstructure:"retry_max_elapsed"`  // Retry budget for lock contention errors
}

// SolanaConfig holds Solana RPC configuration
type SolanaConfig struct {
	RPCURL     string        `mapstructure:"rpc_url"`
	Commitment string        `mapstructure:"commitment"`
	Timeout    time.Duration `mapstructure:"timeout"`
	// RequestsPerSecond caps calls to the node, zero disables limiting
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// ChecksConfig holds the token authority policy
type ChecksConfig struct {
	AllowMintAuthority   bool `mapstructure:"allow_mint_authority"`
	AllowFreezeAuthority bool `mapstructure:"allow_freeze_authority"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// SweeperConfig holds configuration for the authority sweeper
type SweeperConfig struct {
	BatchSize     int           `mapstructure:"batch_size"`
	Interval      time.Duration `mapstructure:"interval"`
	RPCMaxElapsed time.Duration `mapstructure:"rpc_max_elapsed"`
	Worker        WorkerConfig  `mapstructure:"worker"`
}

// TrackerConfig holds configuration for the tracker program
type TrackerConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig `mapstructure:"database"`
	Solana       SolanaConfig   `mapstructure:"solana"`
	Checks       ChecksConfig   `mapstructure:"checks"`
	Sweeper      SweeperConfig  `mapstructure:"sweeper"`
	DenylistPath string         `mapstructure:"denylist_path"`
}

// LoadTrackerConfig loads configuration for the tracker program
func LoadTrackerConfig(configFile string, envPath string) (*TrackerConfig, error) {
	v := configureViper("tracker", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("database.engine", string(store.EngineSQLite))
	v.SetDefault("database.path", "data/tracker.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.tx_timeout", "5s")
	v.SetDefault("database.retry_max_elapsed", "2s")
	v.SetDefault("solana.commitment", domain.DEFAULT_COMMITMENT)
	v.SetDefault("solana.timeout", "10s")
	v.SetDefault("solana.requests_per_second", 0)
	v.SetDefault("solana.burst", 1)
	v.SetDefault("checks.allow_mint_authority", false)
	v.SetDefault("checks.allow_freeze_authority", false)
	v.SetDefault("sweeper.batch_size", 100)
	v.SetDefault("sweeper.interval", "5m")
	v.SetDefault("sweeper.rpc_max_elapsed", "30s")
	v.SetDefault("sweeper.worker.pool_size", 8)
	v.SetDefault("sweeper.worker.queue_size", 256)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg TrackerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the fields the selected engine and the sweeper depend on
func (c *TrackerConfig) Validate() error {
	switch store.Engine(c.Database.Engine) {
	case store.EngineSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path is required for the sqlite engine")
		}
	case store.EnginePostgres:
		if c.Database.Host == "" {
			return errors.New("database.host is required for the postgres engine")
		}
		if c.Database.DBName == "" {
			return errors.New("database.dbname is required for the postgres engine")
		}
	default:
		return fmt.Errorf("database.engine must be sqlite or postgres, got %q", c.Database.Engine)
	}

	if c.Database.TxTimeout < 0 {
		return errors.New("database.tx_timeout must not be negative")
	}
	if c.Solana.RequestsPerSecond < 0 {
		return errors.New("solana.requests_per_second must not be negative")
	}
	if c.Sweeper.BatchSize <= 0 {
		return errors.New("sweeper.batch_size must be positive")
	}
	if c.Sweeper.Worker.WorkerPoolSize <= 0 {
		return errors.New("sweeper.worker.pool_size must be positive")
	}

	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/tracker/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("TOKEN_TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"log_level",
		"sentry_dsn",
		"denylist_path",
		// Database
		"database.engine",
		"database.path",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"database.tx_timeout",
		"database.retry_max_elapsed",
		// Solana
		"solana.rpc_url",
		"solana.commitment",
		"solana.timeout",
		"solana.requests_per_second",
		"solana.burst",
		// Checks
		"checks.allow_mint_authority",
		"checks.allow_freeze_authority",
		// Sweeper
		"sweeper.batch_size",
		"sweeper.interval",
		"sweeper.rpc_max_elapsed",
		"sweeper.worker.pool_size",
		"sweeper.worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// DSN returns the database connection string for the configured engine
func (c *DatabaseConfig) DSN() string {
	if store.Engine(c.Engine) == store.EngineSQLite {
		return store.SQLiteDSN(c.Path)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
