package store

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Engine identifies the relational backend behind the store
type Engine string

const (
	// EngineSQLite is a single file database with a single writer connection
	EngineSQLite Engine = "sqlite"
	// EnginePostgres is a PostgreSQL server reachable through a DSN
	EnginePostgres Engine = "postgres"
)

// Valid reports whether the engine is supported
func (e Engine) Valid() bool {
	return e == EngineSQLite || e == EnginePostgres
}

// SQLiteDSN builds the DSN of a SQLite database file with WAL journaling and a busy timeout
func SQLiteDSN(path string) string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// Open opens a gorm handle for the given engine. The handle is meant to be
// long-lived: open it once at startup and close it with Close at shutdown.
func Open(engine Engine, dsn string, logger gormlogger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch engine {
	case EngineSQLite:
		dialector = sqlite.Open(dsn)
	case EnginePostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database engine: %q", engine)
	}

	if logger == nil {
		logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger,
		// Every store operation opens its own explicit transaction
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", engine, err)
	}

	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// SQLite is always limited to a single open connection so that writers are serialized
// by the pool instead of failing with SQLITE_BUSY.
func ConfigureConnectionPool(db *gorm.DB, engine Engine, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if engine == EngineSQLite {
		maxOpenConns, maxIdleConns = 1, 1
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 30 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 30 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}
