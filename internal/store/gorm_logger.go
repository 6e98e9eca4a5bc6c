package store

import (
	"fmt"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/feral-file/token-tracker/internal/logger"
)

// zapGormWriter routes gorm's log lines into the global zap logger
type zapGormWriter struct{}

func (zapGormWriter) Printf(format string, args ...interface{}) {
	logger.Named("gorm").Debug(fmt.Sprintf(format, args...))
}

// NewGormLogger returns a gorm logger backed by zap. Debug mode traces every statement,
// otherwise only slow queries and errors are reported.
func NewGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	return gormlogger.New(zapGormWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
