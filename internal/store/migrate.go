package store

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/feral-file/token-tracker/internal/domain"
	"github.com/feral-file/token-tracker/internal/store/schema"
)

//go:embed sql/*.sql
var ddlFS embed.FS

// schemaStatements returns the DDL statements for engine in file order
func schemaStatements(engine Engine) ([]string, error) {
	raw, err := ddlFS.ReadFile(fmt.Sprintf("sql/%s.sql", engine))
	if err != nil {
		return nil, fmt.Errorf("no schema for engine %q: %w", engine, err)
	}

	var statements []string
	for _, stmt := range strings.Split(string(raw), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements, nil
}

// EnsureSchema creates the tokens and creator_reputation tables when absent.
// It is idempotent and returns a *domain.SchemaError on failure.
func EnsureSchema(ctx context.Context, db *gorm.DB, engine Engine) error {
	statements, err := schemaStatements(engine)
	if err != nil {
		return &domain.SchemaError{Err: err}
	}

	conn := db.WithContext(ctx)
	for _, stmt := range statements {
		if err := conn.Exec(stmt).Error; err != nil {
			return &domain.SchemaError{Err: fmt.Errorf("failed to execute %q: %w", firstLine(stmt), err)}
		}
	}

	migrator := conn.Migrator()
	for _, table := range []string{schema.Token{}.TableName(), schema.CreatorReputation{}.TableName()} {
		if !migrator.HasTable(table) {
			return &domain.SchemaError{Table: table, Err: fmt.Errorf("table %s missing after creation", table)}
		}
	}

	return nil
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
