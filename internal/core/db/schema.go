package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nfrf/lightfeedback/internal/core/config"
	embeddedschema "github.com/nfrf/lightfeedback/migrations"
)

// EnsureSchema idempotently creates the three application relations and seeds
// the fixed project list. Detects driver type, selects the matching embedded
// dialect, and executes every statement inside one transaction scope. Safe to
// run on every process startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB, queries *Queries) error {
	var schemaFS embed.FS
	var schemaDir string

	switch driver := db.DriverName(); driver {
	case "sqlite3":
		schemaFS = embeddedschema.SqliteSchema
		schemaDir = "sqlite"
	case "postgres":
		schemaFS = embeddedschema.PostgresSchema
		schemaDir = "postgres"
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}

	statements, err := parseSchemaFiles(schemaFS, schemaDir)
	if err != nil {
		return fmt.Errorf("failed to parse schema files: %w", err)
	}

	return WithTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement failed: %w", err)
			}
		}
		return seedProjects(ctx, tx, queries)
	})
}

// parseSchemaFiles returns the individual DDL statements of a dialect in
// filename order. Files are split on semicolons because lib/pq does not
// support multiple statements in a single Exec.
func parseSchemaFiles(fsys embed.FS, dir string) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var statements []string
	for _, path := range files {
		content, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, stmt := range strings.Split(string(content), ";") {
			stmt = stripSQLComments(stmt)
			if stmt == "" {
				continue
			}
			statements = append(statements, stmt)
		}
	}
	return statements, nil
}

// stripSQLComments drops comment-only lines so a statement preceded by a
// comment block is still executed.
func stripSQLComments(stmt string) string {
	var kept []string
	for _, line := range strings.Split(stmt, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// seedProjects inserts the developer-controlled project list, keyed by each
// project's unique key so repeated startups never duplicate rows.
func seedProjects(ctx context.Context, tx *sqlx.Tx, queries *Queries) error {
	for _, p := range config.AllowedProjects {
		if _, err := queries.Exec(ctx, tx, "seed-project", p.Key, p.Name, p.Active); err != nil {
			return fmt.Errorf("seed project %s: %w", p.Key, err)
		}
	}
	return nil
}
