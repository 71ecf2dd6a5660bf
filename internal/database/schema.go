package database

import (
	"context"
	"embed"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/deppfellow/menu-service/internal/config"
)

// Embed the bootstrap schema for every supported driver at compile time,
// so the binary does not depend on the filesystem at runtime.
//
//go:embed schema/*.sql
var schemaFiles embed.FS

// SchemaColumns lists the columns each table must carry for the repositories to work.
var SchemaColumns = map[string][]string{
	"quotes":     {"id", "book", "quote", "created_at", "updated_at"},
	"sections":   {"id", "name", "aname", "created_at", "updated_at"},
	"categories": {"id", "section_id", "name", "aname", "img", "created_at", "updated_at"},
	"items":      {"id", "category_id", "name", "aname", "img", "price", "description", "adescription", "created_at", "updated_at"},
}

// schemaFile returns the embedded schema path for the driver.
func schemaFile(driver string) string {
	if driver == config.DriverPostgres {
		return "schema/postgres.sql"
	}
	return "schema/sqlite.sql"
}

// EnsureSchema creates every table and index that does not exist yet.
//
// Each statement is idempotent (IF NOT EXISTS), so running it on every
// start is safe. Existing data is never altered.
func (db *Database) EnsureSchema(ctx context.Context) error {
	raw, err := schemaFiles.ReadFile(schemaFile(db.Driver))
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	if err := db.VerifySchema(ctx); err != nil {
		return err
	}

	for _, stmt := range splitStatements(string(raw)) {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement %q: %w", firstLine(stmt), err)
		}
	}

	db.log.Debug().Str("driver", db.Driver).Msg("database schema is up to date")
	return nil
}

// VerifySchema checks that every existing table has the columns in
// SchemaColumns. Tables that do not exist yet are skipped. Names are
// compared case-insensitively, like SQL identifiers.
//
// CREATE TABLE IF NOT EXISTS leaves a table from an older layout untouched
// (for example categories with secId/IMG instead of section_id/img), so
// this fails startup with the missing columns named instead of letting
// every query fail later.
func (db *Database) VerifySchema(ctx context.Context) error {
	for _, table := range slices.Sorted(maps.Keys(SchemaColumns)) {
		found, err := db.tableColumns(ctx, table)
		if err != nil {
			return fmt.Errorf("reading columns of table %s: %w", table, err)
		}
		if len(found) == 0 {
			continue
		}

		var missing []string
		for _, column := range SchemaColumns[table] {
			if !slices.ContainsFunc(found, func(name string) bool { return strings.EqualFold(name, column) }) {
				missing = append(missing, column)
			}
		}

		if len(missing) > 0 {
			return fmt.Errorf(
				"table %s has an incompatible layout: missing columns [%s], found [%s]; migrate or remove the existing database",
				table, strings.Join(missing, ", "), strings.Join(found, ", "),
			)
		}
	}
	return nil
}

func (db *Database) tableColumns(ctx context.Context, table string) ([]string, error) {
	query := "SELECT name FROM pragma_table_info(?)"
	if db.Driver == config.DriverPostgres {
		query = db.DB.Rebind("SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?")
	}

	var columns []string
	if err := db.DB.SelectContext(ctx, &columns, query, table); err != nil {
		return nil, err
	}
	return columns, nil
}

// splitStatements splits a schema file on ";" and drops empty chunks.
// The schema files contain no string literals or triggers.
func splitStatements(script string) []string {
	var statements []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func firstLine(stmt string) string {
	line, _, _ := strings.Cut(stmt, "\n")
	return line
}
