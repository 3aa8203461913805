package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// Column describes one column of an introspected table.
type Column struct {
	Name string `db:"name"`
	Type string `db:"type"`
}

// Queries provides access to named SQL queries loaded from embedded .sql files.
// Uses dotsql for named query management and sqlx for database operations.
type Queries struct {
	dot     *dotsql.DotSql
	db      *sqlx.DB
	dialect string
}

// LoadQueries loads all .sql files from embedded filesystem and returns Queries instance.
// Named queries are stored per dialect ("sqlite-list-tables", "postgres-list-tables")
// and looked up through the connection's driver.
func LoadQueries(db *sqlx.DB) (*Queries, error) {
	var dialect string
	switch db.DriverName() {
	case "sqlite3":
		dialect = "sqlite"
	case "postgres":
		dialect = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", db.DriverName())
	}

	var combinedSQL string

	err := fs.WalkDir(queriesFS, "queries", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}

		content, err := queriesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		combinedSQL += string(content) + "\n"
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to load query files: %w", err)
	}

	dot, err := dotsql.LoadFromString(combinedSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}

	return &Queries{dot: dot, db: db, dialect: dialect}, nil
}

// ListTables returns the user tables of the connected database, sorted by name.
func (q *Queries) ListTables(ctx context.Context) ([]string, error) {
	var tables []string
	if err := q.Select(ctx, "list-tables", &tables); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// ListColumns returns the columns of table in declaration order.
func (q *Queries) ListColumns(ctx context.Context, table string) ([]Column, error) {
	var columns []Column
	if err := q.Select(ctx, "list-columns", &columns, table); err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	return columns, nil
}

// Select retrieves multiple rows into dest slice using the dialect's named query.
// Uses sqlx Rebind to convert ? placeholders to $1, $2 for PostgreSQL.
func (q *Queries) Select(ctx context.Context, name string, dest interface{}, args ...interface{}) error {
	query, err := q.dot.Raw(q.dialect + "-" + name)
	if err != nil {
		return fmt.Errorf("query not found: %s-%s", q.dialect, name)
	}
	return q.db.SelectContext(ctx, dest, q.db.Rebind(query), args...)
}
