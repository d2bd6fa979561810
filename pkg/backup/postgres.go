package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
)

// EnvDatabaseURL overrides the postgres connection string.
const EnvDatabaseURL = "DATABASE_URL"

// Postgres exports every table of the public schema as CSV through COPY.
type Postgres struct {
	// ConnString is used when set. Otherwise the database name is combined
	// with the standard PG* environment variables.
	ConnString string
}

// Backup implements Backend. Each table becomes <table>.csv inside a
// <name>_<stamp> directory.
func (p Postgres) Backup(ctx context.Context, name, dir, stamp string) ([]string, error) {
	connString := p.ConnString
	if connString == "" {
		connString = fmt.Sprintf("dbname=%s", quoteConnValue(name))
	}

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres database %s: %w", name, err)
	}
	defer func() { _ = conn.Close(context.Background()) }()

	tables, err := publicTables(ctx, conn)
	if err != nil {
		return nil, err
	}

	outDir := filepath.Join(dir, fmt.Sprintf("%s_%s", filepath.Base(name), stamp))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	files := make([]string, 0, len(tables))
	for _, table := range tables {
		path := filepath.Join(outDir, table+".csv")
		if err := copyTable(ctx, conn, table, path); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

func publicTables(ctx context.Context, conn *pgx.Conn) ([]string, error) {
	rows, err := conn.Query(ctx,
		`SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname = 'public' ORDER BY tablename`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

func copyTable(ctx context.Context, conn *pgx.Conn, table, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	query := fmt.Sprintf("COPY %s TO STDOUT WITH (FORMAT csv, HEADER)", pgx.Identifier{"public", table}.Sanitize())
	if _, err := conn.PgConn().CopyTo(ctx, f, query); err != nil {
		return fmt.Errorf("failed to export table %s: %w", table, err)
	}
	return nil
}

// quoteConnValue quotes a keyword/value connection string value.
func quoteConnValue(v string) string {
	out := []byte{'\''}
	for i := 0; i < len(v); i++ {
		if v[i] == '\'' || v[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, v[i])
	}
	return string(append(out, '\''))
}
