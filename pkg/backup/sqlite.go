package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLite backs up a database file with VACUUM INTO, which produces a
// consistent, compacted copy while the source stays readable.
type SQLite struct{}

// Backup implements Backend. name is the database file path.
func (SQLite) Backup(ctx context.Context, name, dir, stamp string) ([]string, error) {
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseMissing, name)
	}

	db, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", name, err)
	}
	defer func() { _ = db.Close() }()

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	dest := filepath.Join(dir, fmt.Sprintf("%s_%s.db", base, stamp))
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return nil, fmt.Errorf("failed to back up %s: %w", name, err)
	}
	return []string{dest}, nil
}
