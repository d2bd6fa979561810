// Command db_backup is the Database Backup tool.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"toolkit/pkg/backup"
	"toolkit/pkg/toolio"
)

func main() {
	// Optional; connection settings may already be in the environment.
	_ = godotenv.Load()

	toolio.Main(func(ctx context.Context, req backup.Request, streams toolio.IO) error {
		svc := backup.NewService(streams, map[string]backup.Backend{
			"sqlite":   backup.SQLite{},
			"postgres": backup.Postgres{ConnString: os.Getenv(backup.EnvDatabaseURL)},
		})
		_, err := svc.Run(ctx, req)
		return err
	})
}
