package sqliteutils

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"k8s.io/klog"
	_ "modernc.org/sqlite"
)

const defaultPath = "./jexpense.db"

// CreateSqliteClient opens (or creates) the sqlite database file and wraps
// it in a bun handle speaking the same upsert SQL as the postgres backend.
func CreateSqliteClient(path string) (*bun.DB, error) {
	if path == "" {
		path = defaultPath
	}

	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}

	klog.Infof("Opened sqlite database %s", path)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
