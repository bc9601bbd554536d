package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Supported SQL dialects.
const (
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite"
)

var ErrUnsupportedDialect = errors.New("unsupported sql dialect")

type dialect struct {
	schema string
	upsert string
}

var dialects = map[string]dialect{
	DialectMySQL: {
		schema: `
	CREATE TABLE IF NOT EXISTS collections (
		name       VARCHAR(64) NOT NULL PRIMARY KEY,
		data       LONGBLOB    NOT NULL,
		updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
		upsert: `
	INSERT INTO collections (name, data) VALUES (?, ?)
	ON DUPLICATE KEY UPDATE data = VALUES(data)`,
	},
	DialectSQLite: {
		schema: `
	CREATE TABLE IF NOT EXISTS collections (
		name       TEXT     NOT NULL PRIMARY KEY,
		data       BLOB     NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
		upsert: `
	INSERT INTO collections (name, data) VALUES (?, ?)
	ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
	},
}

// NewDB opens a connection pool for the given dialect and DSN.
func NewDB(driver, dsn string) (*sql.DB, error) {
	if _, ok := dialects[driver]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DialectMySQL:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	case DialectSQLite:
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

// SQLStore keeps each collection as one row of the collections table.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// NewSQLStore creates the collections table if it does not exist.
func NewSQLStore(ctx context.Context, db *sql.DB, driver string) (*SQLStore, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, driver)
	}

	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		return nil, fmt.Errorf("create collections table: %w", err)
	}
	slog.Debug("collections table ready", "dialect", driver)

	return &SQLStore{db: db, dialect: d}, nil
}

func (s *SQLStore) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE name = ?`, collection).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("query collection %s: %w", collection, err)
	}
	return data, nil
}

func (s *SQLStore) Save(ctx context.Context, collection string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, collection, data); err != nil {
		return fmt.Errorf("upsert collection %s: %w", collection, err)
	}
	return nil
}
