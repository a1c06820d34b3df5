package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"oncampus/internal/storage"
)

// Entry is one key-value row.
type Entry struct {
	bun.BaseModel `bun:"table:kv_entries"`

	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type DB struct {
	Bun *bun.DB
}

// OpenSQLite opens a SQLite database through the sqliteshim driver.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	sqldb.SetMaxOpenConns(1)

	if err := sqldb.Ping(); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// OpenPostgres opens a PostgreSQL database through lib/pq.
func OpenPostgres(dsn string) (*bun.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn not set")
	}
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// Migrate creates the kv_entries table if it does not exist.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.Bun.NewCreateTable().Model((*Entry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("create table kv_entries: %w", err)
	}
	return nil
}

func (d *DB) Get(ctx context.Context, key string) (string, error) {
	var entry Entry
	err := d.Bun.NewSelect().
		Model(&entry).
		Where("? = ?", bun.Ident("key"), key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select %s: %w", key, err)
	}
	return entry.Value, nil
}

func (d *DB) Set(ctx context.Context, key, value string) error {
	entry := &Entry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := d.Bun.NewInsert().
		Model(entry).
		On(`CONFLICT ("key") DO UPDATE`).
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
