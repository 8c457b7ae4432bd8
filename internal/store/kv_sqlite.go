package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteKV keeps the key-value pairs in a single SQLite table.
// Each call opens and closes the database, so CLI and TUI processes can share a file.
type SQLiteKV struct {
	Path string
}

func (s Store) KV() SQLiteKV {
	return SQLiteKV{Path: s.sqlitePath()}
}

func (kv SQLiteKV) open(ctx context.Context) (*sql.DB, error) {
	path := strings.TrimSpace(kv.Path)
	if path == "" {
		return nil, errors.New("sqlite kv: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateKV(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateKV(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (kv SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := kv.open(ctx)
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// GetMany reads every key inside one read transaction, so a concurrent SetMany
// is seen entirely or not at all.
func (kv SQLiteKV) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	db, err := kv.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		var v string
		err := tx.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, k).Scan(&v)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (kv SQLiteKV) SetMany(ctx context.Context, pairs map[string]string) error {
	db, err := kv.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	nowMs := time.Now().UTC().UnixMilli()
	for k, v := range pairs {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`, k, v, nowMs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (kv SQLiteKV) Delete(ctx context.Context, key string) error {
	db, err := kv.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM kv WHERE k = ?`, key)
	return err
}
