package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresKV stores documents in a single app_state(key, value) table.
// The relational engine is used purely as a durable key-value backend; the
// application never queries inside the documents.
type PostgresKV struct {
	db *sql.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV { return &PostgresKV{db: db} }

// OpenPostgresKV connects with lib/pq and ensures the app_state table exists.
func OpenPostgresKV(host string, port int, user, password, dbname, sslmode string) (*PostgresKV, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	kv := NewPostgresKV(db)
	if err := kv.ensureTable(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func (p *PostgresKV) ensureTable(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS app_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	return err
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrMiss
		}
		return "", err
	}
	return value, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value string) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	return err
}

func (p *PostgresKV) Del(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = $1`, key)
	return err
}

func (p *PostgresKV) Close() error { return p.db.Close() }
