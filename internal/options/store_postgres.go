package options

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bkap/internal/sentinel"
)

// PostgresStore persists options in the options table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed option store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, name string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT option_value FROM options WHERE option_name = $1`, name,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("get option %q: %w", name, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO options (option_name, option_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (option_name) DO UPDATE
		SET option_value = EXCLUDED.option_value, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("set option %q: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM options WHERE option_name = $1`, name); err != nil {
		return fmt.Errorf("delete option %q: %w", name, err)
	}
	return nil
}
