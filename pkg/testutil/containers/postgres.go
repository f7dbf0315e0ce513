//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"bkap/internal/platform/database"
	"bkap/migrations"
)

const postgresImage = "postgres:18-alpine"

// PostgresContainer is a migrated Postgres database.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
	DB        *sql.DB
}

func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	c, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("bkap"),
		postgres.WithUsername("bkap"),
		postgres.WithPassword("bkap"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	pc := &PostgresContainer{Container: c}
	fail := func(format string, args ...any) {
		if pc.DB != nil {
			_ = pc.DB.Close()
		}
		_ = c.Terminate(ctx)
		t.Fatalf(format, args...)
	}

	if pc.DSN, err = c.ConnectionString(ctx, "sslmode=disable"); err != nil {
		fail("postgres dsn: %v", err)
	}
	if pc.DB, err = sql.Open("pgx", pc.DSN); err != nil {
		fail("open postgres: %v", err)
	}
	if err := database.ApplyMigrations(ctx, pc.DB, migrations.FS); err != nil {
		fail("migrate postgres: %v", err)
	}
	return pc
}

// TruncateAll empties the application tables. Migration bookkeeping is kept.
func (p *PostgresContainer) TruncateAll(ctx context.Context) error {
	tables := []string{"options"}
	if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+strings.Join(tables, ", ")); err != nil {
		return fmt.Errorf("truncate %v: %w", tables, err)
	}
	return nil
}
