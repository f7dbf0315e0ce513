//go:build integration

package database_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/suite"

	"bkap/internal/platform/database"
	"bkap/migrations"
	"bkap/pkg/testutil/containers"
)

type MigrationSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
}

func TestMigrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(MigrationSuite))
}

func (s *MigrationSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
}

func (s *MigrationSuite) TestReapplyingIsNoop() {
	ctx := context.Background()
	s.Require().NoError(database.ApplyMigrations(ctx, s.postgres.DB, migrations.FS))

	var versions []string
	rows, err := s.postgres.DB.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	s.Require().NoError(err)
	defer rows.Close()
	for rows.Next() {
		var v string
		s.Require().NoError(rows.Scan(&v))
		versions = append(versions, v)
	}
	s.Require().NoError(rows.Err())
	s.Contains(versions, "000001_options")
}

func (s *MigrationSuite) TestFailedMigrationIsNotRecorded() {
	ctx := context.Background()
	broken := fstest.MapFS{
		"900000_broken.up.sql": {Data: []byte("CREATE TABLE ( nope")},
	}

	err := database.ApplyMigrations(ctx, s.postgres.DB, broken)
	s.Require().ErrorContains(err, "migration 900000_broken")

	var n int
	s.Require().NoError(s.postgres.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = $1`, "900000_broken").Scan(&n))
	s.Zero(n)
}
