package postgres

import (
	"context"
	"fmt"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
	"log/slog"
	"testing"
	"testing/fstest"
)

type MigrateTestSuite struct {
	suite.Suite

	PgxMock pgxmock.PgxPoolIface
	Fs      fstest.MapFS
}

func (s *MigrateTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Fs = fstest.MapFS{
		"migration/000002_seed.up.sql":   {Data: []byte("INSERT INTO accounts (id) VALUES ('seed');")},
		"migration/000001_init.up.sql":   {Data: []byte("CREATE TABLE accounts (id TEXT PRIMARY KEY);")},
		"migration/000001_init.down.sql": {Data: []byte("DROP TABLE accounts;")},
	}

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *MigrateTestSuite) TearDownTest() {
	s.PgxMock.Close()
}

func TestMigrateTestSuite(t *testing.T) {
	suite.Run(t, new(MigrateTestSuite))
}

func (s *MigrateTestSuite) expectExists(version string, exists bool) {
	s.PgxMock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM schema_migrations WHERE version = \$1\)`).
		WithArgs(version).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func (s *MigrateTestSuite) TestMigrate() {
	s.PgxMock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))

	s.expectExists("000001_init", true)

	s.expectExists("000002_seed", false)
	s.PgxMock.ExpectBegin()
	s.PgxMock.ExpectExec("INSERT INTO accounts").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectExec("INSERT INTO schema_migrations").WithArgs("000002_seed").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectCommit()

	applied, err := Migrate(context.Background(), s.PgxMock, s.Fs, "migration")
	s.Require().NoError(err)
	s.Equal(1, applied)

	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *MigrateTestSuite) TestMigrateRollsBackFailedFile() {
	s.PgxMock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))

	s.expectExists("000001_init", false)
	s.PgxMock.ExpectBegin()
	s.PgxMock.ExpectExec("CREATE TABLE accounts").WillReturnError(fmt.Errorf("syntax error"))
	s.PgxMock.ExpectRollback()

	applied, err := Migrate(context.Background(), s.PgxMock, s.Fs, "migration")
	s.ErrorContains(err, "apply migration 000001_init")
	s.Zero(applied)

	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *MigrateTestSuite) TestMigrateSchemaTableError() {
	s.PgxMock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnError(fmt.Errorf("permission denied"))

	_, err := Migrate(context.Background(), s.PgxMock, s.Fs, "migration")
	s.ErrorContains(err, "permission denied")

	s.NoError(s.PgxMock.ExpectationsWereMet())
}
