//go:build integration
// +build integration

package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	host := envOrDefault("POSTGRES_HOST", "127.0.0.1")
	port := envOrDefault("POSTGRES_PORT", "5432")
	user := envOrDefault("POSTGRES_USER", "postgres")
	password := envOrDefault("POSTGRES_PASSWORD", "postgres")
	database := envOrDefault("POSTGRES_TEST_DATABASE", envOrDefault("POSTGRES_DATABASE", "focusquest")+"_test")

	adminDB, err := sqlx.Connect("postgres", postgresDSN(user, password, host, port, "postgres"))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to postgres: %v", err)
	}
	s.adminDB = adminDB

	var exists bool
	s.Require().NoError(s.adminDB.Get(&exists, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", database))
	if !exists {
		_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE %q", database))
		s.Require().NoError(err)
	}

	db, err := sqlx.Connect("postgres", postgresDSN(user, password, host, port, database))
	s.Require().NoError(err)
	s.DB = db
	s.testDBName = database
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	// Drop test database to keep local environment clean after integration runs.
	if s.adminDB != nil && s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(
			"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()",
			s.testDBName,
		)
		s.Require().NoError(err)
		_, err = s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %q", s.testDBName))
		s.Require().NoError(err)
	}

	if s.adminDB != nil {
		s.Require().NoError(s.adminDB.Close())
	}
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	applyTestMigrations(s.T(), s.DB)
}

func applyTestMigrations(t *testing.T, db *sqlx.DB) {
	t.Helper()

	_, err := db.Exec(`
DROP TRIGGER IF EXISTS tasks_notify ON tasks;
DROP FUNCTION IF EXISTS notify_task_change();
DROP TABLE IF EXISTS pomodoro_sessions;
DROP TABLE IF EXISTS rewards;
DROP TABLE IF EXISTS tasks;
`)
	require.NoError(t, err)

	dir := filepath.Join(projectRoot(t), "db", "migrations")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, readErr := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, readErr)
		_, execErr := db.Exec(string(content))
		require.NoError(t, execErr)
	}
}

func projectRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "..", ".."))
}

func postgresDSN(user, password, host, port, database string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, database)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
