package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/complaint-map/internal/repository/sqlstore"
)

// TestDB represents a test database connection
type TestDB struct {
	DB      *sqlx.DB
	Dialect sqlstore.Dialect
	Logger  *zap.Logger
}

// Store wraps the connection for repository constructors
func (tdb *TestDB) Store() *sqlstore.DB {
	return sqlstore.NewDBForTest(tdb.DB, tdb.Dialect, tdb.Logger)
}

// SetupSQLite opens a fresh sqlite file inside t.TempDir
func SetupSQLite(t *testing.T) *TestDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "complaints.db")
	db, err := sqlx.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	db.SetMaxOpenConns(1)

	tdb := &TestDB{DB: db, Dialect: sqlstore.DialectSQLite, Logger: zap.NewNop()}
	t.Cleanup(tdb.Close)
	return tdb
}

// SetupPostgres connects to TEST_DB_* and skips the test when PostgreSQL is
// not reachable.
func SetupPostgres(t *testing.T) *TestDB {
	t.Helper()

	host := getEnv("TEST_DB_HOST", "localhost")
	port := getEnv("TEST_DB_PORT", "5433")
	user := getEnv("TEST_DB_USER", "postgres")
	password := getEnv("TEST_DB_PASSWORD", "postgres")
	dbname := getEnv("TEST_DB_NAME", "complaints_test")
	sslmode := getEnv("TEST_DB_SSLMODE", "disable")

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=2",
		host, port, user, password, dbname, sslmode,
	)

	var db *sqlx.DB
	var err error
	maxRetries := 3
	retryDelay := 200 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}
	if err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	if logger == nil {
		logger = zap.NewNop()
	}

	tdb := &TestDB{DB: db, Dialect: sqlstore.DialectPostgres, Logger: logger}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup removes complaint data, keeping the schema
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	for _, table := range []string{"complaint_votes", "complaints"} {
		if _, err := tdb.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			// table may not exist yet
			continue
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
