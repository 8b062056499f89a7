package testutils

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"

	// postgres driver
	_ "github.com/lib/pq"
	// sqlite driver
	_ "modernc.org/sqlite"
)

// ConnectPQ connects to a postgres database for testing purposes, configured through YAGMOD_TEST_PQ_* env vars
func ConnectPQ() (*sqlx.DB, error) {
	host := os.Getenv("YAGMOD_TEST_PQ_HOST")
	if host == "" {
		host = "localhost"
	}
	user := os.Getenv("YAGMOD_TEST_PQ_USER")
	if user == "" {
		user = "yagmod_test"
	}

	dbPassword := os.Getenv("YAGMOD_TEST_PQ_PASSWORD")
	sslMode := os.Getenv("YAGMOD_TEST_PQ_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dbName := os.Getenv("YAGMOD_TEST_PQ_DB")
	if dbName == "" {
		dbName = "yagmod_test"
	}

	if !strings.Contains(dbName, "test") {
		panic("Test database name has to contain 'test', this is a safety measure to protect against running tests on production systems.")
	}

	connStr := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=%s password='%s'", host, user, dbName, sslMode, dbPassword)
	return sqlx.Connect("postgres", connStr)
}

var sqliteCounter int64

// OpenSQLite returns a fresh in-memory sqlite database that lives until the test finishes.
//
// Every call gets its own database, the shared cache keeps it alive for as long as the pool has a connection.
func OpenSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared&_pragma=busy_timeout(5000)", name, atomic.AddInt64(&sqliteCounter, 1))

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("OpenSQLite: sqlx.Open: %v", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("OpenSQLite: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// InitTables will drop the provided tables and initialize the new ones
func InitTables(db *sqlx.DB, dropTables []string, initQueries []string) error {
	for _, v := range dropTables {
		_, err := db.Exec("DROP TABLE IF EXISTS " + v)
		if err != nil {
			return err
		}
	}

	for _, v := range initQueries {
		_, err := db.Exec(v)
		if err != nil {
			return err
		}
	}

	return nil
}

// ClearTables deletes all rows from a table, and panics if an error occurs
// usefull for defers for test cleanup
func ClearTables(db *sqlx.DB, tables ...string) {
	for _, v := range tables {
		_, err := db.Exec("DELETE FROM " + v + ";")
		if err != nil {
			panic(err)
		}
	}
}
