package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/cenkalti/backoff"
	"github.com/jmoiron/sqlx"

	// postgres driver
	_ "github.com/lib/pq"
	// sqlite driver, registers as "sqlite"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// OpenDB opens and pings the database, it's meant to be called once at startup and the handle
// passed to whatever needs it.
//
// For sqlite the dsn is a file path, the connection gets WAL, a busy timeout and a single open
// connection so writes are serialized by the pool.
func OpenDB(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		if !strings.HasPrefix(dsn, "file:") {
			if dir := filepath.Dir(dsn); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, errors.WithMessage(err, "mkdir db dir")
				}
			}

			dsn = SQLiteDSN(dsn, "")
		}
	default:
		return nil, errors.Errorf("unknown database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.WithMessage(err, "sqlx.Open")
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	err = backoff.Retry(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		err := db.PingContext(pingCtx)
		if err != nil {
			logger.WithError(err).Warn("Database ping failed, retrying")
		}
		return err
	}, backoff.WithContext(connectBackoff(), ctx))
	if err != nil {
		db.Close()
		return nil, errors.WithMessage(err, "db ping")
	}

	logger.WithField("driver", driver).Info("Connected to database")
	return db, nil
}

// retries the startup ping while the database is still coming up
func connectBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	return b
}

// SQLiteDSN builds a modernc.org/sqlite dsn with the pragmas we rely on, extraParams is appended as is
func SQLiteDSN(path string, extraParams string) string {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)
	if extraParams != "" {
		dsn += "&" + extraParams
	}
	return dsn
}

// IsSQLite returns true if db was opened with the sqlite driver
func IsSQLite(db *sqlx.DB) bool {
	return db.DriverName() == DriverSQLite
}

// UnixMS and FromUnixMS convert timestamps to the representation stored in the database
func UnixMS(t time.Time) int64 {
	return t.UnixMilli()
}

func FromUnixMS(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
