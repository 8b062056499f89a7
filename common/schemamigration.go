package common

import (
	"context"

	"emperror.dev/errors"
	"github.com/jmoiron/sqlx"
)

// InitSchemas runs the provided schema statements in order, they're expected to be idempotent
// (CREATE TABLE IF NOT EXISTS and friends)
func InitSchemas(ctx context.Context, db *sqlx.DB, name string, schemas ...string) error {
	for i, v := range schemas {
		_, err := db.ExecContext(ctx, v)
		if err != nil {
			return errors.WithMessagef(err, "failed initializing db schema for %s (#%d)", name, i)
		}
	}

	logger.WithField("schemas", len(schemas)).Info("Schema initialization: ", name, ": done")
	return nil
}

// LocalIDsSchemas returns the schema for the local_incr_ids table in the dialect of db
func LocalIDsSchemas(db *sqlx.DB) []string {
	if IsSQLite(db) {
		return []string{localIDsSchemaSQLite}
	}

	return []string{localIDsSchemaPostgres}
}
