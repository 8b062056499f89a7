package common

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/jmoiron/sqlx"
)

const localIDsSchemaPostgres = `
CREATE TABLE IF NOT EXISTS local_incr_ids (
	guild_id BIGINT NOT NULL,
	counter_key TEXT NOT NULL,

	last BIGINT NOT NULL,
	last_updated_ms BIGINT NOT NULL,

	PRIMARY KEY(guild_id, counter_key)
)
`

const localIDsSchemaSQLite = `
CREATE TABLE IF NOT EXISTS local_incr_ids (
	guild_id INTEGER NOT NULL,
	counter_key TEXT NOT NULL,

	last INTEGER NOT NULL,
	last_updated_ms INTEGER NOT NULL,

	PRIMARY KEY(guild_id, counter_key)
)
`

// GenLocalIncrID creates a new or increments an existing per guild id counter and returns the new value.
//
// It has to run in the same transaction as the insert that uses the id: the counter row stays locked
// until the transaction ends, so concurrent callers for the same guild and key are serialized and
// ids are never handed out twice, even if rows using them are later deleted.
func GenLocalIncrID(ctx context.Context, tx *sqlx.Tx, guildID int64, key string) (int64, error) {
	const query = `INSERT INTO local_incr_ids (guild_id, counter_key, last, last_updated_ms)
	VALUES (?, ?, 1, ?)
	ON CONFLICT (guild_id, counter_key)
	DO UPDATE SET last = local_incr_ids.last + 1, last_updated_ms = excluded.last_updated_ms
	RETURNING last;`

	var newID int64
	err := tx.QueryRowxContext(ctx, tx.Rebind(query), guildID, key, UnixMS(time.Now())).Scan(&newID)
	if err != nil {
		return 0, errors.WithStackIf(err)
	}

	return newID, nil
}
