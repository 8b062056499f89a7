package moderation

import (
	"github.com/botlabs-gg/yagmod/common"
	"github.com/jmoiron/sqlx"
)

// DBSchemas returns the moderation schema in the dialect of db
func DBSchemas(db *sqlx.DB) []string {
	if common.IsSQLite(db) {
		return dbSchemasSQLite
	}

	return dbSchemasPostgres
}

var dbSchemasPostgres = []string{`
CREATE TABLE IF NOT EXISTS moderation_configs (
	guild_id BIGINT PRIMARY KEY,
	created_at_ms BIGINT NOT NULL,
	updated_at_ms BIGINT NOT NULL,

	ban_message TEXT NOT NULL DEFAULT '',
	kick_message TEXT NOT NULL DEFAULT '',
	mute_message TEXT NOT NULL DEFAULT '',
	unmute_message TEXT NOT NULL DEFAULT '',
	warn_message TEXT NOT NULL DEFAULT '',

	-- minutes
	default_mute_duration BIGINT,
	default_ban_delete_days BIGINT
);
`, `
CREATE TABLE IF NOT EXISTS moderation_warnings (
	guild_id BIGINT NOT NULL,
	-- allocated from local_incr_ids, unique within the guild
	id BIGINT NOT NULL,

	user_id BIGINT NOT NULL,
	author_id BIGINT NOT NULL,
	reason TEXT NOT NULL,
	created_at_ms BIGINT NOT NULL,

	PRIMARY KEY(guild_id, id)
);
`, `
CREATE INDEX IF NOT EXISTS idx_moderation_warnings_guild_user ON moderation_warnings(guild_id, user_id);
`, `
CREATE TABLE IF NOT EXISTS moderation_audit_log (
	id BIGSERIAL PRIMARY KEY,

	guild_id BIGINT NOT NULL,
	kind TEXT NOT NULL,
	target_id BIGINT NOT NULL,
	actor_id BIGINT NOT NULL,
	reason TEXT NOT NULL,
	duration_label TEXT,
	created_at_ms BIGINT NOT NULL
);
`, `
CREATE INDEX IF NOT EXISTS idx_moderation_audit_log_guild_target ON moderation_audit_log(guild_id, target_id);
`}

var dbSchemasSQLite = []string{`
CREATE TABLE IF NOT EXISTS moderation_configs (
	guild_id INTEGER PRIMARY KEY,
	created_at_ms INTEGER NOT NULL,
	updated_at_ms INTEGER NOT NULL,

	ban_message TEXT NOT NULL DEFAULT '',
	kick_message TEXT NOT NULL DEFAULT '',
	mute_message TEXT NOT NULL DEFAULT '',
	unmute_message TEXT NOT NULL DEFAULT '',
	warn_message TEXT NOT NULL DEFAULT '',

	default_mute_duration INTEGER,
	default_ban_delete_days INTEGER
);
`, `
CREATE TABLE IF NOT EXISTS moderation_warnings (
	guild_id INTEGER NOT NULL,
	id INTEGER NOT NULL,

	user_id INTEGER NOT NULL,
	author_id INTEGER NOT NULL,
	reason TEXT NOT NULL,
	created_at_ms INTEGER NOT NULL,

	PRIMARY KEY(guild_id, id)
);
`, `
CREATE INDEX IF NOT EXISTS idx_moderation_warnings_guild_user ON moderation_warnings(guild_id, user_id);
`, `
CREATE TABLE IF NOT EXISTS moderation_audit_log (
	-- AUTOINCREMENT so ids of removed rows are never handed out again
	id INTEGER PRIMARY KEY AUTOINCREMENT,

	guild_id INTEGER NOT NULL,
	kind TEXT NOT NULL,
	target_id INTEGER NOT NULL,
	actor_id INTEGER NOT NULL,
	reason TEXT NOT NULL,
	duration_label TEXT,
	created_at_ms INTEGER NOT NULL
);
`, `
CREATE INDEX IF NOT EXISTS idx_moderation_audit_log_guild_target ON moderation_audit_log(guild_id, target_id);
`}
