package moderation

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/common"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"
)

const DefaultAuditQueryLimit = 50

// AuditLog is the append only history of applied actions, rows are never updated or removed
type AuditLog struct {
	db *sqlx.DB
}

func NewAuditLog(db *sqlx.DB) *AuditLog {
	return &AuditLog{db: db}
}

type auditRow struct {
	ID            int64       `db:"id"`
	GuildID       int64       `db:"guild_id"`
	Kind          string      `db:"kind"`
	TargetID      int64       `db:"target_id"`
	ActorID       int64       `db:"actor_id"`
	Reason        string      `db:"reason"`
	DurationLabel null.String `db:"duration_label"`
	CreatedAtMS   int64       `db:"created_at_ms"`
}

func (r *auditRow) toEntry() *AuditLogEntry {
	return &AuditLogEntry{
		ID:            r.ID,
		GuildID:       r.GuildID,
		Kind:          Kind(r.Kind),
		TargetID:      r.TargetID,
		ActorID:       r.ActorID,
		Reason:        r.Reason,
		DurationLabel: r.DurationLabel.String,
		CreatedAt:     common.FromUnixMS(r.CreatedAtMS),
	}
}

// Append inserts the entry and returns the stored version with the id assigned.
// A zero CreatedAt is set to the current time.
func (a *AuditLog) Append(ctx context.Context, entry *AuditLogEntry) (*AuditLogEntry, error) {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	row := &auditRow{
		GuildID:       entry.GuildID,
		Kind:          string(entry.Kind),
		TargetID:      entry.TargetID,
		ActorID:       entry.ActorID,
		Reason:        entry.Reason,
		DurationLabel: null.NewString(entry.DurationLabel, entry.DurationLabel != ""),
		CreatedAtMS:   common.UnixMS(createdAt),
	}

	const q = `INSERT INTO moderation_audit_log (guild_id, kind, target_id, actor_id, reason, duration_label, created_at_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id`

	err := a.db.QueryRowxContext(ctx, a.db.Rebind(q),
		row.GuildID, row.Kind, row.TargetID, row.ActorID, row.Reason, row.DurationLabel, row.CreatedAtMS).Scan(&row.ID)
	if err != nil {
		return nil, errors.WithMessage(err, "insert audit log entry")
	}

	return row.toEntry(), nil
}

// QueryByTarget returns the newest entries for the target in the guild, limit <= 0 uses DefaultAuditQueryLimit
func (a *AuditLog) QueryByTarget(ctx context.Context, guildID, targetID int64, limit int) ([]*AuditLogEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditQueryLimit
	}

	const q = `SELECT id, guild_id, kind, target_id, actor_id, reason, duration_label, created_at_ms
	FROM moderation_audit_log
	WHERE guild_id = ? AND target_id = ?
	ORDER BY id DESC
	LIMIT ?`

	var rows []*auditRow
	err := a.db.SelectContext(ctx, &rows, a.db.Rebind(q), guildID, targetID, limit)
	if err != nil {
		return nil, errors.WithMessage(err, "select audit log")
	}

	result := make([]*AuditLogEntry, 0, len(rows))
	for _, v := range rows {
		result = append(result, v.toEntry())
	}

	return result, nil
}
