package moderation

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/common"
	"github.com/jmoiron/sqlx"
)

// local_incr_ids key for warning ids
const warningsCounterKey = "moderation_warnings"

// WarnStore persists warnings, ids are allocated per guild and never reused
type WarnStore struct {
	db *sqlx.DB
}

func NewWarnStore(db *sqlx.DB) *WarnStore {
	return &WarnStore{db: db}
}

type warningRow struct {
	GuildID     int64  `db:"guild_id"`
	ID          int64  `db:"id"`
	UserID      int64  `db:"user_id"`
	AuthorID    int64  `db:"author_id"`
	Reason      string `db:"reason"`
	CreatedAtMS int64  `db:"created_at_ms"`
}

func (r *warningRow) toWarning() *Warning {
	return &Warning{
		ID:        r.ID,
		GuildID:   r.GuildID,
		TargetID:  r.UserID,
		ActorID:   r.AuthorID,
		Reason:    r.Reason,
		CreatedAt: common.FromUnixMS(r.CreatedAtMS),
	}
}

// Add stores a new warning, the id is allocated in the same transaction as the insert
func (s *WarnStore) Add(ctx context.Context, guildID, targetID, actorID int64, reason string) (*Warning, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "begin tx")
	}

	w, err := s.addTx(ctx, tx, guildID, targetID, actorID, reason)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.WithMessage(err, "commit")
	}

	return w, nil
}

func (s *WarnStore) addTx(ctx context.Context, tx *sqlx.Tx, guildID, targetID, actorID int64, reason string) (*Warning, error) {
	id, err := common.GenLocalIncrID(ctx, tx, guildID, warningsCounterKey)
	if err != nil {
		return nil, errors.WithMessage(err, "GenLocalIncrID")
	}

	row := &warningRow{
		GuildID:     guildID,
		ID:          id,
		UserID:      targetID,
		AuthorID:    actorID,
		Reason:      reason,
		CreatedAtMS: common.UnixMS(time.Now()),
	}

	const q = `INSERT INTO moderation_warnings (guild_id, id, user_id, author_id, reason, created_at_ms)
	VALUES (:guild_id, :id, :user_id, :author_id, :reason, :created_at_ms)`

	_, err = tx.NamedExecContext(ctx, q, row)
	if err != nil {
		return nil, errors.WithMessage(err, "insert warning")
	}

	return row.toWarning(), nil
}

// List returns all the warnings of the target in the guild, newest first
func (s *WarnStore) List(ctx context.Context, guildID, targetID int64) ([]*Warning, error) {
	const q = `SELECT guild_id, id, user_id, author_id, reason, created_at_ms FROM moderation_warnings
	WHERE guild_id = ? AND user_id = ?
	ORDER BY id DESC`

	var rows []*warningRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q), guildID, targetID)
	if err != nil {
		return nil, errors.WithMessage(err, "select warnings")
	}

	result := make([]*Warning, 0, len(rows))
	for _, v := range rows {
		result = append(result, v.toWarning())
	}

	return result, nil
}

// Count returns the number of warnings the target has in the guild
func (s *WarnStore) Count(ctx context.Context, guildID, targetID int64) (int, error) {
	const q = `SELECT count(*) FROM moderation_warnings WHERE guild_id = ? AND user_id = ?`

	var count int
	err := s.db.GetContext(ctx, &count, s.db.Rebind(q), guildID, targetID)
	if err != nil {
		return 0, errors.WithMessage(err, "count warnings")
	}

	return count, nil
}

// RemoveByID deletes a single warning and returns the number of removed rows (0 or 1)
func (s *WarnStore) RemoveByID(ctx context.Context, id, guildID int64) (int64, error) {
	const q = `DELETE FROM moderation_warnings WHERE guild_id = ? AND id = ?`

	res, err := s.db.ExecContext(ctx, s.db.Rebind(q), guildID, id)
	if err != nil {
		return 0, errors.WithMessage(err, "delete warning")
	}

	return res.RowsAffected()
}

// Clear deletes all the warnings of the target in the guild and returns how many were removed
func (s *WarnStore) Clear(ctx context.Context, guildID, targetID int64) (int64, error) {
	const q = `DELETE FROM moderation_warnings WHERE guild_id = ? AND user_id = ?`

	res, err := s.db.ExecContext(ctx, s.db.Rebind(q), guildID, targetID)
	if err != nil {
		return 0, errors.WithMessage(err, "clear warnings")
	}

	return res.RowsAffected()
}
