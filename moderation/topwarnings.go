package moderation

import (
	"context"

	"emperror.dev/errors"
)

type WarnRankEntry struct {
	Rank      int   `json:"rank" db:"rank"`
	UserID    int64 `json:"user_id" db:"user_id"`
	WarnCount int64 `json:"warn_count" db:"warn_count"`
}

// TopWarned returns the most warned users in the guild, users with equal counts share a rank
func (s *WarnStore) TopWarned(ctx context.Context, guildID int64, offset, limit int) ([]*WarnRankEntry, error) {
	const q = `SELECT rank, warn_count, user_id FROM
	(
		SELECT RANK() OVER (ORDER BY count(*) DESC) AS rank, count(*) AS warn_count, user_id
		FROM moderation_warnings WHERE guild_id = ? GROUP BY user_id
	) AS warns
	ORDER BY warn_count DESC, user_id ASC
	LIMIT ? OFFSET ?`

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	result := make([]*WarnRankEntry, 0, limit)
	err := s.db.SelectContext(ctx, &result, s.db.Rebind(q), guildID, limit, offset)
	if err != nil {
		return nil, errors.WithMessage(err, "select top warned")
	}

	return result, nil
}
