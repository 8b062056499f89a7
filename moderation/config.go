package moderation

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/common"
	"github.com/jmoiron/sqlx"
	"github.com/karlseguin/ccache"
	"github.com/volatiletech/null/v8"
)

// Config is the per guild moderation configuration, a guild without a stored config uses the zero value
type Config struct {
	GuildID   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// DM templates, empty means DefaultDMMessage
	BanMessage    string
	KickMessage   string
	MuteMessage   string
	UnmuteMessage string
	WarnMessage   string

	DefaultMuteDuration  null.Int64 // minutes
	DefaultBanDeleteDays null.Int64
}

// DMTemplate returns the direct message template used for kind
func (c *Config) DMTemplate(kind Kind) string {
	var msg string
	switch kind {
	case KindBan, KindSoftban:
		msg = c.BanMessage
	case KindKick:
		msg = c.KickMessage
	case KindMute:
		msg = c.MuteMessage
	case KindUnmute:
		msg = c.UnmuteMessage
	case KindWarn:
		msg = c.WarnMessage
	}

	if msg == "" {
		return DefaultDMMessage
	}

	return msg
}

func (c *Config) MuteDuration() time.Duration {
	if !c.DefaultMuteDuration.Valid || c.DefaultMuteDuration.Int64 <= 0 {
		return DefaultMuteDuration
	}

	d := time.Duration(c.DefaultMuteDuration.Int64) * time.Minute
	if d > MaxMuteDuration {
		d = MaxMuteDuration
	}

	return d
}

func (c *Config) BanDeleteDays() int {
	if !c.DefaultBanDeleteDays.Valid {
		return DefaultBanDeleteDays
	}

	return clampDeleteDays(int(c.DefaultBanDeleteDays.Int64))
}

func clampDeleteDays(days int) int {
	if days < 0 {
		return 0
	}
	if days > MaxBanDeleteDays {
		return MaxBanDeleteDays
	}
	return days
}

type configRow struct {
	GuildID              int64      `db:"guild_id"`
	CreatedAtMS          int64      `db:"created_at_ms"`
	UpdatedAtMS          int64      `db:"updated_at_ms"`
	BanMessage           string     `db:"ban_message"`
	KickMessage          string     `db:"kick_message"`
	MuteMessage          string     `db:"mute_message"`
	UnmuteMessage        string     `db:"unmute_message"`
	WarnMessage          string     `db:"warn_message"`
	DefaultMuteDuration  null.Int64 `db:"default_mute_duration"`
	DefaultBanDeleteDays null.Int64 `db:"default_ban_delete_days"`
}

func (r *configRow) toConfig() *Config {
	return &Config{
		GuildID:              r.GuildID,
		CreatedAt:            common.FromUnixMS(r.CreatedAtMS),
		UpdatedAt:            common.FromUnixMS(r.UpdatedAtMS),
		BanMessage:           r.BanMessage,
		KickMessage:          r.KickMessage,
		MuteMessage:          r.MuteMessage,
		UnmuteMessage:        r.UnmuteMessage,
		WarnMessage:          r.WarnMessage,
		DefaultMuteDuration:  r.DefaultMuteDuration,
		DefaultBanDeleteDays: r.DefaultBanDeleteDays,
	}
}

// ConfigStore loads and saves guild configs, reads are cached for 10 minutes
type ConfigStore struct {
	db    *sqlx.DB
	cache *ccache.Cache
}

func NewConfigStore(db *sqlx.DB) *ConfigStore {
	return &ConfigStore{
		db:    db,
		cache: ccache.New(ccache.Configure().MaxSize(25000)),
	}
}

func configCacheKey(guildID int64) string {
	return "moderation_config:" + strconv.FormatInt(guildID, 10)
}

// Get returns the guild's config, or the defaults if none is stored.
// The returned config is a copy and safe to modify.
func (s *ConfigStore) Get(ctx context.Context, guildID int64) (*Config, error) {
	item, err := s.cache.Fetch(configCacheKey(guildID), time.Minute*10, func() (interface{}, error) {
		return s.fetch(ctx, guildID)
	})
	if err != nil {
		return nil, err
	}

	cp := *item.Value().(*Config)
	return &cp, nil
}

func (s *ConfigStore) fetch(ctx context.Context, guildID int64) (*Config, error) {
	const q = `SELECT guild_id, created_at_ms, updated_at_ms, ban_message, kick_message, mute_message, unmute_message,
	warn_message, default_mute_duration, default_ban_delete_days
	FROM moderation_configs WHERE guild_id = ?`

	var row configRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(q), guildID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &Config{GuildID: guildID}, nil
		}

		return nil, errors.WithMessage(err, "select moderation config")
	}

	return row.toConfig(), nil
}

// Save upserts the config and invalidates the cached version
func (s *ConfigStore) Save(ctx context.Context, conf *Config) error {
	now := time.Now()
	if conf.CreatedAt.IsZero() {
		conf.CreatedAt = now
	}
	conf.UpdatedAt = now

	if conf.DefaultBanDeleteDays.Valid {
		conf.DefaultBanDeleteDays.Int64 = int64(clampDeleteDays(int(conf.DefaultBanDeleteDays.Int64)))
	}

	row := &configRow{
		GuildID:              conf.GuildID,
		CreatedAtMS:          common.UnixMS(conf.CreatedAt),
		UpdatedAtMS:          common.UnixMS(conf.UpdatedAt),
		BanMessage:           conf.BanMessage,
		KickMessage:          conf.KickMessage,
		MuteMessage:          conf.MuteMessage,
		UnmuteMessage:        conf.UnmuteMessage,
		WarnMessage:          conf.WarnMessage,
		DefaultMuteDuration:  conf.DefaultMuteDuration,
		DefaultBanDeleteDays: conf.DefaultBanDeleteDays,
	}

	const q = `INSERT INTO moderation_configs (guild_id, created_at_ms, updated_at_ms, ban_message, kick_message,
	mute_message, unmute_message, warn_message, default_mute_duration, default_ban_delete_days)
	VALUES (:guild_id, :created_at_ms, :updated_at_ms, :ban_message, :kick_message,
	:mute_message, :unmute_message, :warn_message, :default_mute_duration, :default_ban_delete_days)
	ON CONFLICT (guild_id) DO UPDATE SET
	updated_at_ms = excluded.updated_at_ms,
	ban_message = excluded.ban_message,
	kick_message = excluded.kick_message,
	mute_message = excluded.mute_message,
	unmute_message = excluded.unmute_message,
	warn_message = excluded.warn_message,
	default_mute_duration = excluded.default_mute_duration,
	default_ban_delete_days = excluded.default_ban_delete_days`

	_, err := s.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return errors.WithMessage(err, "upsert moderation config")
	}

	s.InvalidateCache(conf.GuildID)
	return nil
}

func (s *ConfigStore) InvalidateCache(guildID int64) {
	s.cache.Delete(configCacheKey(guildID))
}

func (s *ConfigStore) Stop() {
	s.cache.Stop()
}
