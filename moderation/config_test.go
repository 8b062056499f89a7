package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestConfigStore(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	store := NewConfigStore(db)
	defer store.Stop()

	conf, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, conf.GuildID)
	assert.Equal(t, DefaultDMMessage, conf.DMTemplate(KindBan))
	assert.Equal(t, DefaultMuteDuration, conf.MuteDuration())
	assert.Equal(t, DefaultBanDeleteDays, conf.BanDeleteDays())

	// modifying the returned copy doesn't touch the cache
	conf.BanMessage = "changed locally"
	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "", again.BanMessage)

	conf = &Config{
		GuildID:              1,
		BanMessage:           "Bye, {{.Reason}}",
		WarnMessage:          "Warned: {{.Reason}}",
		DefaultMuteDuration:  null.Int64From(30),
		DefaultBanDeleteDays: null.Int64From(20),
	}
	require.NoError(t, store.Save(ctx, conf))
	assert.False(t, conf.CreatedAt.IsZero())

	loaded, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bye, {{.Reason}}", loaded.DMTemplate(KindBan))
	assert.Equal(t, "Bye, {{.Reason}}", loaded.DMTemplate(KindSoftban))
	assert.Equal(t, "Warned: {{.Reason}}", loaded.DMTemplate(KindWarn))
	assert.Equal(t, DefaultDMMessage, loaded.DMTemplate(KindKick))
	assert.Equal(t, 30*time.Minute, loaded.MuteDuration())
	assert.Equal(t, MaxBanDeleteDays, loaded.BanDeleteDays(), "clamped on save")

	// saving again updates in place
	loaded.KickMessage = "Kicked"
	require.NoError(t, store.Save(ctx, loaded))

	var rows int
	require.NoError(t, db.Get(&rows, "SELECT count(*) FROM moderation_configs"))
	assert.Equal(t, 1, rows)

	loaded, err = store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Kicked", loaded.DMTemplate(KindKick))
}

func TestConfigMuteDuration(t *testing.T) {
	tests := []struct {
		name string
		val  null.Int64
		want time.Duration
	}{
		{"unset", null.Int64{}, DefaultMuteDuration},
		{"zero", null.Int64From(0), DefaultMuteDuration},
		{"set", null.Int64From(60), time.Hour},
		{"above max", null.Int64From(100000), MaxMuteDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{DefaultMuteDuration: tt.val}
			assert.Equal(t, tt.want, c.MuteDuration())
		})
	}
}
