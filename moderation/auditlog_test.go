package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLog(t *testing.T) {
	ctx := context.Background()
	audit := NewAuditLog(initTestDB(t))

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first, err := audit.Append(ctx, &AuditLogEntry{
		GuildID:       1,
		Kind:          KindMute,
		TargetID:      2,
		ActorID:       3,
		Reason:        "being loud",
		DurationLabel: "10m",
		CreatedAt:     created,
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.True(t, created.Equal(first.CreatedAt))

	second, err := audit.Append(ctx, &AuditLogEntry{GuildID: 1, Kind: KindKick, TargetID: 2, ActorID: 3, Reason: "again"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, second.CreatedAt.IsZero())

	_, err = audit.Append(ctx, &AuditLogEntry{GuildID: 1, Kind: KindBan, TargetID: 99, ActorID: 3, Reason: "someone else"})
	require.NoError(t, err)

	entries, err := audit.QueryByTarget(ctx, 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, second.ID, entries[0].ID, "newest first")
	assert.Equal(t, KindKick, entries[0].Kind)
	assert.Equal(t, "", entries[0].DurationLabel)
	assert.Equal(t, KindMute, entries[1].Kind)
	assert.Equal(t, "10m", entries[1].DurationLabel)
	assert.Equal(t, "being loud", entries[1].Reason)

	limited, err := audit.QueryByTarget(ctx, 1, 2, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := audit.QueryByTarget(ctx, 2, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAuditLogDefaultLimit(t *testing.T) {
	ctx := context.Background()
	audit := NewAuditLog(initTestDB(t))

	for i := 0; i < DefaultAuditQueryLimit+5; i++ {
		_, err := audit.Append(ctx, &AuditLogEntry{GuildID: 1, Kind: KindWarn, TargetID: 2, ActorID: 3, Reason: "r"})
		require.NoError(t, err)
	}

	entries, err := audit.QueryByTarget(ctx, 1, 2, -1)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultAuditQueryLimit)
}
