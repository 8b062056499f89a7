package moderation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestWarnStore(t *testing.T) {
	ctx := context.Background()
	store := NewWarnStore(initTestDB(t))

	const guildID, targetID, actorID = 100, 200, 300

	first, err := store.Add(ctx, guildID, targetID, actorID, "first")
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.ID)
	assert.Equal(t, "first", first.Reason)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := store.Add(ctx, guildID, targetID, actorID, "second")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	list, err := store.List(ctx, guildID, targetID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, "first", list[1].Reason)
	assert.EqualValues(t, actorID, list[1].ActorID)
	assert.EqualValues(t, targetID, list[1].TargetID)

	count, err := store.Count(ctx, guildID, targetID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// scoped by guild
	n, err := store.RemoveByID(ctx, second.ID, guildID+1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = store.RemoveByID(ctx, second.ID, guildID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = store.RemoveByID(ctx, second.ID, guildID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "removing a missing id")

	// ids are not reused after removal
	third, err := store.Add(ctx, guildID, targetID, actorID, "third")
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID)

	// other guilds have their own sequence
	other, err := store.Add(ctx, guildID+1, targetID, actorID, "other guild")
	require.NoError(t, err)
	assert.EqualValues(t, 1, other.ID)

	n, err = store.Clear(ctx, guildID, targetID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err = store.List(ctx, guildID, targetID)
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err = store.Clear(ctx, guildID, targetID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	list, err = store.List(ctx, guildID+1, targetID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "clear is scoped by guild")
}

func TestWarnStoreConcurrentAdd(t *testing.T) {
	store := NewWarnStore(initTestDB(t))

	const guildID, workers = 1, 25

	ids := make([]int64, workers)
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			w, err := store.Add(ctx, guildID, int64(1000+i%3), 5, "concurrent")
			if err != nil {
				return err
			}
			ids[i] = w.ID
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[int64]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
		assert.True(t, id >= 1 && id <= workers, "id %d out of range", id)
	}
}

func TestTopWarned(t *testing.T) {
	ctx := context.Background()
	store := NewWarnStore(initTestDB(t))

	add := func(guildID, userID int64, n int) {
		for i := 0; i < n; i++ {
			_, err := store.Add(ctx, guildID, userID, 1, "reason")
			require.NoError(t, err)
		}
	}

	add(1, 10, 3)
	add(1, 11, 1)
	add(1, 12, 3)
	add(2, 13, 5)

	top, err := store.TopWarned(ctx, 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.EqualValues(t, 10, top[0].UserID)
	assert.EqualValues(t, 3, top[0].WarnCount)
	assert.Equal(t, 1, top[0].Rank)
	assert.EqualValues(t, 12, top[1].UserID)
	assert.Equal(t, 1, top[1].Rank, "ties share a rank")
	assert.EqualValues(t, 11, top[2].UserID)
	assert.Equal(t, 3, top[2].Rank)

	page, err := store.TopWarned(ctx, 1, 2, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.EqualValues(t, 11, page[0].UserID)
}
