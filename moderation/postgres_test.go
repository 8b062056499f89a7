package moderation

import (
	"context"
	"os"
	"testing"

	"github.com/botlabs-gg/yagmod/common"
	"github.com/botlabs-gg/yagmod/common/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Runs against a real postgres database when YAGMOD_TEST_PQ_HOST is set
func TestWarnStorePostgres(t *testing.T) {
	if os.Getenv("YAGMOD_TEST_PQ_HOST") == "" {
		t.Skip("YAGMOD_TEST_PQ_HOST not set, skipping postgres tests")
	}

	db, err := testutils.ConnectPQ()
	require.NoError(t, err)
	defer db.Close()

	tables := []string{"moderation_warnings", "moderation_audit_log", "moderation_configs", "local_incr_ids"}
	schemas := append(common.LocalIDsSchemas(db), DBSchemas(db)...)
	require.NoError(t, testutils.InitTables(db, tables, schemas))
	defer testutils.ClearTables(db, tables...)

	ctx := context.Background()
	store := NewWarnStore(db)

	const workers = 20
	seen := make(chan int64, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			w, err := store.Add(gctx, 1, 2, 3, "concurrent")
			if err != nil {
				return err
			}
			seen <- w.ID
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(seen)

	ids := make(map[int64]bool)
	for id := range seen {
		assert.False(t, ids[id], "duplicate id %d", id)
		assert.True(t, id >= 1 && id <= workers, "id %d out of range", id)
		ids[id] = true
	}
	assert.Len(t, ids, workers)

	entry, err := NewAuditLog(db).Append(ctx, &AuditLogEntry{GuildID: 1, Kind: KindWarn, TargetID: 2, ActorID: 3, Reason: "r"})
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)

	top, err := store.TopWarned(ctx, 1, 0, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.EqualValues(t, workers, top[0].WarnCount)
}
