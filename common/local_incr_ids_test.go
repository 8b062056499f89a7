package common

import (
	"context"
	"testing"

	"github.com/botlabs-gg/yagmod/common/testutils"
	"github.com/jmoiron/sqlx"
)

func genID(t *testing.T, db *sqlx.DB, guildID int64, key string) int64 {
	t.Helper()

	tx, err := db.BeginTxx(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	id, err := GenLocalIncrID(context.Background(), tx, guildID, key)
	if err != nil {
		tx.Rollback()
		t.Fatal(err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	return id
}

func TestLocalIncrID(t *testing.T) {
	db := testutils.OpenSQLite(t)
	if err := InitSchemas(context.Background(), db, "local_incr_ids", LocalIDsSchemas(db)...); err != nil {
		t.Fatal(err)
	}

	tkey := "key1"

	if id1 := genID(t, db, 0, tkey); id1 != 1 {
		t.Errorf("Expected 1 got %d", id1)
	}

	// should be increased
	if id2 := genID(t, db, 0, tkey); id2 != 2 {
		t.Errorf("Expected 2, got %d", id2)
	}

	// test another guild id
	if id3 := genID(t, db, 1, tkey); id3 != 1 {
		t.Errorf("Expected 1, got %d", id3)
	}

	// test another key with same guild id
	if id4 := genID(t, db, 0, tkey+"different"); id4 != 1 {
		t.Errorf("Expected 1, got %d", id4)
	}
}

func TestLocalIncrIDRollback(t *testing.T) {
	db := testutils.OpenSQLite(t)
	if err := InitSchemas(context.Background(), db, "local_incr_ids", LocalIDsSchemas(db)...); err != nil {
		t.Fatal(err)
	}

	genID(t, db, 5, "k")

	// a rolled back transaction must not advance the counter
	tx, err := db.BeginTxx(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := GenLocalIncrID(context.Background(), tx, 5, "k"); err != nil {
		t.Fatal(err)
	}
	tx.Rollback()

	if id := genID(t, db, 5, "k"); id != 2 {
		t.Errorf("Expected 2, got %d", id)
	}
}
