package moderation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/botlabs-gg/yagmod/common/testutils"
	"github.com/jmoiron/sqlx"
)

func initTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db := testutils.OpenSQLite(t)
	if err := InitSchemas(context.Background(), db); err != nil {
		t.Fatal(err)
	}

	return db
}

type actuatorCall struct {
	Method     string
	GuildID    int64
	UserID     int64
	Reason     string
	DeleteDays int
	Duration   *time.Duration
	Nickname   *string
}

type fakeActuator struct {
	mu    sync.Mutex
	calls []actuatorCall

	// returned by every call to the named method
	errs map[string]error
}

func (f *fakeActuator) record(c actuatorCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, c)
	return f.errs[c.Method]
}

func (f *fakeActuator) Calls() []actuatorCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]actuatorCall(nil), f.calls...)
}

func (f *fakeActuator) Ban(ctx context.Context, guildID, userID int64, reason string, deleteMessageDays int) error {
	return f.record(actuatorCall{Method: "Ban", GuildID: guildID, UserID: userID, Reason: reason, DeleteDays: deleteMessageDays})
}

func (f *fakeActuator) Kick(ctx context.Context, guildID, userID int64, reason string) error {
	return f.record(actuatorCall{Method: "Kick", GuildID: guildID, UserID: userID, Reason: reason})
}

func (f *fakeActuator) Timeout(ctx context.Context, guildID, userID int64, duration *time.Duration, reason string) error {
	return f.record(actuatorCall{Method: "Timeout", GuildID: guildID, UserID: userID, Reason: reason, Duration: duration})
}

func (f *fakeActuator) Unban(ctx context.Context, guildID, userID int64, reason string) error {
	return f.record(actuatorCall{Method: "Unban", GuildID: guildID, UserID: userID, Reason: reason})
}

func (f *fakeActuator) SetNickname(ctx context.Context, guildID, userID int64, nickname *string, reason string) error {
	return f.record(actuatorCall{Method: "SetNickname", GuildID: guildID, UserID: userID, Reason: reason, Nickname: nickname})
}

type fakeMembers struct {
	snapshot *HierarchySnapshot
	err      error
}

func (f *fakeMembers) Snapshot(ctx context.Context, guildID, actorID, targetID int64) (*HierarchySnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}

	// ranks come from the fixture, the ids from the lookup like a real adapter
	snapshot := *f.snapshot
	snapshot.Actor.UserID = actorID
	snapshot.Target.UserID = targetID
	return &snapshot, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	sent     map[int64][]string
	deliver  bool
	panicMsg string
}

func (f *fakeNotifier) SendDirect(ctx context.Context, userID int64, payload string) bool {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sent == nil {
		f.sent = make(map[int64][]string)
	}
	f.sent[userID] = append(f.sent[userID], payload)
	return f.deliver
}

func (f *fakeNotifier) Sent(userID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sent[userID]
}
