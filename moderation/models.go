package moderation

import (
	"strings"
	"time"
)

// Kind is the type of moderation action
type Kind string

const (
	KindBan      Kind = "BAN"
	KindKick     Kind = "KICK"
	KindMute     Kind = "MUTE"
	KindUnmute   Kind = "UNMUTE"
	KindWarn     Kind = "WARN"
	KindSoftban  Kind = "SOFTBAN"
	KindUnban    Kind = "UNBAN"
	KindNickname Kind = "NICKNAME"
)

var AllKinds = []Kind{KindBan, KindKick, KindMute, KindUnmute, KindWarn, KindSoftban, KindUnban, KindNickname}

func (k Kind) Valid() bool {
	for _, v := range AllKinds {
		if v == k {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a kind case insensitively
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	return k, k.Valid()
}

const (
	DefaultReason = "no reason given"

	MaxMuteDuration     = time.Hour * 24 * 28
	DefaultMuteDuration = 10 * time.Minute

	MaxBanDeleteDays     = 7
	DefaultBanDeleteDays = 1
)

// ActionRequest is built by the command layer and handed to Executor.Run
type ActionRequest struct {
	Kind     Kind
	GuildID  int64
	ActorID  int64
	TargetID int64

	// Blank reasons are replaced with DefaultReason
	Reason string

	// MUTE only, nil means the guild's default mute duration
	Duration *time.Duration

	// BAN and SOFTBAN, number of days of messages to purge. nil means the guild default
	DeleteMessageDays *int

	// NICKNAME only, nil resets the nickname
	Nickname *string
}

// ActionResult describes an applied action, rendering it is up to the caller
type ActionResult struct {
	Kind     Kind   `json:"kind"`
	GuildID  int64  `json:"guild_id"`
	TargetID int64  `json:"target_id"`
	ActorID  int64  `json:"actor_id"`
	Reason   string `json:"reason"`

	// Set for MUTE
	Duration      time.Duration `json:"duration,omitempty"`
	DurationLabel string        `json:"duration_label,omitempty"`

	AuditEntryID int64 `json:"audit_entry_id"`

	// Set for WARN
	WarningID    int64 `json:"warning_id,omitempty"`
	WarningCount int   `json:"warning_count,omitempty"`
}

// Warning is a persisted warning, ID is unique within the guild and never reused
type Warning struct {
	ID        int64
	GuildID   int64
	TargetID  int64
	ActorID   int64
	Reason    string
	CreatedAt time.Time
}

// AuditLogEntry is a write-once record of an applied action
type AuditLogEntry struct {
	ID            int64
	GuildID       int64
	Kind          Kind
	TargetID      int64
	ActorID       int64
	Reason        string
	DurationLabel string
	CreatedAt     time.Time
}
