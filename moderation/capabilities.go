package moderation

import (
	"context"
	"time"
)

// PlatformActuator carries out actions on the chat platform.
// Implementations return a *PlatformError where the platform gave a reason for refusing.
type PlatformActuator interface {
	Ban(ctx context.Context, guildID, userID int64, reason string, deleteMessageDays int) error
	Kick(ctx context.Context, guildID, userID int64, reason string) error

	// Timeout with a nil duration removes an active timeout
	Timeout(ctx context.Context, guildID, userID int64, duration *time.Duration, reason string) error
	Unban(ctx context.Context, guildID, userID int64, reason string) error

	// SetNickname with a nil nickname resets it
	SetNickname(ctx context.Context, guildID, userID int64, nickname *string, reason string) error
}

// MembershipSnapshot provides a single consistent view of the ranks involved in an action
type MembershipSnapshot interface {
	Snapshot(ctx context.Context, guildID, actorID, targetID int64) (*HierarchySnapshot, error)
}

// Notifier delivers direct messages, it reports delivery and never returns errors
type Notifier interface {
	SendDirect(ctx context.Context, userID int64, payload string) bool
}
