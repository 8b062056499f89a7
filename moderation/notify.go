package moderation

import (
	"context"
	"strings"
)

// NotificationDispatcher delivers best effort direct messages to action targets.
// It never fails: every problem, including a panicking notifier, results in false.
type NotificationDispatcher struct {
	notifier Notifier
}

func NewNotificationDispatcher(notifier Notifier) *NotificationDispatcher {
	return &NotificationDispatcher{notifier: notifier}
}

// Notify sends payload to the target and returns whether it was delivered
func (d *NotificationDispatcher) Notify(ctx context.Context, guildID, targetID int64, payload string) (delivered bool) {
	if d == nil || d.notifier == nil || strings.TrimSpace(payload) == "" {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			delivered = false
		}

		observeDM(delivered)
	}()

	return d.notifier.SendDirect(ctx, targetID, payload)
}
