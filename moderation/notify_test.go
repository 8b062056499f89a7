package moderation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationDispatcher(t *testing.T) {
	ctx := context.Background()

	delivering := &fakeNotifier{deliver: true}
	d := NewNotificationDispatcher(delivering)
	assert.True(t, d.Notify(ctx, 1, 2, "hello"))
	assert.Equal(t, []string{"hello"}, delivering.Sent(2))

	assert.False(t, d.Notify(ctx, 1, 2, "  "), "blank payload")
	assert.Len(t, delivering.Sent(2), 1, "blank payload is not sent")

	failing := &fakeNotifier{deliver: false}
	assert.False(t, NewNotificationDispatcher(failing).Notify(ctx, 1, 2, "hello"))

	panicking := &fakeNotifier{panicMsg: "boom"}
	assert.NotPanics(t, func() {
		assert.False(t, NewNotificationDispatcher(panicking).Notify(ctx, 1, 2, "hello"))
	})

	assert.False(t, NewNotificationDispatcher(nil).Notify(ctx, 1, 2, "hello"))
}
