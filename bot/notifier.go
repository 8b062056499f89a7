package bot

import (
	"context"

	"github.com/botlabs-gg/yagmod/moderation"
	"github.com/bwmarrin/discordgo"
)

const maxMessageLength = 2000

// Notifier sends direct messages to users
type Notifier struct {
	Session *discordgo.Session
}

var _ moderation.Notifier = (*Notifier)(nil)

func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{Session: session}
}

func (n *Notifier) SendDirect(ctx context.Context, userID int64, payload string) bool {
	channel, err := n.Session.UserChannelCreate(StrID(userID), discordgo.WithContext(ctx))
	if err != nil {
		logger.WithError(err).WithField("user", userID).Debug("failed creating dm channel")
		return false
	}

	_, err = n.Session.ChannelMessageSend(channel.ID, truncate(payload, maxMessageLength), discordgo.WithContext(ctx))
	if err != nil {
		logger.WithError(err).WithField("user", userID).Debug("failed sending dm")
		return false
	}

	return true
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}

	return string(runes[:maxRunes])
}
