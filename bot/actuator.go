package bot

import (
	"context"
	"time"

	"github.com/botlabs-gg/yagmod/moderation"
	"github.com/bwmarrin/discordgo"
)

// Actuator carries out moderation actions through the discord api
type Actuator struct {
	Session *discordgo.Session
}

var _ moderation.PlatformActuator = (*Actuator)(nil)

func NewActuator(session *discordgo.Session) *Actuator {
	return &Actuator{Session: session}
}

func requestOptions(ctx context.Context, reason string) []discordgo.RequestOption {
	return []discordgo.RequestOption{discordgo.WithContext(ctx), discordgo.WithAuditLogReason(reason)}
}

func (a *Actuator) Ban(ctx context.Context, guildID, userID int64, reason string, deleteMessageDays int) error {
	if deleteMessageDays < 0 {
		deleteMessageDays = 0
	} else if deleteMessageDays > moderation.MaxBanDeleteDays {
		deleteMessageDays = moderation.MaxBanDeleteDays
	}

	err := a.Session.GuildBanCreateWithReason(StrID(guildID), StrID(userID), reason, deleteMessageDays, discordgo.WithContext(ctx))
	return platformError("ban", err)
}

func (a *Actuator) Kick(ctx context.Context, guildID, userID int64, reason string) error {
	err := a.Session.GuildMemberDeleteWithReason(StrID(guildID), StrID(userID), reason, discordgo.WithContext(ctx))
	return platformError("kick", err)
}

func (a *Actuator) Timeout(ctx context.Context, guildID, userID int64, duration *time.Duration, reason string) error {
	var until *time.Time
	if duration != nil {
		t := time.Now().Add(*duration)
		until = &t
	}

	err := a.Session.GuildMemberTimeout(StrID(guildID), StrID(userID), until, requestOptions(ctx, reason)...)
	return platformError("timeout", err)
}

func (a *Actuator) Unban(ctx context.Context, guildID, userID int64, reason string) error {
	err := a.Session.GuildBanDelete(StrID(guildID), StrID(userID), requestOptions(ctx, reason)...)
	return platformError("unban", err)
}

func (a *Actuator) SetNickname(ctx context.Context, guildID, userID int64, nickname *string, reason string) error {
	nick := ""
	if nickname != nil {
		nick = *nickname
	}

	err := a.Session.GuildMemberNickname(StrID(guildID), StrID(userID), nick, requestOptions(ctx, reason)...)
	return platformError("nickname", err)
}
