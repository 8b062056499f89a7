package bot

import (
	"context"
	"sync"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/moderation"
	"github.com/bwmarrin/discordgo"
)

// Members builds hierarchy snapshots from the session state, falling back to the api for
// guilds and members that aren't cached
type Members struct {
	Session *discordgo.Session

	// only a successful lookup is cached, a failed one is retried on the next snapshot
	botIDMu sync.Mutex
	botID   int64
}

var _ moderation.MembershipSnapshot = (*Members)(nil)

func NewMembers(session *discordgo.Session) *Members {
	return &Members{Session: session}
}

func (m *Members) Snapshot(ctx context.Context, guildID, actorID, targetID int64) (*moderation.HierarchySnapshot, error) {
	botID, err := m.botUserID(ctx)
	if err != nil {
		return nil, err
	}

	guild, err := m.guild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	return snapshotFromGuild(guild, func(userID int64) (*discordgo.Member, error) {
		return m.member(ctx, guildID, userID)
	}, actorID, targetID, botID)
}

// snapshotFromGuild resolves the three members involved against the guild's roles
func snapshotFromGuild(guild *discordgo.Guild, fetch func(userID int64) (*discordgo.Member, error), actorID, targetID, botID int64) (*moderation.HierarchySnapshot, error) {
	ranks := RoleRanks(guild.Roles)

	rank := func(userID int64) (moderation.MemberRank, error) {
		mr := moderation.MemberRank{UserID: userID}

		member, err := fetch(userID)
		if err != nil {
			return mr, err
		}

		if member == nil {
			return mr, nil
		}

		mr.Present = true
		if StrID(userID) == guild.OwnerID {
			mr.Rank = OwnerRank
		} else {
			mr.Rank = MemberRank(guild, ranks, member)
		}

		return mr, nil
	}

	snapshot := &moderation.HierarchySnapshot{OwnerID: ParseID(guild.OwnerID)}

	var err error
	if snapshot.Actor, err = rank(actorID); err != nil {
		return nil, errors.WithMessage(err, "actor")
	}
	if snapshot.Target, err = rank(targetID); err != nil {
		return nil, errors.WithMessage(err, "target")
	}
	if snapshot.Bot, err = rank(botID); err != nil {
		return nil, errors.WithMessage(err, "bot")
	}

	return snapshot, nil
}

// botUserID returns the id of the bot user, from the ready event if it has been received
func (m *Members) botUserID(ctx context.Context) (int64, error) {
	if m.Session.State != nil && m.Session.State.User != nil {
		return ParseID(m.Session.State.User.ID), nil
	}

	m.botIDMu.Lock()
	defer m.botIDMu.Unlock()

	if m.botID != 0 {
		return m.botID, nil
	}

	u, err := m.Session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return 0, platformError("user", err)
	}

	m.botID = ParseID(u.ID)
	return m.botID, nil
}

func (m *Members) guild(ctx context.Context, guildID int64) (*discordgo.Guild, error) {
	if g, err := m.Session.State.Guild(StrID(guildID)); err == nil && len(g.Roles) > 0 {
		return g, nil
	}

	g, err := m.Session.Guild(StrID(guildID), discordgo.WithContext(ctx))
	if err != nil {
		return nil, platformError("guild", err)
	}

	return g, nil
}

// member returns nil without an error if the user is not in the guild
func (m *Members) member(ctx context.Context, guildID, userID int64) (*discordgo.Member, error) {
	if ms, err := m.Session.State.Member(StrID(guildID), StrID(userID)); err == nil {
		metricsMemberLookups.WithLabelValues("state").Inc()
		return ms, nil
	}

	metricsMemberLookups.WithLabelValues("rest").Inc()
	ms, err := m.Session.GuildMember(StrID(guildID), StrID(userID), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}

		return nil, platformError("member", err)
	}

	return ms, nil
}
