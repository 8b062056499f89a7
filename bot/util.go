package bot

import (
	"math"
	"net/http"
	"sort"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/moderation"
	"github.com/bwmarrin/discordgo"
)

// OwnerRank is the rank of the guild owner, above any role
const OwnerRank = math.MaxInt32

// IsRoleAbove returns true if a is above b in the hierarchy, roles with equal positions are ordered by id
func IsRoleAbove(a, b *discordgo.Role) bool {
	if a.Position != b.Position {
		return a.Position > b.Position
	}

	if a.ID == b.ID {
		return false
	}

	return a.ID < b.ID
}

// RoleRanks assigns every role in the guild a rank starting at 1 for the lowest, so ranks are
// unique even for roles sharing a position
func RoleRanks(roles []*discordgo.Role) map[string]int {
	sorted := make([]*discordgo.Role, len(roles))
	copy(sorted, roles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return IsRoleAbove(sorted[j], sorted[i])
	})

	ranks := make(map[string]int, len(sorted))
	for i, r := range sorted {
		ranks[r.ID] = i + 1
	}

	return ranks
}

// MemberRank returns the rank of the member's highest role, 0 for a member with no roles
func MemberRank(guild *discordgo.Guild, ranks map[string]int, member *discordgo.Member) int {
	if member.User != nil && member.User.ID == guild.OwnerID {
		return OwnerRank
	}

	highest := 0
	for _, r := range member.Roles {
		if rank := ranks[r]; rank > highest {
			highest = rank
		}
	}

	return highest
}

// IsMemberAbove returns true if m1 ranks above m2
func IsMemberAbove(guild *discordgo.Guild, m1, m2 *discordgo.Member) bool {
	ranks := RoleRanks(guild.Roles)
	return MemberRank(guild, ranks, m1) > MemberRank(guild, ranks, m2)
}

// IsDiscordErr returns true if err is a discord api error with one of the provided codes
func IsDiscordErr(err error, codes ...int) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}

	for _, c := range codes {
		if restErr.Message.Code == c {
			return true
		}
	}

	return false
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return true
	}

	return IsDiscordErr(err, discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser)
}

// platformError converts discord api errors into the pipeline's error type, other errors get op prepended
func platformError(op string, err error) error {
	if err == nil {
		return nil
	}

	metricsPlatformErrors.WithLabelValues(op).Inc()

	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return errors.WithMessage(err, op)
	}

	pe := &moderation.PlatformError{Message: string(restErr.ResponseBody)}
	if restErr.Message != nil {
		pe.Code = restErr.Message.Code
		pe.Message = restErr.Message.Message
	} else if restErr.Response != nil {
		pe.Message = restErr.Response.Status
	}

	return pe
}
