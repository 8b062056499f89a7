package moderation

import (
	"testing"
)

func TestCheckHierarchy(t *testing.T) {
	const (
		actorID  = 1
		targetID = 2
		botID    = 3
		ownerID  = 4
	)

	member := func(id int64, rank int) MemberRank {
		return MemberRank{UserID: id, Rank: rank, Present: true}
	}

	tests := []struct {
		name   string
		actor  MemberRank
		target MemberRank
		bot    MemberRank
		owner  int64
		want   GuardResult
	}{
		{
			name:   "target below both",
			actor:  member(actorID, 10),
			target: member(targetID, 5),
			bot:    member(botID, 20),
			owner:  ownerID,
			want:   GuardResult{OK: true},
		},
		{
			name:   "self action",
			actor:  member(actorID, 10),
			target: member(actorID, 10),
			bot:    member(botID, 20),
			owner:  ownerID,
			want:   GuardResult{Rule: RuleSelfAction},
		},
		{
			name:   "bot self action",
			actor:  member(actorID, 30),
			target: member(botID, 20),
			bot:    member(botID, 20),
			owner:  ownerID,
			want:   GuardResult{Rule: RuleBotSelfAction},
		},
		{
			name:   "target equal to bot",
			actor:  member(actorID, 30),
			target: member(targetID, 20),
			bot:    member(botID, 20),
			owner:  ownerID,
			want:   GuardResult{Rule: RuleTargetNotLowerThanBot},
		},
		{
			name:   "target above bot and actor reports bot rule first",
			actor:  member(actorID, 5),
			target: member(targetID, 25),
			bot:    member(botID, 20),
			owner:  ownerID,
			want:   GuardResult{Rule: RuleTargetNotLowerThanBot},
		},
		{
			name:   "target equal to actor",
			actor:  member(actorID, 10),
			target: member(targetID, 10),
			bot:    member(botID, 20),
			owner:  ownerID,
			want:   GuardResult{Rule: RuleTargetNotLowerThanActor},
		},
		{
			name:   "target is owner",
			actor:  member(actorID, 10),
			target: member(ownerID, 1),
			bot:    member(botID, 20),
			owner:  ownerID,
			want:   GuardResult{Rule: RuleTargetIsOwner},
		},
		{
			name:   "non member skips rank rules",
			actor:  member(actorID, 1),
			target: MemberRank{UserID: targetID, Rank: 100},
			bot:    member(botID, 1),
			owner:  targetID,
			want:   GuardResult{OK: true},
		},
		{
			name:   "non member self action",
			actor:  member(actorID, 1),
			target: MemberRank{UserID: actorID},
			bot:    member(botID, 1),
			owner:  ownerID,
			want:   GuardResult{Rule: RuleSelfAction},
		},
		{
			name:   "non member bot self action",
			actor:  member(actorID, 1),
			target: MemberRank{UserID: botID},
			bot:    member(botID, 1),
			owner:  ownerID,
			want:   GuardResult{Rule: RuleBotSelfAction},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckHierarchy(tt.actor, tt.target, tt.bot, tt.owner)
			if got != tt.want {
				t.Errorf("CheckHierarchy() = %v, want %v", got, tt.want)
			}

			// pure, same input same output
			if again := CheckHierarchy(tt.actor, tt.target, tt.bot, tt.owner); again != got {
				t.Errorf("CheckHierarchy() not deterministic: %v then %v", got, again)
			}
		})
	}
}
