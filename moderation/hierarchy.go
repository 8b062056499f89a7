package moderation

// RuleCode identifies the hierarchy rule that rejected an action
type RuleCode string

const (
	RuleSelfAction              RuleCode = "SELF_ACTION"
	RuleBotSelfAction           RuleCode = "BOT_SELF_ACTION"
	RuleTargetNotLowerThanBot   RuleCode = "TARGET_NOT_LOWER_THAN_BOT"
	RuleTargetNotLowerThanActor RuleCode = "TARGET_NOT_LOWER_THAN_ACTOR"
	RuleTargetIsOwner           RuleCode = "TARGET_IS_OWNER"
)

// MemberRank is a user's position in the guild's role hierarchy, higher is more privileged.
// Present is false if the user is not a member of the guild.
type MemberRank struct {
	UserID  int64
	Rank    int
	Present bool
}

// HierarchySnapshot is the state CheckHierarchy is evaluated against
type HierarchySnapshot struct {
	Actor   MemberRank
	Target  MemberRank
	Bot     MemberRank
	OwnerID int64
}

type GuardResult struct {
	OK   bool
	Rule RuleCode
}

func (g GuardResult) String() string {
	if g.OK {
		return "ok"
	}
	return string(g.Rule)
}

func allow() GuardResult {
	return GuardResult{OK: true}
}

func deny(rule RuleCode) GuardResult {
	return GuardResult{Rule: rule}
}

// CheckHierarchy returns whether actor may act on target, the first failing rule wins.
// Rank rules only apply to targets that are members, the identity rules always apply.
func CheckHierarchy(actor, target, bot MemberRank, ownerID int64) GuardResult {
	if target.UserID == actor.UserID {
		return deny(RuleSelfAction)
	}

	if target.UserID == bot.UserID {
		return deny(RuleBotSelfAction)
	}

	if !target.Present {
		return allow()
	}

	if target.Rank >= bot.Rank {
		return deny(RuleTargetNotLowerThanBot)
	}

	if target.Rank >= actor.Rank {
		return deny(RuleTargetNotLowerThanActor)
	}

	if target.UserID == ownerID {
		return deny(RuleTargetIsOwner)
	}

	return allow()
}

// Check runs CheckHierarchy against the snapshot
func (s *HierarchySnapshot) Check() GuardResult {
	return CheckHierarchy(s.Actor, s.Target, s.Bot, s.OwnerID)
}
