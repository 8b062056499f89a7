package moderation

// ModlogAction is display metadata for a kind, used by the DM templates and handed to the presentation layer
type ModlogAction struct {
	Prefix string
	Emoji  string
	Color  int

	Footer string
}

func (m ModlogAction) String() string {
	str := m.Emoji + m.Prefix
	if m.Footer != "" {
		str += " (" + m.Footer + ")"
	}

	return str
}

var (
	MAMute     = ModlogAction{Prefix: "Muted", Emoji: "🔇", Color: 0x57728e}
	MAUnmute   = ModlogAction{Prefix: "Unmuted", Emoji: "🔊", Color: 0x62c65f}
	MAKick     = ModlogAction{Prefix: "Kicked", Emoji: "👢", Color: 0xf2a013}
	MABanned   = ModlogAction{Prefix: "Banned", Emoji: "🔨", Color: 0xd64848}
	MASoftban  = ModlogAction{Prefix: "Softbanned", Emoji: "🧹", Color: 0xe0773a}
	MAUnbanned = ModlogAction{Prefix: "Unbanned", Emoji: "🔓", Color: 0x62c65f}
	MAWarned   = ModlogAction{Prefix: "Warned", Emoji: "⚠", Color: 0xfca253}
	MANickname = ModlogAction{Prefix: "Nickname changed", Emoji: "📝", Color: 0x53fcf9}
)

var kindActions = map[Kind]ModlogAction{
	KindMute:     MAMute,
	KindUnmute:   MAUnmute,
	KindKick:     MAKick,
	KindBan:      MABanned,
	KindSoftban:  MASoftban,
	KindUnban:    MAUnbanned,
	KindWarn:     MAWarned,
	KindNickname: MANickname,
}

// ActionFor returns the display metadata for k
func ActionFor(k Kind) ModlogAction {
	return kindActions[k]
}
