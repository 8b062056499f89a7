package bot

import (
	"strconv"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/common"
	"github.com/bwmarrin/discordgo"
)

type Plugin struct{}

func (p *Plugin) PluginInfo() *common.PluginInfo {
	return &common.PluginInfo{
		Name:     "Bot",
		SysName:  "bot",
		Category: common.PluginCategoryCore,
	}
}

var logger = common.GetPluginLogger(&Plugin{})

func RegisterPlugin() {
	common.RegisterPlugin(&Plugin{})
}

// Open creates a session with the intents needed for member lookups and opens the gateway connection
func Open(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("no bot token configured (yagmod.bot_token)")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.WithMessage(err, "discordgo.New")
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	session.StateEnabled = true
	session.State.TrackMembers = true
	session.State.TrackRoles = true

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.WithField("guilds", len(r.Guilds)).Info("Ready received as ", r.User.Username)
	})

	if err := session.Open(); err != nil {
		return nil, errors.WithMessage(err, "session.Open")
	}

	return session, nil
}

func StrID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func ParseID(id string) int64 {
	parsed, _ := strconv.ParseInt(id, 10, 64)
	return parsed
}
