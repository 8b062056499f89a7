package common

import (
	"github.com/botlabs-gg/yagmod/common/config"
	"github.com/sirupsen/logrus"
)

const VERSION = "1.4.0"

var (
	ConfDBDriver = config.RegisterOption("yagmod.db_driver", "Database driver, postgres or sqlite", "postgres")
	ConfDBDSN    = config.RegisterOption("yagmod.db_dsn", "Database connection string (for sqlite a file path)", "host=localhost user=yagmod dbname=yagmod sslmode=disable")
	ConfRedis    = config.RegisterOption("yagmod.redis", "Optional redis address used as a config source", "")
	ConfBotToken = config.RegisterOption("yagmod.bot_token", "Discord bot token", "")

	logger = GetFixedPrefixLogger("common")
)

func SetLogFormatter(formatter logrus.Formatter) {
	logrus.SetFormatter(formatter)
}

func AddLogHook(hook logrus.Hook) {
	logrus.AddHook(hook)
}

// GetPluginLogger returns a logger tagged with the plugin's system name
func GetPluginLogger(plugin Plugin) *logrus.Entry {
	return logrus.WithField("p", plugin.PluginInfo().SysName)
}

func GetFixedPrefixLogger(prefix string) *logrus.Entry {
	return logrus.WithField("p", prefix)
}
