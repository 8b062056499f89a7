package run

import (
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/botlabs-gg/yagmod/common"
	"github.com/botlabs-gg/yagmod/common/config"
	"github.com/botlabs-gg/yagmod/common/sentryhook"
	"github.com/getsentry/sentry-go"
	"github.com/natefinch/lumberjack"
	log "github.com/sirupsen/logrus"
)

var (
	flagLogTimestamp bool
	flagLogFile      string

	flagSysLog     bool
	flagLogAppName string

	flagGenConfigDocs bool
	flagVersion       bool
)

var confSentryDSN = config.RegisterOption("yagmod.sentry_dsn", "Sentry credentials for sentry logging hook", "")

func init() {
	flag.BoolVar(&flagLogTimestamp, "ts", false, "Set to include timestamps in log")
	flag.StringVar(&flagLogFile, "logfile", "", "Also write logs to this file, rotated at 100MB")
	flag.BoolVar(&flagSysLog, "syslog", false, "Set to log to syslog (only linux)")
	flag.StringVar(&flagLogAppName, "logappname", "yagmod", "When using syslog, the application name will be set to this")
	flag.BoolVar(&flagGenConfigDocs, "genconfigdocs", false, "Generate config docs and exit")
	flag.BoolVar(&flagVersion, "version", false, "Print the version and exit")
}

// Init parses the flags, sets up logging and loads the config.
// -version and -genconfigdocs are handled here and exit the process.
func Init() {
	if !flag.Parsed() {
		flag.Parse()
	}

	if flagVersion {
		fmt.Println(common.VERSION)
		os.Exit(0)
	}

	common.AddLogHook(common.ContextHook{})

	// discordgo and friends log through the standard logger
	stdlog.SetOutput(&common.STDLogProxy{})
	stdlog.SetFlags(0)

	common.SetLogFormatter(&log.TextFormatter{
		DisableTimestamp: !flagLogTimestamp,
		SortingFunc:      logrusSortingFunc,
	})

	if flagLogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   flagLogFile,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
		}))
	}

	if flagSysLog {
		AddSyslogHooks()
	}

	loadConfig()

	if flagGenConfigDocs {
		GenConfigDocs(os.Stdout)
		os.Exit(0)
	}

	if confSentryDSN.GetString() != "" {
		addSentryHook()
	}

	log.Info("Starting yagmod version " + common.VERSION)
}

// loadConfig loads options from the environment and, when yagmod.redis is set, the redis config hash.
// Redis values take precedence.
func loadConfig() {
	config.AddSource(&config.EnvSource{})
	config.Load()

	addr := common.ConfRedis.GetString()
	if addr == "" {
		return
	}

	store, err := config.NewRedisConfigStore(addr, 2)
	if err != nil {
		log.WithError(err).Error("Failed connecting to redis config source, using env only")
		return
	}

	config.AddSource(store)
	config.Load()
}

// WaitForSignal blocks until the process receives SIGINT or SIGTERM
func WaitForSignal() os.Signal {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	return <-c
}

func addSentryHook() {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:     confSentryDSN.GetString(),
		Release: common.VERSION,
	})

	if err == nil {
		hook := &sentryhook.Hook{}
		common.AddLogHook(hook)
		log.Info("Added Sentry Hook")
	} else {
		log.WithError(err).Error("Failed adding sentry hook")
	}
}

var logSortPriority = []string{
	"time",
	"level",
	"p",
	"msg",
	"stck",
}

func logrusSortingFunc(fields []string) {
	sort.Slice(fields, func(i, j int) bool {

		iPriority := findStringIndex(logSortPriority, fields[i])
		jPriority := findStringIndex(logSortPriority, fields[j])

		if iPriority != -1 && jPriority == -1 {
			return true
		} else if jPriority != -1 && iPriority == -1 {
			return false
		} else if iPriority == -1 && jPriority == -1 {
			return strings.Compare(fields[i], fields[j]) < 0
		}

		// both has priority
		return iPriority < jPriority
	})
}

func findStringIndex(slice []string, s string) int {
	for i, v := range slice {
		if v == s {
			return i
		}
	}

	return -1
}
