package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/botlabs-gg/yagmod/bot"
	"github.com/botlabs-gg/yagmod/common"
	"github.com/botlabs-gg/yagmod/common/prom"
	"github.com/botlabs-gg/yagmod/common/run"
	"github.com/botlabs-gg/yagmod/moderation"
	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

var (
	flagAction string
	flagRunBot bool

	flagGuild int64
	flagUser  int64
	flagActor int64
	flagID    int64
	flagLimit int

	flagKind     string
	flagReason   string
	flagDuration string
	flagPurge    int
	flagNickname string
)

func init() {
	flag.StringVar(&flagAction, "a", "", "Run a action and exit, available actions: "+actionNames())
	flag.BoolVar(&flagRunBot, "bot", false, "Connect to discord and apply actions read as json lines from stdin until EOF or a signal")

	flag.Int64Var(&flagGuild, "guild", 0, "Guild id for actions")
	flag.Int64Var(&flagUser, "user", 0, "Target user id for actions")
	flag.Int64Var(&flagActor, "actor", 0, "Acting moderator id for the act action")
	flag.Int64Var(&flagID, "id", 0, "Warning id for delwarning")
	flag.IntVar(&flagLimit, "limit", 0, "Max number of rows to print")

	flag.StringVar(&flagKind, "kind", "", "Moderation action kind for the act action (ban, kick, mute, unmute, warn, softban, unban, nickname)")
	flag.StringVar(&flagReason, "reason", "", "Reason for the act action")
	flag.StringVar(&flagDuration, "duration", "", "Mute duration for the act action, e.g. 1d12h")
	flag.IntVar(&flagPurge, "purge", -1, "Days of messages to delete when banning, -1 uses the guild default")
	flag.StringVar(&flagNickname, "nick", "", "New nickname for the nickname action, empty resets it")
}

func main() {
	run.Init()

	if flagAction == "" && !flagRunBot {
		log.Error("Didnt specify what to run, see -h for more info")
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := common.OpenDB(ctx, common.ConfDBDriver.GetString(), common.ConfDBDSN.GetString())
	if err != nil {
		log.WithError(err).Fatal("Failed connecting to database")
	}
	defer db.Close()

	moderation.RegisterPlugin()

	if err := common.InitPluginSchemas(ctx, db); err != nil {
		log.WithError(err).Fatal("Failed initializing schemas")
	}

	if flagAction != "" {
		if err := runAction(ctx, newServices(db), flagAction, argsFromFlags(), os.Stdout); err != nil {
			log.WithError(err).Fatal("Action failed")
		}
		return
	}

	runBot(ctx, db)
}

// services are the stores and, once a session is opened, the executor the actions operate on
type services struct {
	warnings *moderation.WarnStore
	audit    *moderation.AuditLog
	configs  *moderation.ConfigStore

	// connect opens a discord session, it returns an executor using it and a func closing the session
	connect func() (actionRunner, func(), error)
}

func newServices(db *sqlx.DB) *services {
	s := &services{
		warnings: moderation.NewWarnStore(db),
		audit:    moderation.NewAuditLog(db),
		configs:  moderation.NewConfigStore(db),
	}

	s.connect = func() (actionRunner, func(), error) {
		bot.RegisterPlugin()

		session, err := bot.Open(common.ConfBotToken.GetString())
		if err != nil {
			return nil, nil, err
		}

		return s.executor(session), func() { session.Close() }, nil
	}

	return s
}

func (s *services) executor(session *discordgo.Session) *moderation.Executor {
	return moderation.NewExecutor(bot.NewActuator(session), bot.NewMembers(session), bot.NewNotifier(session), s.warnings, s.audit, s.configs)
}

const shutdownTimeout = 30 * time.Second

func runBot(ctx context.Context, db *sqlx.DB) {
	if err := prom.Start(); err != nil {
		log.WithError(err).Error("Failed starting prom server")
	}

	svc := newServices(db)
	executor, closeSession, err := svc.connect()
	if err != nil {
		log.WithError(err).Fatal("Failed connecting to discord")
	}
	defer closeSession()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner := newDrainingRunner(executor)

	done := make(chan error, 1)
	go func() {
		done <- runConsole(ctx, runner, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.WithError(err).Error("Reading actions failed")
		}
	case sig := <-waitForSignal():
		log.Info("Received ", sig, ", shutting down")
		cancel()
	}

	// the session and db are closed by the defers, an action in flight has to be recorded first
	if !runner.Close(shutdownTimeout) {
		log.Warn("Timed out waiting for running actions to finish")
	}

	log.Info("Bye..")
}

func waitForSignal() <-chan os.Signal {
	c := make(chan os.Signal, 1)
	go func() {
		c <- run.WaitForSignal()
	}()
	return c
}
