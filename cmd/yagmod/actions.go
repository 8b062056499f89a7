package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/common"
	"github.com/botlabs-gg/yagmod/moderation"
	"github.com/jedib0t/go-pretty/table"
)

type actionRunner interface {
	Run(ctx context.Context, req moderation.ActionRequest) (*moderation.ActionResult, error)
}

type actionArgs struct {
	GuildID int64
	UserID  int64
	ActorID int64
	ID      int64
	Limit   int

	Kind     string
	Reason   string
	Duration string
	Purge    int
	Nickname string
}

func argsFromFlags() *actionArgs {
	return &actionArgs{
		GuildID:  flagGuild,
		UserID:   flagUser,
		ActorID:  flagActor,
		ID:       flagID,
		Limit:    flagLimit,
		Kind:     flagKind,
		Reason:   flagReason,
		Duration: flagDuration,
		Purge:    flagPurge,
		Nickname: flagNickname,
	}
}

type adminAction struct {
	Name        string
	Description string
	Run         func(ctx context.Context, svc *services, args *actionArgs, w io.Writer) error
}

var adminActions = []*adminAction{
	{Name: "warnings", Description: "list the warnings of -user in -guild", Run: actionWarnings},
	{Name: "clearwarnings", Description: "remove all warnings of -user in -guild", Run: actionClearWarnings},
	{Name: "delwarning", Description: "remove warning -id in -guild", Run: actionDelWarning},
	{Name: "auditlog", Description: "show the audit log of -user in -guild", Run: actionAuditLog},
	{Name: "topwarnings", Description: "show the most warned users in -guild", Run: actionTopWarnings},
	{Name: "act", Description: "apply -kind to -user in -guild as -actor", Run: actionAct},
}

func actionNames() string {
	names := make([]string, 0, len(adminActions))
	for _, v := range adminActions {
		names = append(names, v.Name)
	}

	return strings.Join(names, ", ")
}

func runAction(ctx context.Context, svc *services, name string, args *actionArgs, w io.Writer) error {
	for _, v := range adminActions {
		if v.Name == name {
			return v.Run(ctx, svc, args, w)
		}
	}

	return errors.Errorf("unknown action %q, available actions: %s", name, actionNames())
}

var (
	errNoGuild = errors.Sentinel("-guild is required")
	errNoUser  = errors.Sentinel("-user is required")
)

func actionWarnings(ctx context.Context, svc *services, args *actionArgs, w io.Writer) error {
	if args.GuildID == 0 {
		return errNoGuild
	}
	if args.UserID == 0 {
		return errNoUser
	}

	warnings, err := svc.warnings.List(ctx, args.GuildID, args.UserID)
	if err != nil {
		return err
	}

	total := len(warnings)
	if args.Limit > 0 && len(warnings) > args.Limit {
		warnings = warnings[:args.Limit]
	}

	tb := table.NewWriter()
	tb.AppendHeader(table.Row{"id", "created", "actor", "reason"})
	for _, v := range warnings {
		tb.AppendRow(table.Row{fmt.Sprintf("#%d", v.ID), v.CreatedAt.Format(time.RFC3339), v.ActorID, v.Reason})
	}

	fmt.Fprintln(w, tb.Render())
	fmt.Fprintf(w, "%d warnings total\n", total)
	return nil
}

func actionClearWarnings(ctx context.Context, svc *services, args *actionArgs, w io.Writer) error {
	if args.GuildID == 0 {
		return errNoGuild
	}
	if args.UserID == 0 {
		return errNoUser
	}

	n, err := svc.warnings.Clear(ctx, args.GuildID, args.UserID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Cleared %d warnings\n", n)
	return nil
}

func actionDelWarning(ctx context.Context, svc *services, args *actionArgs, w io.Writer) error {
	if args.GuildID == 0 {
		return errNoGuild
	}
	if args.ID == 0 {
		return errors.New("-id is required")
	}

	n, err := svc.warnings.RemoveByID(ctx, args.ID, args.GuildID)
	if err != nil {
		return err
	}

	if n == 0 {
		fmt.Fprintf(w, "No warning with id #%d\n", args.ID)
	} else {
		fmt.Fprintf(w, "Deleted warning #%d\n", args.ID)
	}
	return nil
}

func actionAuditLog(ctx context.Context, svc *services, args *actionArgs, w io.Writer) error {
	if args.GuildID == 0 {
		return errNoGuild
	}
	if args.UserID == 0 {
		return errNoUser
	}

	entries, err := svc.audit.QueryByTarget(ctx, args.GuildID, args.UserID, args.Limit)
	if err != nil {
		return err
	}

	tb := table.NewWriter()
	tb.AppendHeader(table.Row{"id", "created", "action", "actor", "duration", "reason"})
	for _, v := range entries {
		tb.AppendRow(table.Row{v.ID, v.CreatedAt.Format(time.RFC3339), moderation.ActionFor(v.Kind).Prefix, v.ActorID, v.DurationLabel, v.Reason})
	}

	fmt.Fprintln(w, tb.Render())
	return nil
}

func actionTopWarnings(ctx context.Context, svc *services, args *actionArgs, w io.Writer) error {
	if args.GuildID == 0 {
		return errNoGuild
	}

	limit := args.Limit
	if limit <= 0 {
		limit = 10
	}

	entries, err := svc.warnings.TopWarned(ctx, args.GuildID, 0, limit)
	if err != nil {
		return err
	}

	tb := table.NewWriter()
	tb.AppendHeader(table.Row{"rank", "user", "warnings"})
	for _, v := range entries {
		tb.AppendRow(table.Row{fmt.Sprintf("#%d", v.Rank), v.UserID, v.WarnCount})
	}

	fmt.Fprintln(w, tb.Render())
	return nil
}

func actionAct(ctx context.Context, svc *services, args *actionArgs, w io.Writer) error {
	var purge *int
	if args.Purge >= 0 {
		purge = &args.Purge
	}

	var nick *string
	if args.Nickname != "" {
		nick = &args.Nickname
	}

	req, err := buildRequest(args.Kind, args.GuildID, args.ActorID, args.UserID, args.Reason, args.Duration, purge, nick)
	if err != nil {
		return err
	}

	executor, closeSession, err := svc.connect()
	if err != nil {
		return errors.WithMessage(err, "connect")
	}
	defer closeSession()

	result, err := executor.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, formatResult(result))
	return nil
}

// buildRequest creates a request from loosely typed input, the duration is parsed with common.ParseDuration
func buildRequest(kind string, guildID, actorID, targetID int64, reason, duration string, purge *int, nick *string) (moderation.ActionRequest, error) {
	k, ok := moderation.ParseKind(kind)
	if !ok {
		return moderation.ActionRequest{}, errors.Errorf("unknown kind %q", kind)
	}

	req := moderation.ActionRequest{
		Kind:              k,
		GuildID:           guildID,
		ActorID:           actorID,
		TargetID:          targetID,
		Reason:            reason,
		DeleteMessageDays: purge,
		Nickname:          nick,
	}

	if duration != "" {
		d, ok := common.ParseDuration(duration)
		if !ok {
			return req, errors.Errorf("invalid duration %q", duration)
		}
		req.Duration = &d
	}

	return req, nil
}

func formatResult(r *moderation.ActionResult) string {
	action := moderation.ActionFor(r.Kind)

	out := fmt.Sprintf("%s %d (audit #%d)", action.String(), r.TargetID, r.AuditEntryID)
	if r.DurationLabel != "" {
		out += " for " + r.DurationLabel
	}
	if r.Kind == moderation.KindWarn {
		out += fmt.Sprintf(", warning #%d, %d warnings total", r.WarningID, r.WarningCount)
	}

	return out + ": " + r.Reason
}
