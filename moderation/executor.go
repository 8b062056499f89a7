package moderation

import (
	"context"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/common"
	"github.com/sirupsen/logrus"
)

// Executor runs moderation actions: guard, notify, apply, record and for warnings the warning bookkeeping.
type Executor struct {
	actuator      PlatformActuator
	members       MembershipSnapshot
	notifications *NotificationDispatcher

	warnings *WarnStore
	audit    *AuditLog

	// optional, nil means every guild uses the default config
	configs *ConfigStore
}

func NewExecutor(actuator PlatformActuator, members MembershipSnapshot, notifier Notifier, warnings *WarnStore, audit *AuditLog, configs *ConfigStore) *Executor {
	return &Executor{
		actuator:      actuator,
		members:       members,
		notifications: NewNotificationDispatcher(notifier),
		warnings:      warnings,
		audit:         audit,
		configs:       configs,
	}
}

// Run carries out req.
//
// Nothing is changed if the request is invalid or the hierarchy check fails. Once the platform
// action has been carried out, the remaining steps run to completion even if ctx is cancelled,
// a failure to record the action is returned as ErrorKindPersistenceFailed with Applied set.
func (e *Executor) Run(ctx context.Context, req ActionRequest) (result *ActionResult, err error) {
	started := time.Now()
	defer func() {
		observeAction(req.Kind, err, time.Since(started))
	}()

	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = DefaultReason
	}

	snapshot, err := e.members.Snapshot(ctx, req.GuildID, req.ActorID, req.TargetID)
	if err != nil {
		return nil, &ActionError{Kind: ErrorKindPlatformActionFailed, Detail: "membership lookup", Err: err}
	}

	// identity rules are checked against the request, not whatever the adapter resolved
	if snapshot.Actor.UserID != req.ActorID || snapshot.Target.UserID != req.TargetID {
		return nil, &ActionError{Kind: ErrorKindPlatformActionFailed, Detail: "membership snapshot does not match the request"}
	}

	if guard := snapshot.Check(); !guard.OK {
		return nil, &ActionError{Kind: ErrorKindPermissionDenied, Rule: guard.Rule}
	}

	// from here on the action is committed
	ctx = context.WithoutCancel(ctx)

	conf := e.guildConfig(ctx, req.GuildID)

	var duration time.Duration
	var durationLabel string
	if req.Kind == KindMute {
		duration = conf.MuteDuration()
		// zero means "no duration given" here, a zero length timeout would be a no-op on the platform
		if req.Duration != nil && *req.Duration > 0 {
			duration = *req.Duration
		}
		durationLabel = common.HumanizeDuration(duration)
	}

	deleteDays := conf.BanDeleteDays()
	if req.DeleteMessageDays != nil {
		deleteDays = clampDeleteDays(*req.DeleteMessageDays)
	}

	_ = e.notifications.Notify(ctx, req.GuildID, req.TargetID, e.renderDM(conf, req.Kind, reason, duration))

	l := logger.WithFields(logrus.Fields{
		"guild":  req.GuildID,
		"kind":   req.Kind,
		"target": req.TargetID,
		"actor":  req.ActorID,
	})

	err = e.apply(ctx, &req, reason, duration, deleteDays)
	if err != nil {
		var partial *partialApplyError
		if errors.As(err, &partial) {
			return nil, e.recordPartial(ctx, l, &req, reason, partial)
		}

		return nil, &ActionError{Kind: ErrorKindPlatformActionFailed, Err: err}
	}

	l.Info("MODERATION: ", req.Kind, " applied, reason: ", reason)

	result = &ActionResult{
		Kind:          req.Kind,
		GuildID:       req.GuildID,
		TargetID:      req.TargetID,
		ActorID:       req.ActorID,
		Reason:        reason,
		Duration:      duration,
		DurationLabel: durationLabel,
	}

	entry, err := e.audit.Append(ctx, &AuditLogEntry{
		GuildID:       req.GuildID,
		Kind:          req.Kind,
		TargetID:      req.TargetID,
		ActorID:       req.ActorID,
		Reason:        reason,
		DurationLabel: durationLabel,
	})
	if err != nil {
		l.WithError(err).Error("failed recording applied action")
		return nil, &ActionError{Kind: ErrorKindPersistenceFailed, Applied: true, Detail: "audit log", Err: err}
	}
	result.AuditEntryID = entry.ID

	if req.Kind != KindWarn {
		return result, nil
	}

	warning, err := e.warnings.Add(ctx, req.GuildID, req.TargetID, req.ActorID, reason)
	if err != nil {
		l.WithError(err).Error("failed storing warning")
		return nil, &ActionError{Kind: ErrorKindPersistenceFailed, Applied: true, Detail: "add warning", Err: err}
	}
	result.WarningID = warning.ID

	count, err := e.warnings.Count(ctx, req.GuildID, req.TargetID)
	if err != nil {
		l.WithError(err).Error("failed counting warnings")
		return nil, &ActionError{Kind: ErrorKindPersistenceFailed, Applied: true, Detail: "count warnings", Err: err}
	}
	result.WarningCount = count

	return result, nil
}

func validateRequest(req *ActionRequest) error {
	invalid := func(detail string) error {
		return &ActionError{Kind: ErrorKindInvalidRequest, Detail: detail}
	}

	if !req.Kind.Valid() {
		return invalid("unknown action kind " + string(req.Kind))
	}

	if req.GuildID == 0 || req.ActorID == 0 || req.TargetID == 0 {
		return invalid("guild, actor and target are required")
	}

	if req.Kind == KindMute && req.Duration != nil {
		if *req.Duration < 0 || *req.Duration > MaxMuteDuration {
			return invalid("mute duration has to be between 0 and 28 days")
		}
	}

	return nil
}

func (e *Executor) apply(ctx context.Context, req *ActionRequest, reason string, duration time.Duration, deleteDays int) error {
	switch req.Kind {
	case KindBan:
		return e.actuator.Ban(ctx, req.GuildID, req.TargetID, reason, deleteDays)
	case KindKick:
		return e.actuator.Kick(ctx, req.GuildID, req.TargetID, reason)
	case KindMute:
		return e.actuator.Timeout(ctx, req.GuildID, req.TargetID, &duration, reason)
	case KindUnmute:
		return e.actuator.Timeout(ctx, req.GuildID, req.TargetID, nil, reason)
	case KindSoftban:
		if err := e.actuator.Ban(ctx, req.GuildID, req.TargetID, reason, deleteDays); err != nil {
			return err
		}

		if err := e.actuator.Unban(ctx, req.GuildID, req.TargetID, reason); err != nil {
			return &partialApplyError{Applied: KindBan, Err: errors.WithMessage(err, "softban unban")}
		}

		return nil
	case KindUnban:
		return e.actuator.Unban(ctx, req.GuildID, req.TargetID, reason)
	case KindNickname:
		return e.actuator.SetNickname(ctx, req.GuildID, req.TargetID, req.Nickname, reason)
	case KindWarn:
		return nil
	}

	return errors.Errorf("unknown action kind %s", req.Kind)
}

// partialApplyError is returned by apply when a multi step action failed after changing the platform,
// Applied is what the target was left with
type partialApplyError struct {
	Applied Kind
	Err     error
}

func (p *partialApplyError) Error() string {
	return p.Err.Error()
}

func (p *partialApplyError) Unwrap() error {
	return p.Err
}

// recordPartial audits what actually happened on the platform before reporting the failure
func (e *Executor) recordPartial(ctx context.Context, l *logrus.Entry, req *ActionRequest, reason string, partial *partialApplyError) error {
	l.WithError(partial.Err).Warn("MODERATION: ", req.Kind, " only partially applied, target left with ", partial.Applied)

	_, err := e.audit.Append(ctx, &AuditLogEntry{
		GuildID:  req.GuildID,
		Kind:     partial.Applied,
		TargetID: req.TargetID,
		ActorID:  req.ActorID,
		Reason:   reason,
	})
	if err != nil {
		l.WithError(err).Error("failed recording partially applied action")
		return &ActionError{Kind: ErrorKindPersistenceFailed, Applied: true, Detail: "audit log", Err: err}
	}

	return &ActionError{Kind: ErrorKindPlatformActionFailed, Applied: true, Err: partial.Err}
}

func (e *Executor) guildConfig(ctx context.Context, guildID int64) *Config {
	if e.configs == nil {
		return &Config{GuildID: guildID}
	}

	conf, err := e.configs.Get(ctx, guildID)
	if err != nil {
		logger.WithError(err).WithField("guild", guildID).Warn("failed retrieving moderation config, using defaults")
		return &Config{GuildID: guildID}
	}

	return conf
}

func (e *Executor) renderDM(conf *Config, kind Kind, reason string, duration time.Duration) string {
	msg, err := RenderDM(conf.DMTemplate(kind), kind, reason, duration)
	if err == nil {
		return msg
	}

	logger.WithError(err).WithField("guild", conf.GuildID).Warn("failed executing dm template, using the default")
	msg, _ = RenderDM(DefaultDMMessage, kind, reason, duration)
	return msg
}
