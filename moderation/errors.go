package moderation

import (
	"fmt"

	"emperror.dev/errors"
)

type ErrorKind string

const (
	ErrorKindPermissionDenied     ErrorKind = "PERMISSION_DENIED"
	ErrorKindInvalidRequest       ErrorKind = "INVALID_REQUEST"
	ErrorKindPlatformActionFailed ErrorKind = "PLATFORM_ACTION_FAILED"
	ErrorKindPersistenceFailed    ErrorKind = "PERSISTENCE_FAILED"
)

// ActionError is returned by Executor.Run for every failed action
type ActionError struct {
	Kind ErrorKind

	// Set for ErrorKindPermissionDenied
	Rule RuleCode

	Detail string

	// True if the platform was changed before the failure. Set with ErrorKindPersistenceFailed
	// when recording failed, and with ErrorKindPlatformActionFailed when only the first step of a
	// softban went through (the ban is then recorded as a BAN).
	Applied bool

	Err error
}

func (e *ActionError) Error() string {
	str := string(e.Kind)
	if e.Rule != "" {
		str += " (" + string(e.Rule) + ")"
	}
	if e.Detail != "" {
		str += ": " + e.Detail
	}
	if e.Err != nil {
		str += ": " + e.Err.Error()
	}

	return str
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// ErrorKindOf returns the kind of the ActionError in err's chain, or an empty kind if there is none
func ErrorKindOf(err error) ErrorKind {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Kind
	}

	return ""
}

// PlatformError is a failure reported by the platform, Code is the platform's own error code when it has one
type PlatformError struct {
	Code    int
	Message string
}

func (p *PlatformError) Error() string {
	if p.Code == 0 {
		return "platform error: " + p.Message
	}

	return fmt.Sprintf("platform error %d: %s", p.Code, p.Message)
}
