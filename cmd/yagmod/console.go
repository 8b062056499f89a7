package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/moderation"
)

type consoleRequest struct {
	Kind              string  `json:"kind"`
	GuildID           int64   `json:"guild_id"`
	ActorID           int64   `json:"actor_id"`
	TargetID          int64   `json:"target_id"`
	Reason            string  `json:"reason"`
	Duration          string  `json:"duration"`
	DeleteMessageDays *int    `json:"delete_message_days"`
	Nickname          *string `json:"nickname"`
}

type consoleResponse struct {
	OK     bool                     `json:"ok"`
	Result *moderation.ActionResult `json:"result,omitempty"`

	ErrorKind moderation.ErrorKind `json:"error_kind,omitempty"`
	Rule      moderation.RuleCode  `json:"rule,omitempty"`
	Applied   bool                 `json:"applied,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// runConsole applies one action per json line read from r and writes one response line per request to w.
// It returns when r is exhausted or ctx is cancelled.
func runConsole(ctx context.Context, runner actionRunner, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := enc.Encode(handleConsoleLine(ctx, runner, line)); err != nil {
			return errors.WithMessage(err, "write response")
		}
	}

	return scanner.Err()
}

func handleConsoleLine(ctx context.Context, runner actionRunner, line string) *consoleResponse {
	var creq consoleRequest
	if err := json.Unmarshal([]byte(line), &creq); err != nil {
		return &consoleResponse{ErrorKind: moderation.ErrorKindInvalidRequest, Error: err.Error()}
	}

	req, err := buildRequest(creq.Kind, creq.GuildID, creq.ActorID, creq.TargetID, creq.Reason, creq.Duration, creq.DeleteMessageDays, creq.Nickname)
	if err != nil {
		return &consoleResponse{ErrorKind: moderation.ErrorKindInvalidRequest, Error: err.Error()}
	}

	result, err := runner.Run(ctx, req)
	if err != nil {
		resp := &consoleResponse{Error: err.Error()}

		var ae *moderation.ActionError
		if errors.As(err, &ae) {
			resp.ErrorKind = ae.Kind
			resp.Rule = ae.Rule
			resp.Applied = ae.Applied
		}

		return resp
	}

	return &consoleResponse{OK: true, Result: result}
}

var errShuttingDown = errors.Sentinel("shutting down, action not applied")

// drainingRunner refuses new actions once closed, Close waits for the ones already running
type drainingRunner struct {
	runner actionRunner

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

func newDrainingRunner(runner actionRunner) *drainingRunner {
	return &drainingRunner{runner: runner}
}

func (d *drainingRunner) Run(ctx context.Context, req moderation.ActionRequest) (*moderation.ActionResult, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, errShuttingDown
	}
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()
	return d.runner.Run(ctx, req)
}

// Close stops accepting actions and waits up to timeout for running ones to finish.
// Returns false if they didn't finish in time.
func (d *drainingRunner) Close(timeout time.Duration) bool {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}
