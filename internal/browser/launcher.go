// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_browser

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

// processLauncher starts a local Chromium/Chrome binary with remote
// debugging enabled, then dials its first tab over CDP.
type processLauncher struct {
	logger      commons.Logger
	binaryPath  string
	debugPort   int
	restyClient *resty.Client
}

// NewProcessLauncher returns a Launcher that execs binaryPath with
// --remote-debugging-port=debugPort plus whatever launch args the caller
// supplies at Launch time.
func NewProcessLauncher(logger commons.Logger, binaryPath string, debugPort int) Launcher {
	return &processLauncher{
		logger:      logger,
		binaryPath:  binaryPath,
		debugPort:   debugPort,
		restyClient: resty.New().SetTimeout(5 * time.Second),
	}
}

func (l *processLauncher) Launch(ctx context.Context, args []string) (Page, error) {
	fullArgs := append([]string{fmt.Sprintf("--remote-debugging-port=%d", l.debugPort)}, args...)
	cmd := exec.CommandContext(context.Background(), l.binaryPath, fullArgs...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("browser: failed to launch %s: %w", l.binaryPath, err)
	}
	l.logger.Infof("browser: launched %s (pid=%d) with debug port %d", l.binaryPath, cmd.Process.Pid, l.debugPort)

	debuggerURL, err := l.waitForDebuggerURL(ctx)
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}
	return Dial(ctx, l.logger, debuggerURL)
}

type targetInfo struct {
	Type                 string `json:"type"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// waitForDebuggerURL polls the browser's /json/list endpoint until the
// first "page" target is ready, since the devtools HTTP server starts
// asynchronously relative to process launch.
func (l *processLauncher) waitForDebuggerURL(ctx context.Context) (string, error) {
	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		var targets []targetInfo
		resp, err := l.restyClient.R().SetContext(ctx).SetResult(&targets).
			Get(fmt.Sprintf("http://127.0.0.1:%d/json/list", l.debugPort))
		if err == nil && resp.IsSuccess() {
			for _, t := range targets {
				if t.Type == "page" && t.WebSocketDebuggerURL != "" {
					return t.WebSocketDebuggerURL, nil
				}
			}
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
	}
	return "", fmt.Errorf("browser: devtools endpoint on port %d never became ready", l.debugPort)
}
