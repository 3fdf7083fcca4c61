// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_platform abstracts OS-specific audio device, ffmpeg
// path, window focus, and browser launch flags. Every
// operation fails soft: a missing OS feature logs and returns a neutral
// result rather than an error, so the rest of the system never has to
// special-case "what OS am I on".
package internal_platform

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/rapidaai/meetingbot/pkg/commons"
)

// Adapter is the capability set the rest of the system depends on instead
// of branching on runtime.GOOS directly.
type Adapter interface {
	// AudioDeviceName returns the name of the virtual-audio capture device
	// ffmpeg should record from.
	AudioDeviceName() string
	// FFmpegInputArgs returns the ffmpeg "-f ... -i ..." input arguments
	// for this OS's audio backend.
	FFmpegInputArgs() []string
	// FFmpegBinaryPath resolves the ffmpeg binary: env override, then
	// PATH, then a known fallback location.
	FFmpegBinaryPath() string
	// BrowserLaunchArgs returns the flags used to start the headless (or
	// headful, on Linux) browser.
	BrowserLaunchArgs(headless bool) []string
	// SetupDisplay configures a virtual display (Xvfb on Linux) if one is
	// required for headful automation. No-op where not needed.
	SetupDisplay() error
	// BringToFront focuses a window whose title contains one of
	// titleKeywords. Windows-only; a no-op everywhere else.
	BringToFront(titleKeywords []string)
}

// New returns the Adapter appropriate for runtime.GOOS.
func New(logger commons.Logger, ffmpegPathOverride string) Adapter {
	switch runtime.GOOS {
	case "windows":
		return &windowsAdapter{logger: logger, ffmpegOverride: ffmpegPathOverride}
	case "darwin":
		return &darwinAdapter{logger: logger, ffmpegOverride: ffmpegPathOverride}
	default:
		return &linuxAdapter{logger: logger, ffmpegOverride: ffmpegPathOverride}
	}
}

// resolveFFmpegPath implements the shared "env override -> PATH -> known
// fallback" resolution order, with a per-OS fallback path.
func resolveFFmpegPath(override, fallback string, logger commons.Logger) string {
	if override != "" {
		return override
	}
	if env := os.Getenv("FFMPEG_PATH"); env != "" {
		return env
	}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path
	}
	logger.Warnf("platform: ffmpeg not found on PATH, falling back to %s", fallback)
	return fallback
}
