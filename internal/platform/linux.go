// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_platform

import (
	"os"
	"os/exec"

	"github.com/rapidaai/meetingbot/pkg/commons"
)

type linuxAdapter struct {
	logger         commons.Logger
	ffmpegOverride string
}

// AudioDeviceName returns the Pulse monitor sink carrying meeting audio.
func (a *linuxAdapter) AudioDeviceName() string {
	if name := os.Getenv("PULSE_MONITOR_SOURCE"); name != "" {
		return name
	}
	return "meetingbot_sink.monitor"
}

func (a *linuxAdapter) FFmpegInputArgs() []string {
	return []string{"-f", "pulse", "-i", a.AudioDeviceName()}
}

func (a *linuxAdapter) FFmpegBinaryPath() string {
	return resolveFFmpegPath(a.ffmpegOverride, "/usr/bin/ffmpeg", a.logger)
}

func (a *linuxAdapter) BrowserLaunchArgs(headless bool) []string {
	args := []string{
		"--no-sandbox",
		"--disable-dev-shm-usage",
		"--use-fake-ui-for-media-stream",
		"--autoplay-policy=no-user-gesture-required",
	}
	if headless {
		// Linux still runs headful under Xvfb (required for reliable
		// speaker detection); headless is only honored when the
		// caller has no DISPLAY available at all.
		if os.Getenv("DISPLAY") == "" {
			args = append(args, "--headless=new")
		}
	}
	return args
}

// SetupDisplay starts Xvfb on :99 if DISPLAY is not already set, since
// Linux speaker detection needs a real compositor, not headless mode.
func (a *linuxAdapter) SetupDisplay() error {
	if os.Getenv("DISPLAY") != "" {
		return nil
	}
	display := ":99"
	cmd := exec.Command("Xvfb", display, "-screen", "0", "1920x1080x24", "-nolisten", "tcp")
	if err := cmd.Start(); err != nil {
		a.logger.Warnf("platform: failed to start Xvfb, continuing without a virtual display: %v", err)
		return nil
	}
	os.Setenv("DISPLAY", display)
	a.logger.Infof("platform: Xvfb started on display %s (pid=%d)", display, cmd.Process.Pid)
	return nil
}

// BringToFront is a no-op on Linux.
func (a *linuxAdapter) BringToFront(titleKeywords []string) {
	a.logger.Debugf("platform: BringToFront(%v) is a no-op on linux", titleKeywords)
}
