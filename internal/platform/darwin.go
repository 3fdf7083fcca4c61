// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_platform

import (
	"os"

	"github.com/rapidaai/meetingbot/pkg/commons"
)

type darwinAdapter struct {
	logger         commons.Logger
	ffmpegOverride string
}

func (a *darwinAdapter) AudioDeviceName() string {
	if name := os.Getenv("AVFOUNDATION_AUDIO_DEVICE"); name != "" {
		return name
	}
	return "VB-Cable"
}

func (a *darwinAdapter) FFmpegInputArgs() []string {
	return []string{"-f", "avfoundation", "-i", ":" + a.AudioDeviceName()}
}

func (a *darwinAdapter) FFmpegBinaryPath() string {
	return resolveFFmpegPath(a.ffmpegOverride, "/opt/homebrew/bin/ffmpeg", a.logger)
}

func (a *darwinAdapter) BrowserLaunchArgs(headless bool) []string {
	args := []string{"--use-fake-ui-for-media-stream", "--autoplay-policy=no-user-gesture-required"}
	if headless {
		args = append(args, "--headless=new")
	}
	return args
}

// SetupDisplay is a no-op on macOS; there is no virtual display concept to
// configure here.
func (a *darwinAdapter) SetupDisplay() error { return nil }

// BringToFront is a no-op on macOS.
func (a *darwinAdapter) BringToFront(titleKeywords []string) {
	a.logger.Debugf("platform: BringToFront(%v) is a no-op on darwin", titleKeywords)
}
