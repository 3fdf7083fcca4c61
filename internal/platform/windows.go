// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rapidaai/meetingbot/pkg/commons"
)

type windowsAdapter struct {
	logger         commons.Logger
	ffmpegOverride string
}

func (a *windowsAdapter) AudioDeviceName() string {
	if name := os.Getenv("DIRECTSHOW_AUDIO_DEVICE"); name != "" {
		return name
	}
	return "CABLE Output (VB-Audio Virtual Cable)"
}

func (a *windowsAdapter) FFmpegInputArgs() []string {
	return []string{"-f", "dshow", "-i", fmt.Sprintf("audio=%s", a.AudioDeviceName())}
}

func (a *windowsAdapter) FFmpegBinaryPath() string {
	return resolveFFmpegPath(a.ffmpegOverride, `C:\ffmpeg\bin\ffmpeg.exe`, a.logger)
}

func (a *windowsAdapter) BrowserLaunchArgs(headless bool) []string {
	args := []string{"--use-fake-ui-for-media-stream", "--autoplay-policy=no-user-gesture-required"}
	if headless {
		args = append(args, "--headless=new")
	}
	return args
}

// SetupDisplay is a no-op on Windows; there is no headless display server
// to configure.
func (a *windowsAdapter) SetupDisplay() error { return nil }

// BringToFront shells out to a small PowerShell snippet that activates the
// first top-level window whose title contains any of titleKeywords. This
// is the one genuinely OS-specific affordance among the adapter methods;
// failure is logged and swallowed rather than surfaced, matching the
// fail-soft contract every Platform Adapter method follows.
func (a *windowsAdapter) BringToFront(titleKeywords []string) {
	if len(titleKeywords) == 0 {
		return
	}
	pattern := strings.Join(titleKeywords, "|")
	script := fmt.Sprintf(`
$w = Get-Process | Where-Object { $_.MainWindowTitle -match '%s' } | Select-Object -First 1
if ($w) {
  Add-Type -TypeDefinition 'using System;using System.Runtime.InteropServices;public class W{[DllImport("user32.dll")]public static extern bool SetForegroundWindow(IntPtr h);}'
  [W]::SetForegroundWindow($w.MainWindowHandle)
}`, pattern)

	cmd := exec.Command("powershell", "-NoProfile", "-Command", script)
	if err := cmd.Run(); err != nil {
		a.logger.Warnf("platform: BringToFront failed for keywords %v: %v", titleKeywords, err)
	}
}
