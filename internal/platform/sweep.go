// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

//go:build !windows

package internal_platform

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/rapidaai/meetingbot/pkg/commons"
)

// SweepZombies enumerates /proc and SIGKILLs any ffmpeg process whose
// command line targets segmentDir, plus any process whose command line
// contains one of workerMarkers. Used by the Dispatcher on startup and by
// /force-reset.
//
// Non-Linux platforms have no /proc to scan; the sweep is then a no-op,
// consistent with the Platform Adapter's fail-soft contract.
func SweepZombies(logger commons.Logger, segmentDir string, workerMarkers []string) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		logger.Debugf("platform: zombie sweep skipped, /proc unavailable: %v", err)
		return
	}
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		cmdline, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "cmdline"))
		if err != nil {
			continue
		}
		cmd := strings.ReplaceAll(string(cmdline), "\x00", " ")
		if !processMatches(cmd, segmentDir, workerMarkers) {
			continue
		}
		if err := syscall.Kill(pid, syscall.SIGKILL); err != nil {
			logger.Warnf("platform: failed to kill stale process pid=%d: %v", pid, err)
			continue
		}
		logger.Infof("platform: killed stale process pid=%d cmd=%q", pid, cmd)
	}
}

func processMatches(cmd, segmentDir string, workerMarkers []string) bool {
	if strings.Contains(cmd, "ffmpeg") && strings.Contains(cmd, segmentDir) {
		return true
	}
	for _, marker := range workerMarkers {
		if strings.Contains(cmd, marker) {
			return true
		}
	}
	return false
}
