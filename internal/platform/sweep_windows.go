// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

//go:build windows

package internal_platform

import "github.com/rapidaai/meetingbot/pkg/commons"

// SweepZombies has no /proc to scan on Windows; deployments on this OS are
// expected to run under a supervisor that restarts on crash instead.
func SweepZombies(logger commons.Logger, segmentDir string, workerMarkers []string) {
	logger.Debugf("platform: zombie sweep is a no-op on windows")
}
