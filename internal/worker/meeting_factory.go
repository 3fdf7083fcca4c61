// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_worker

import (
	"fmt"

	internal_browser "github.com/rapidaai/meetingbot/internal/browser"
	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	internal_meeting "github.com/rapidaai/meetingbot/internal/meeting"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

// NewMeetingClient selects the Client implementation for platform. The
// Dispatcher deletes the Job on an unrecognized platform before a Worker
// is ever invoked, so reaching the default case here is a bug
// upstream, not a runtime condition to recover from gracefully.
func NewMeetingClient(platform internal_ipc.Platform, logger commons.Logger, launcher internal_browser.Launcher) (internal_meeting.Client, error) {
	switch platform {
	case internal_ipc.PlatformZoom:
		return internal_meeting.NewZoomClient(logger, launcher), nil
	case internal_ipc.PlatformTeams:
		return internal_meeting.NewTeamsClient(logger, launcher), nil
	case internal_ipc.PlatformMeet:
		return internal_meeting.NewMeetClient(logger, launcher), nil
	default:
		return nil, fmt.Errorf("worker: unrecognized platform %q", platform)
	}
}
