// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_meeting implements the per-platform browser automation
// capability set: join, chat, participant panel
// control, speaker detection, and end detection. The three concrete
// platforms (Zoom, Teams, Meet) share one baseClient for the tiered
// speaker-detection heuristics, name filtering, and alone/end timers; each
// platform supplies only its own selector tables and join flow.
package internal_meeting

import (
	"context"
	"time"

	internal_browser "github.com/rapidaai/meetingbot/internal/browser"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

// State is the Meeting Client's lifecycle state machine.
type State string

const (
	StateInit     State = "init"
	StateJoining  State = "joining"
	StateInLobby  State = "in_lobby"
	StateInMeeting State = "in_meeting"
	StateEnding   State = "ending"
	StateClosed   State = "closed"
)

// EndReason classifies why check_meeting_ended returned true.
type EndReason string

const (
	EndReasonNormal       EndReason = "normal"
	EndReasonInvalidLink  EndReason = "invalid_link"
	EndReasonControlsLost EndReason = "controls_lost"
)

// Client is the capability set every platform adapter implements: a single
// interface replacing three otherwise ad-hoc per-platform classes.
type Client interface {
	// Start launches the browser and keeps its page. Only the Teams client
	// injects a bootstrap script for its internal signal channel (Tier A),
	// evaluated on that page before any navigation happens; the Zoom and
	// Meet clients inject nothing.
	Start(ctx context.Context) error
	// Join drives the platform-specific join flow and returns whether the
	// bot was admitted.
	Join(ctx context.Context, meetingURL, displayName, passcode string) (bool, error)
	// SendChat posts message to the meeting chat.
	SendChat(ctx context.Context, message string) error
	// OpenParticipantsPanel / CloseParticipantsPanel toggle the roster UI.
	OpenParticipantsPanel(ctx context.Context) error
	CloseParticipantsPanel(ctx context.Context) error
	// ActiveSpeakers returns the ordered set of currently speaking
	// participant display names, using the tiered strategy.
	ActiveSpeakers(ctx context.Context) ([]string, error)
	// Participants enumerates the current roster.
	Participants(ctx context.Context) ([]string, error)
	// CheckMeetingEnded reports whether the meeting has ended, why, and (for
	// EndReasonInvalidLink) a human-readable detail message naming the
	// platform and the matched phrase.
	CheckMeetingEnded(ctx context.Context) (bool, EndReason, string, error)
	// Close tears down the browser session.
	Close(ctx context.Context) error
	// State returns the current lifecycle state.
	State() State
}

// Platform-agnostic non-human labels filtered from every speaker/participant
// result.
var excludedNameSubstrings = []string{
	"frame", "pen_spark", "more_vert", "mic_off", "videocam_off",
	"localhost", "panel", "bot",
}

// selectorTiers groups a platform's candidate CSS selectors from most to
// least specific, so a page markup change only breaks the first tier rather
// than the whole probe.
type selectorTiers struct {
	chatToggle       []string
	chatInput        []string
	chatClose        []string
	participantsBtn  []string
	joinButton       []string
	muteButtons      []string
	cameraButtons    []string
	inMeetingMarker  []string
	endTexts         []string
	invalidTexts     []string
	invalidLinkLabel string
}

// baseClient implements the platform-independent parts of Client: state
// tracking, alone/end timers, panel pressed-state cool-down, and the
// Tier B/C speaker-detection DOM heuristics that are identical in spirit
// across platforms even though the exact selectors differ.
type baseClient struct {
	logger commons.Logger
	page   internal_browser.Page

	state State

	botDisplayName string
	selectors      selectorTiers

	panelOpenedByUs   bool
	lastPanelToggleAt time.Time

	aloneTimeout    time.Duration
	aloneSince      time.Time
	aloneObserved   bool
	controlsLostHit int

	cachedParticipants []string
}

func newBaseClient(logger commons.Logger, page internal_browser.Page, aloneTimeout time.Duration) *baseClient {
	return &baseClient{
		logger:       logger,
		page:         page,
		state:        StateInit,
		aloneTimeout: aloneTimeout,
	}
}

func (b *baseClient) State() State { return b.state }

func (b *baseClient) setState(s State) {
	if b.state != s {
		b.logger.Infof("meeting: state %s -> %s", b.state, s)
	}
	b.state = s
}
