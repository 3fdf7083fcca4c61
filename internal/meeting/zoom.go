// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"context"
	"fmt"
	"regexp"
	"time"

	internal_browser "github.com/rapidaai/meetingbot/internal/browser"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

const zoomAloneTimeout = 300 * time.Second

var zoomWebClientPattern = regexp.MustCompile(`/j/(\d+)`)

// zoomClient drives the Zoom web client join flow and Tier B speaker
// detection (Zoom exposes no internal WebSocket signal channel usable from
// the page context, so Tier A is skipped for Zoom).
type zoomClient struct {
	*baseClient
	launcher internal_browser.Launcher
}

// NewZoomClient constructs a Zoom Client bound to a not-yet-launched
// browser session.
func NewZoomClient(logger commons.Logger, launcher internal_browser.Launcher) Client {
	c := &zoomClient{launcher: launcher}
	c.baseClient = newBaseClient(logger, nil, zoomAloneTimeout)
	c.selectors = selectorTiers{
		chatToggle:      []string{`[aria-label="Chat"]`, `button[title="Chat"]`},
		chatInput:       []string{`#chat-rtf-box`, `div[aria-label="Type message here"]`},
		chatClose:       []string{`[aria-label="Close"]`},
		participantsBtn: []string{`[aria-label="Participants"]`, `button[title="Participants"]`},
		joinButton:      []string{`button[type="submit"]`, `.preview-join-button`},
		muteButtons:     []string{`[aria-label="mute my microphone"]`, `[aria-label="Mute"]`},
		cameraButtons:   []string{`[aria-label="start my video"]`, `[aria-label="Stop Video"]`},
		inMeetingMarker: []string{`.footer-button__button`, `[aria-label="Leave"]`},
		endTexts:        []string{"meeting has been ended", "you left", "this meeting has been ended by host"},
		invalidTexts:    []string{"this meeting has expired", "meeting doesn't exist", "invalid meeting id", "bu toplantı artık mevcut değil"},
	}
	c.selectors.invalidLinkLabel = "toplantı linki"
	return c
}

// RewriteZoomJoinURL bypasses the native-app prompt by rewriting Zoom's
// "/j/ID" client-launcher path to the pure web-client "/wc/ID/join" path.
func RewriteZoomJoinURL(url string) string {
	return zoomWebClientPattern.ReplaceAllString(url, "/wc/$1/join")
}

func (c *zoomClient) Start(ctx context.Context) error {
	page, err := c.launcher.Launch(ctx, nil)
	if err != nil {
		return fmt.Errorf("meeting(zoom): failed to launch browser: %w", err)
	}
	c.page = page
	c.setState(StateJoining)
	return nil
}

func (c *zoomClient) Join(ctx context.Context, meetingURL, displayName, passcode string) (bool, error) {
	c.botDisplayName = displayName
	webURL := RewriteZoomJoinURL(meetingURL)
	if err := c.page.Navigate(ctx, webURL); err != nil {
		return false, fmt.Errorf("meeting(zoom): navigate failed: %w", err)
	}

	dismissPopups(ctx, c.page, 3)

	if err := fillFirstMatch(ctx, c.page, []string{`#inputname`, `input[name="name"]`}, displayName); err != nil {
		c.logger.Warnf("meeting(zoom): display name field not found: %v", err)
	}
	if passcode != "" {
		_ = fillFirstMatch(ctx, c.page, []string{`#inputpasscode`, `input[name="password"]`}, passcode)
	}

	ensureAVOff(ctx, c.page, c.selectors.muteButtons, c.selectors.cameraButtons, c.logger)

	if err := clickFirstMatchWithRetries(ctx, c.page, c.selectors.joinButton, 3); err != nil {
		return false, fmt.Errorf("meeting(zoom): join button unavailable: %w", err)
	}

	c.setState(StateInLobby)
	admitted, err := waitForAdmission(ctx, c.page, c.selectors.inMeetingMarker, 600*time.Second)
	if err != nil {
		return false, err
	}
	if !admitted {
		c.setState(StateClosed)
		return false, nil
	}
	c.setState(StateInMeeting)
	return true, nil
}

func (c *zoomClient) SendChat(ctx context.Context, message string) error {
	return sendChatGeneric(ctx, c.baseClient, message)
}

func (c *zoomClient) OpenParticipantsPanel(ctx context.Context) error {
	return togglePanel(ctx, c.baseClient, c.selectors.participantsBtn, true)
}

func (c *zoomClient) CloseParticipantsPanel(ctx context.Context) error {
	return togglePanel(ctx, c.baseClient, c.selectors.participantsBtn, false)
}

func (c *zoomClient) ActiveSpeakers(ctx context.Context) ([]string, error) {
	names, err := tierBActiveSpeakers(ctx, c.page, `[class*="participants-item"]`,
		`el.querySelector(".participants-icon__voip-speaking-icon") !== null`)
	if err != nil {
		return nil, err
	}
	names = FilterNonHumanNames(names, c.botDisplayName)
	if len(names) > 0 {
		return names, nil
	}
	fallback, err := unmutedFallbackSpeakers(ctx, c.page, `[class*="participants-item"]`)
	if err != nil {
		return nil, err
	}
	return FilterNonHumanNames(fallback, c.botDisplayName), nil
}

func (c *zoomClient) Participants(ctx context.Context) ([]string, error) {
	return participantsGeneric(ctx, c.baseClient, `[class*="participants-item__display-name"]`)
}

func (c *zoomClient) CheckMeetingEnded(ctx context.Context) (bool, EndReason, string, error) {
	if c.page.Closed() {
		return true, EndReasonNormal, "", nil
	}
	text, err := bodyText(ctx, c.page)
	if err != nil {
		return false, "", "", err
	}
	visible, err := controlsVisible(ctx, c.page, c.selectors.inMeetingMarker[0])
	if err != nil {
		return false, "", "", err
	}
	count := len(c.cachedParticipants)
	return c.evaluateEndCondition(ctx, false, text, count, visible, endSignals{
		endTexts:         c.selectors.endTexts,
		invalidTexts:     c.selectors.invalidTexts,
		invalidLinkLabel: c.selectors.invalidLinkLabel,
	})
}

func (c *zoomClient) Close(ctx context.Context) error {
	return closeGeneric(c.baseClient)
}
