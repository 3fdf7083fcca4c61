// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"context"
	"fmt"
	"time"

	internal_browser "github.com/rapidaai/meetingbot/internal/browser"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

const meetAloneTimeout = 300 * time.Second

// meetClient drives the Google Meet web client join flow. Meet exposes no
// usable internal signal channel from the page context (Tier A is
// skipped); Tier C live captions are this platform's most reliable
// signal, with Tier B DOM cues as the fallback.
type meetClient struct {
	*baseClient
	launcher internal_browser.Launcher
}

// NewMeetClient constructs a Meet Client bound to a not-yet-launched
// browser session.
func NewMeetClient(logger commons.Logger, launcher internal_browser.Launcher) Client {
	c := &meetClient{launcher: launcher}
	c.baseClient = newBaseClient(logger, nil, meetAloneTimeout)
	c.selectors = selectorTiers{
		chatToggle:      []string{`[aria-label="Chat with everyone"]`, `button[aria-label*="chat"]`},
		chatInput:       []string{`textarea[aria-label="Send a message"]`, `input[aria-label="Send a message"]`},
		chatClose:       []string{`[aria-label="Close"]`},
		participantsBtn: []string{`[aria-label="People"]`, `button[aria-label*="participants"]`},
		joinButton:      []string{`button[jsname="Qx7uuf"]`, `span:contains("Ask to join")`, `span:contains("Join now")`},
		muteButtons:     []string{`[aria-label*="Turn off microphone"]`, `div[aria-label*="microphone"]`},
		cameraButtons:   []string{`[aria-label*="Turn off camera"]`, `div[aria-label*="camera"]`},
		inMeetingMarker: []string{`[aria-label="Leave call"]`},
		endTexts:        []string{"you left the meeting", "the call has ended", "returned to the home screen"},
		invalidTexts:    []string{"check your meeting code", "you can't create a meeting yourself", "misspelled or the meeting has been deleted"},
	}
	c.selectors.invalidLinkLabel = "Meet toplantısı"
	return c
}

func (c *meetClient) Start(ctx context.Context) error {
	page, err := c.launcher.Launch(ctx, nil)
	if err != nil {
		return fmt.Errorf("meeting(meet): failed to launch browser: %w", err)
	}
	c.page = page
	c.setState(StateJoining)
	return nil
}

func (c *meetClient) Join(ctx context.Context, meetingURL, displayName, passcode string) (bool, error) {
	c.botDisplayName = displayName
	if err := c.page.Navigate(ctx, meetingURL); err != nil {
		return false, fmt.Errorf("meeting(meet): navigate failed: %w", err)
	}

	dismissPopups(ctx, c.page, 3)

	if err := fillFirstMatch(ctx, c.page, []string{`input[aria-label="Your name"]`, `input[type="text"]`}, displayName); err != nil {
		c.logger.Warnf("meeting(meet): display name field not found (likely already authenticated): %v", err)
	}

	ensureAVOff(ctx, c.page, c.selectors.muteButtons, c.selectors.cameraButtons, c.logger)

	if err := clickFirstMatchWithRetries(ctx, c.page, c.selectors.joinButton, 3); err != nil {
		return false, fmt.Errorf("meeting(meet): join button unavailable: %w", err)
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

	if err := c.enableCaptions(ctx); err != nil {
		c.logger.Warnf("meeting(meet): failed to enable captions, Tier C speaker detection degraded: %v", err)
	}

	c.setState(StateInMeeting)
	return true, nil
}

// enableCaptions turns on live captions immediately after admission so
// Tier C speaker attribution has a feed from the start of the
// meeting rather than only from whenever a caller first asks.
func (c *meetClient) enableCaptions(ctx context.Context) error {
	return clickFirstAvailable(ctx, c.page, []string{`[aria-label="Turn on captions"]`, `button[aria-label*="captions"]`})
}

func (c *meetClient) SendChat(ctx context.Context, message string) error {
	return sendChatGeneric(ctx, c.baseClient, message)
}

func (c *meetClient) OpenParticipantsPanel(ctx context.Context) error {
	return togglePanel(ctx, c.baseClient, c.selectors.participantsBtn, true)
}

func (c *meetClient) CloseParticipantsPanel(ctx context.Context) error {
	return togglePanel(ctx, c.baseClient, c.selectors.participantsBtn, false)
}

// ActiveSpeakers tries Tier C live captions first (most reliable signal
// Meet exposes to the page), then falls back to Tier B visual cues and
// finally the unmuted-icon last resort.
func (c *meetClient) ActiveSpeakers(ctx context.Context) ([]string, error) {
	var captionText string
	if err := c.page.Eval(ctx, `(() => {
	  const el = document.querySelector('.iOzk7, [jsname="dsyhDe"]');
	  if (!el) return '';
	  const name = el.querySelector('.zs7s8d, .KcIKyf');
	  const text = el.querySelector('.iTTPOb, .VbkSUe');
	  if (!name || !text) return '';
	  return name.textContent.trim() + '\n' + text.textContent.trim();
	})()`, &captionText); err == nil && captionText != "" {
		participants, _ := c.Participants(ctx)
		if speaker, ok := ParseCaptionSpeaker(captionText, participants); ok {
			return FilterNonHumanNames([]string{speaker}, c.botDisplayName), nil
		}
	}

	names, err := tierBActiveSpeakers(ctx, c.page, `[data-participant-id]`, "false")
	if err != nil {
		return nil, err
	}
	names = FilterNonHumanNames(names, c.botDisplayName)
	if len(names) > 0 {
		return names, nil
	}
	fallback, err := unmutedFallbackSpeakers(ctx, c.page, `[data-participant-id]`)
	if err != nil {
		return nil, err
	}
	return FilterNonHumanNames(fallback, c.botDisplayName), nil
}

func (c *meetClient) Participants(ctx context.Context) ([]string, error) {
	return participantsGeneric(ctx, c.baseClient, `[data-participant-id] [data-self-name], [data-participant-id] .zWGUib`)
}

func (c *meetClient) CheckMeetingEnded(ctx context.Context) (bool, EndReason, string, error) {
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

func (c *meetClient) Close(ctx context.Context) error {
	return closeGeneric(c.baseClient)
}
