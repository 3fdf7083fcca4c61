// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	internal_browser "github.com/rapidaai/meetingbot/internal/browser"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

const teamsAloneTimeout = 120 * time.Second

// rosterBootstrapScript patches the page's WebSocket constructor before any
// navigation happens so every Teams internal-signal socket this tab opens
// is mirrored into window.__rosterMessages for later polling. It must run
// via Start, before Join navigates.
const rosterBootstrapScript = `(() => {
  window.__rosterMessages = [];
  const NativeWS = window.WebSocket;
  window.WebSocket = function(url, protocols) {
    const ws = protocols ? new NativeWS(url, protocols) : new NativeWS(url);
    if (String(url).includes('/v1/call') || String(url).includes('roster')) {
      ws.addEventListener('message', (evt) => {
        window.__rosterMessages.push(evt.data);
        if (window.__rosterMessages.length > 200) window.__rosterMessages.shift();
      });
    }
    return ws;
  };
  window.WebSocket.prototype = NativeWS.prototype;
})()`

const drainRosterScript = `(() => {
  const msgs = window.__rosterMessages || [];
  window.__rosterMessages = [];
  return msgs;
})()`

// teamsClient drives the Teams web client join flow. Tier A (the roster
// WebSocket bridge) is preferred; Tier B DOM cues are the fallback when the
// bridge has produced nothing recently.
type teamsClient struct {
	*baseClient
	launcher internal_browser.Launcher
}

// NewTeamsClient constructs a Teams Client bound to a not-yet-launched
// browser session.
func NewTeamsClient(logger commons.Logger, launcher internal_browser.Launcher) Client {
	c := &teamsClient{launcher: launcher}
	c.baseClient = newBaseClient(logger, nil, teamsAloneTimeout)
	c.selectors = selectorTiers{
		chatToggle:      []string{`#chat-button`, `button[aria-label="Chat"]`},
		chatInput:       []string{`div[aria-label="Type a new message"]`, `div[role="textbox"]`},
		chatClose:       []string{`button[aria-label="Close"]`},
		participantsBtn: []string{`#roster-button`, `button[aria-label="People"]`},
		joinButton:      []string{`button[data-tid="prejoin-join-button"]`, `button[aria-label="Join now"]`},
		muteButtons:     []string{`button[aria-label*="Mute microphone"]`, `div[aria-label*="Mute"]`},
		cameraButtons:   []string{`button[aria-label*="Turn camera off"]`, `div[aria-label*="camera"]`},
		inMeetingMarker: []string{`#hangup-button`, `button[aria-label="Leave"]`},
		endTexts:        []string{"you left", "the meeting has ended", "call ended"},
		invalidTexts:    []string{"this meeting is no longer available", "we couldn't find this meeting", "link is invalid"},
	}
	c.selectors.invalidLinkLabel = "Teams toplantısı"
	return c
}

// RewriteTeamsJoinURL appends the join-as-guest query hint so the web
// client skips the "open in the Teams app?" interstitial where possible.
func RewriteTeamsJoinURL(url string) string {
	if strings.Contains(url, "anon=true") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "anon=true"
}

func (c *teamsClient) Start(ctx context.Context) error {
	page, err := c.launcher.Launch(ctx, nil)
	if err != nil {
		return fmt.Errorf("meeting(teams): failed to launch browser: %w", err)
	}
	c.page = page
	if err := page.Eval(ctx, rosterBootstrapScript, nil); err != nil {
		c.logger.Warnf("meeting(teams): roster bridge injection failed, Tier A unavailable: %v", err)
	}
	c.setState(StateJoining)
	return nil
}

func (c *teamsClient) Join(ctx context.Context, meetingURL, displayName, passcode string) (bool, error) {
	c.botDisplayName = displayName
	if err := c.page.Navigate(ctx, RewriteTeamsJoinURL(meetingURL)); err != nil {
		return false, fmt.Errorf("meeting(teams): navigate failed: %w", err)
	}

	dismissPopups(ctx, c.page, 3)

	_ = clickFirstAvailable(ctx, c.page, []string{`button[data-tid="joinOnWeb"]`, `a[data-tid="joinOnWeb"]`})

	if err := fillFirstMatch(ctx, c.page, []string{`input[data-tid="prejoin-display-name-input"]`, `input[placeholder="Type your name"]`}, displayName); err != nil {
		c.logger.Warnf("meeting(teams): display name field not found: %v", err)
	}
	if passcode != "" {
		_ = fillFirstMatch(ctx, c.page, []string{`input[data-tid="passcode-input"]`}, passcode)
	}

	ensureAVOff(ctx, c.page, c.selectors.muteButtons, c.selectors.cameraButtons, c.logger)

	if err := clickFirstMatchWithRetries(ctx, c.page, c.selectors.joinButton, 3); err != nil {
		return false, fmt.Errorf("meeting(teams): join button unavailable: %w", err)
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

func (c *teamsClient) SendChat(ctx context.Context, message string) error {
	return sendChatGeneric(ctx, c.baseClient, message)
}

func (c *teamsClient) OpenParticipantsPanel(ctx context.Context) error {
	return togglePanel(ctx, c.baseClient, c.selectors.participantsBtn, true)
}

func (c *teamsClient) CloseParticipantsPanel(ctx context.Context) error {
	return togglePanel(ctx, c.baseClient, c.selectors.participantsBtn, false)
}

// ActiveSpeakers prefers the Tier A roster bridge; an empty drain (bridge
// never fired, or nobody currently speaking per that channel) falls
// through to Tier B DOM cues, then the unmuted-icon last resort.
func (c *teamsClient) ActiveSpeakers(ctx context.Context) ([]string, error) {
	var rawMessages []string
	if err := c.page.Eval(ctx, drainRosterScript, &rawMessages); err == nil {
		for _, raw := range rawMessages {
			update, err := DecodeTeamsRosterMessage(raw)
			if err != nil {
				continue
			}
			if speakers := ActiveSpeakersFromRoster(update); len(speakers) > 0 {
				return FilterNonHumanNames(speakers, c.botDisplayName), nil
			}
		}
	}

	names, err := tierBActiveSpeakers(ctx, c.page, `[data-stream-type="Video"], [data-tid="participant-tile"]`, "false")
	if err != nil {
		return nil, err
	}
	names = FilterNonHumanNames(names, c.botDisplayName)
	if len(names) > 0 {
		return names, nil
	}
	fallback, err := unmutedFallbackSpeakers(ctx, c.page, `[data-tid="participant-tile"]`)
	if err != nil {
		return nil, err
	}
	return FilterNonHumanNames(fallback, c.botDisplayName), nil
}

func (c *teamsClient) Participants(ctx context.Context) ([]string, error) {
	return participantsGeneric(ctx, c.baseClient, `[data-tid="participantsList"] [data-tid="participant-name"]`)
}

func (c *teamsClient) CheckMeetingEnded(ctx context.Context) (bool, EndReason, string, error) {
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

func (c *teamsClient) Close(ctx context.Context) error {
	return closeGeneric(c.baseClient)
}
