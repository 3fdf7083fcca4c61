// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	internal_browser "github.com/rapidaai/meetingbot/internal/browser"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

// dismissPopups makes n unconditional attempts, 150 ms apart, to clear
// in-page prompts by blurring the page's focused element. It sends no key
// events and has no effect on native dialogs or popups outside the page.
func dismissPopups(ctx context.Context, page internal_browser.Page, n int) {
	for i := 0; i < n; i++ {
		_ = page.Eval(ctx, `document.activeElement && document.activeElement.blur && document.activeElement.blur()`, nil)
		time.Sleep(150 * time.Millisecond)
	}
}

// fillFirstMatch locates the first selector in candidates that exists on
// the page and types value into it.
func fillFirstMatch(ctx context.Context, page internal_browser.Page, candidates []string, value string) error {
	for _, sel := range candidates {
		found, err := page.WaitForSelector(ctx, sel)
		if err != nil || !found {
			continue
		}
		if err := page.Click(ctx, sel); err != nil {
			continue
		}
		if err := page.Type(ctx, value); err != nil {
			continue
		}
		return nil
	}
	return fmt.Errorf("meeting: no selector matched out of %v", candidates)
}

// clickFirstMatchWithRetries tries each selector in candidates up to
// maxAttempts times, succeeding as soon as one click does not error. This
// is the "tiered selector list" + "up to three attempts" contract of
// Submit.
func clickFirstMatchWithRetries(ctx context.Context, page internal_browser.Page, candidates []string, maxAttempts int) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		for _, sel := range candidates {
			if err := page.Click(ctx, sel); err == nil {
				return nil
			} else {
				lastErr = err
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("meeting: join button click failed after %d attempts: %w", maxAttempts, lastErr)
}

// ensureAVOff tries labelled mute/camera-off buttons first, logging (not
// failing) when neither is found — audio/video off is best-effort per
// Configure AV.
func ensureAVOff(ctx context.Context, page internal_browser.Page, muteButtons, cameraButtons []string, logger commons.Logger) {
	if err := clickFirstAvailable(ctx, page, muteButtons); err != nil {
		logger.Warnf("meeting: could not confirm microphone is off: %v", err)
	}
	if err := clickFirstAvailable(ctx, page, cameraButtons); err != nil {
		logger.Warnf("meeting: could not confirm camera is off: %v", err)
	}
}

func clickFirstAvailable(ctx context.Context, page internal_browser.Page, candidates []string) error {
	for _, sel := range candidates {
		found, err := page.WaitForSelector(ctx, sel)
		if err == nil && found {
			return page.Click(ctx, sel)
		}
	}
	return fmt.Errorf("no candidate selector present: %v", candidates)
}

// waitForAdmission polls every 2 s for an in-meeting marker until timeout
// elapses or ctx is cancelled, returning whether the bot was admitted. It
// does not check for a stop command while waiting.
func waitForAdmission(ctx context.Context, page internal_browser.Page, inMeetingMarkers []string, timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, sel := range inMeetingMarkers {
			found, err := page.WaitForSelector(ctx, sel)
			if err == nil && found {
				return true, nil
			}
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return false, nil
}

// sendChatGeneric opens the chat panel unless its toggle reports
// aria-pressed="true", locates the editor via the tiered selector list,
// sanitizes and types the message, then closes the panel again if this call
// opened it.
func sendChatGeneric(ctx context.Context, b *baseClient, message string) error {
	sanitized := sanitizeChatMessage(message)

	chatOpen := false
	for _, sel := range b.selectors.chatToggle {
		var pressed bool
		js := fmt.Sprintf(`(() => { const el = document.querySelector(%q); return el !== null && el.getAttribute("aria-pressed") === "true"; })()`, sel)
		if err := b.page.Eval(ctx, js, &pressed); err == nil && pressed {
			chatOpen = true
			break
		}
	}

	openedHere := false
	if !chatOpen {
		if err := clickFirstAvailable(ctx, b.page, b.selectors.chatToggle); err == nil {
			openedHere = true
		}
	}

	if err := fillFirstMatch(ctx, b.page, b.selectors.chatInput, sanitized); err != nil {
		return fmt.Errorf("meeting: chat editor not found: %w", err)
	}
	if err := b.page.Eval(ctx, `document.activeElement && document.activeElement.dispatchEvent(new KeyboardEvent('keydown',{key:'Enter'}))`, nil); err != nil {
		b.logger.Warnf("meeting: failed to submit chat message via Enter: %v", err)
	}

	if openedHere {
		_ = clickFirstAvailable(ctx, b.page, b.selectors.chatClose)
	}
	return nil
}

var chatSafeCharset = regexp.MustCompile(`[^\p{L}\p{N}\s.,!?:;'"()\-]`)

const chatFallbackMessage = "Merhaba, toplantıya katıldım."

// sanitizeChatMessage restricts message to a conservative character set; an
// empty result after stripping falls back to a fixed greeting.
func sanitizeChatMessage(message string) string {
	cleaned := strings.TrimSpace(chatSafeCharset.ReplaceAllString(message, ""))
	if cleaned == "" {
		return chatFallbackMessage
	}
	return cleaned
}

// togglePanel opens or closes the participants panel, guarding re-opens
// with a 3s cool-down and tracking whether *we* opened it so that a
// repeated open or close is a no-op.
func togglePanel(ctx context.Context, b *baseClient, buttons []string, open bool) error {
	if open == b.panelOpenedByUs {
		return nil
	}
	if open && time.Since(b.lastPanelToggleAt) < 3*time.Second {
		return nil
	}
	if err := clickFirstAvailable(ctx, b.page, buttons); err != nil {
		return fmt.Errorf("meeting: participants panel toggle failed: %w", err)
	}
	b.panelOpenedByUs = open
	b.lastPanelToggleAt = time.Now()
	return nil
}

// participantsGeneric reads the roster from rowSelector and caches the
// result so transcription hints can use the last successful list even if a
// later scan finds the panel closed.
func participantsGeneric(ctx context.Context, b *baseClient, rowSelector string) ([]string, error) {
	js := fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map(e => e.textContent.trim())`, rowSelector)
	var names []string
	if err := b.page.Eval(ctx, js, &names); err != nil {
		return nil, fmt.Errorf("meeting: participant scan failed: %w", err)
	}
	filtered := FilterNonHumanNames(names, b.botDisplayName)
	if len(filtered) > 0 {
		b.cachedParticipants = filtered
		return filtered, nil
	}
	return b.cachedParticipants, nil
}

// closeGeneric closes the page's CDP connection, logging rather than
// propagating a failure. It does not stop the browser process that the
// Launcher started.
func closeGeneric(b *baseClient) error {
	b.setState(StateEnding)
	if b.page != nil {
		if err := b.page.Close(); err != nil {
			b.logger.Warnf("meeting: close encountered an error, continuing teardown: %v", err)
		}
	}
	b.setState(StateClosed)
	return nil
}
