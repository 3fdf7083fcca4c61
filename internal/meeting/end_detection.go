// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// endSignals is the text/selector table driving checkMeetingEnded.
// Each platform supplies its own values; the control flow is identical.
type endSignals struct {
	endTexts          []string
	invalidTexts      []string
	controlsSelector  string
	waitingTextNeedle string
	// invalidLinkLabel names the platform in the detail message formatted
	// for an invalid-link match, e.g. "Teams toplantısı".
	invalidLinkLabel string
}

// evaluateEndCondition implements the multi-signal end-detection algorithm
// shared by all three platforms. participantCount, pageText and
// controlsVisible are supplied by the caller's platform-specific DOM probes; the timer
// bookkeeping (alone-timeout, controls-lost counter) lives on baseClient so
// it persists across polls. The returned string is only populated for
// EndReasonInvalidLink, carrying a human-readable detail message.
func (b *baseClient) evaluateEndCondition(
	ctx context.Context,
	pageClosed bool,
	pageText string,
	participantCount int,
	controlsVisible bool,
	signals endSignals,
) (bool, EndReason, string, error) {
	if pageClosed {
		return true, EndReasonNormal, "", nil
	}

	lowerText := strings.ToLower(pageText)
	for _, needle := range signals.invalidTexts {
		if strings.Contains(lowerText, strings.ToLower(needle)) {
			detail := fmt.Sprintf("Geçersiz %s: %s", signals.invalidLinkLabel, needle)
			return true, EndReasonInvalidLink, detail, nil
		}
	}
	for _, needle := range signals.endTexts {
		if strings.Contains(lowerText, strings.ToLower(needle)) {
			return true, EndReasonNormal, "", nil
		}
	}

	alone := participantCount <= 1
	if signals.waitingTextNeedle != "" && strings.Contains(lowerText, strings.ToLower(signals.waitingTextNeedle)) {
		alone = true
	}
	if alone {
		if !b.aloneObserved {
			b.aloneObserved = true
			b.aloneSince = time.Now()
		} else if time.Since(b.aloneSince) >= b.aloneTimeout {
			return true, EndReasonNormal, "", nil
		}
	} else {
		b.aloneObserved = false
	}

	if !controlsVisible {
		b.controlsLostHit++
		if b.controlsLostHit >= 3 {
			return true, EndReasonControlsLost, "", nil
		}
	} else {
		b.controlsLostHit = 0
	}

	return false, "", "", nil
}

// controlsVisible evaluates signals.controlsSelector against the page.
func controlsVisible(ctx context.Context, page pageEvaluator, selector string) (bool, error) {
	var present bool
	js := fmt.Sprintf(`document.querySelector(%q) !== null`, selector)
	if err := page.Eval(ctx, js, &present); err != nil {
		return false, err
	}
	return present, nil
}

// bodyText returns document.body.innerText, used for end-text/invalid-text
// scanning.
func bodyText(ctx context.Context, page pageEvaluator) (string, error) {
	var text string
	if err := page.Eval(ctx, "document.body ? document.body.innerText : ''", &text); err != nil {
		return "", err
	}
	return text, nil
}
