// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"context"
	"fmt"
)

// tierBSpeakingScript is injected verbatim by every platform's Tier B DOM
// scan. It walks candidate participant tiles and returns
// the names whose visual styling indicates "speaking": a border/outline/
// box-shadow thick enough to be an active-speaker ring and colored (not
// black/white/gray), or an explicit speaking-related aria-label.
// extraSelectors lets each platform add its own
// platform-specific speaking affordance (e.g. Zoom's voip-speaking-icon).
const tierBSpeakingScript = `(() => {
  const tiles = Array.from(document.querySelectorAll(%q));
  const isColorNeitherBWGray = (c) => {
    const m = c.match(/rgba?\((\d+),\s*(\d+),\s*(\d+)/);
    if (!m) return false;
    const [r, g, bl] = [parseInt(m[1]), parseInt(m[2]), parseInt(m[3])];
    const near = Math.abs(r-g) < 30 && Math.abs(g-bl) < 30 && Math.abs(r-bl) < 30;
    return !near;
  };
  const speaking = [];
  for (const el of tiles) {
    const style = window.getComputedStyle(el);
    const borderWidth = parseFloat(style.borderWidth || "0");
    const outlineWidth = parseFloat(style.outlineWidth || "0");
    const hasShadow = style.boxShadow && style.boxShadow !== "none" &&
      /\d+px\s+\d+px\s+[1-9]/.test(style.boxShadow);
    const colored = isColorNeitherBWGray(style.borderColor) || isColorNeitherBWGray(style.outlineColor);
    const ariaLabel = (el.getAttribute("aria-label") || "").toLowerCase();
    const speakingLabel = /speaking|talking|konuşuyor/.test(ariaLabel);
    const extraMatch = %s;
    const visuallySpeaking = ((borderWidth >= 3 || outlineWidth >= 2 || hasShadow) && colored);
    if (visuallySpeaking || speakingLabel || extraMatch) {
      const nameEl = el.querySelector("[data-participant-name],[aria-label]") || el;
      const name = nameEl.getAttribute("data-participant-name") || nameEl.getAttribute("aria-label") || el.textContent || "";
      if (name.trim()) speaking.push(name.trim());
    }
  }
  return speaking;
})()`

// tierBActiveSpeakers runs the shared visual-cue scan against tileSelector,
// with an optional extraSelectorCondition JS boolean expression (in scope
// of `el`) for platform-specific speaking affordances.
func tierBActiveSpeakers(ctx context.Context, page pageEvaluator, tileSelector, extraSelectorCondition string) ([]string, error) {
	if extraSelectorCondition == "" {
		extraSelectorCondition = "false"
	}
	script := fmt.Sprintf(tierBSpeakingScript, tileSelector, extraSelectorCondition)
	var names []string
	if err := page.Eval(ctx, script, &names); err != nil {
		return nil, fmt.Errorf("meeting: tier B speaker scan failed: %w", err)
	}
	return names, nil
}

// unmutedFallbackScript finds tiles with an unmuted mic icon (no "slash"
// path fragment in the SVG), used only as a last resort when neither Tier
// A nor Tier B produced a result.
const unmutedFallbackScript = `(() => {
  const tiles = Array.from(document.querySelectorAll(%q));
  const out = [];
  for (const el of tiles) {
    const svgs = el.querySelectorAll("svg path");
    let hasSlash = false, hasMicIcon = svgs.length > 0;
    for (const p of svgs) {
      if ((p.getAttribute("d") || "").toLowerCase().includes("slash")) hasSlash = true;
    }
    if (hasMicIcon && !hasSlash) {
      const nameEl = el.querySelector("[data-participant-name],[aria-label]") || el;
      const name = nameEl.getAttribute("data-participant-name") || nameEl.getAttribute("aria-label") || el.textContent || "";
      if (name.trim()) out.push(name.trim());
    }
  }
  return out;
})()`

func unmutedFallbackSpeakers(ctx context.Context, page pageEvaluator, tileSelector string) ([]string, error) {
	var names []string
	script := fmt.Sprintf(unmutedFallbackScript, tileSelector)
	if err := page.Eval(ctx, script, &names); err != nil {
		return nil, fmt.Errorf("meeting: unmuted fallback scan failed: %w", err)
	}
	return names, nil
}

// pageEvaluator is the narrow slice of internal_browser.Page these helpers
// need, kept separate so tests can supply a trivial fake.
type pageEvaluator interface {
	Eval(ctx context.Context, js string, out interface{}) error
}
