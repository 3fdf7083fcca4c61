// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import "strings"

// FilterNonHumanNames removes bot-self, UI-glyph, and platform-chrome
// strings from names, preserving order and first occurrence only. It is
// idempotent: FilterNonHumanNames(FilterNonHumanNames(x)) == FilterNonHumanNames(x).
func FilterNonHumanNames(names []string, botDisplayName string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			continue
		}
		if isNonHuman(trimmed, botDisplayName) {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}

func isNonHuman(name, botDisplayName string) bool {
	if botDisplayName != "" && strings.EqualFold(name, botDisplayName) {
		return true
	}
	lower := strings.ToLower(name)
	for _, bad := range excludedNameSubstrings {
		if strings.Contains(lower, bad) {
			return true
		}
	}
	return isMaterialIconName(lower)
}

// materialIconWords catches Google Material Symbols ligature names that
// leak into the DOM as text content when an icon font fails to load —
// e.g. "mic", "videocam", "closed_caption" — which are not participant
// names.
var materialIconWords = map[string]bool{
	"mic": true, "mic_off": true, "videocam": true, "videocam_off": true,
	"closed_caption": true, "closed_caption_off": true, "call_end": true,
	"chat": true, "more_vert": true, "people": true, "pen_spark": true,
}

func isMaterialIconName(lower string) bool {
	return materialIconWords[strings.ReplaceAll(lower, " ", "_")]
}
