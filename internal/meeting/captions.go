// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import "strings"

// ParseCaptionSpeaker extracts the speaker name from a Meet live-caption
// block of the form "<name>\n<text>" and, if it matches a
// known participant (equality or either-contains, case-insensitive),
// returns that participant's canonical name as the sole active speaker.
func ParseCaptionSpeaker(caption string, participants []string) (string, bool) {
	parts := strings.SplitN(caption, "\n", 2)
	if len(parts) < 2 {
		return "", false
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return "", false
	}
	lowerName := strings.ToLower(name)
	for _, p := range participants {
		lowerP := strings.ToLower(strings.TrimSpace(p))
		if lowerP == "" {
			continue
		}
		if lowerName == lowerP || strings.Contains(lowerName, lowerP) || strings.Contains(lowerP, lowerName) {
			return p, true
		}
	}
	return "", false
}
