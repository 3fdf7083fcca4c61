// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_transcription

import (
	"regexp"
	"strings"
)

var ghostOutputPattern = regexp.MustCompile(`(?i)\[\s*(silence|music|noise|empty|no speech)\s*\]`)

// FilterGhostOutput strips bracketed pseudo-outputs and reports whether
// anything meaningful remains. A remaining length under 2 counts as an
// empty success: nothing worth appending.
func FilterGhostOutput(text string) (string, bool) {
	cleaned := strings.TrimSpace(ghostOutputPattern.ReplaceAllString(text, ""))
	return cleaned, len(cleaned) >= 2
}
