// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_transcription

import "regexp"

// CanonicalizeNames case-insensitively replaces whole-word occurrences of
// each participant name with its canonical cased form, so an
// LLM that outputs "ada LOVELACE:" becomes "Ada Lovelace:".
func CanonicalizeNames(text string, participants []string) string {
	for _, name := range participants {
		if name == "" {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
		text = pattern.ReplaceAllString(text, name)
	}
	return text
}
