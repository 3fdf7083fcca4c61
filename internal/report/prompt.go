// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_report

import (
	"fmt"
	"strings"
	"time"
)

// BuildSummaryPrompt assembles the Report Builder's LLM instruction: a
// structured HTML document with four fixed section headers and embedded
// tables, grounded on the meeting's transcript and speaker stats.
func BuildSummaryPrompt(title, transcript string, stats []SpeakerStat, unknownSpeakers []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a meeting report for %q as an HTML fragment (no <html> or <body> tags, ", title)
	b.WriteString("just the inner content). Use exactly these section headers, as <h2> elements, in order: ")
	b.WriteString("\"Summary\", \"Ideas & Decisions\", \"Action Items\", \"Participation Quality\". ")
	b.WriteString("\"Action Items\" must be an HTML table with columns Owner and Task. ")
	b.WriteString("\"Participation Quality\" must be an HTML table with columns Speaker, Talk Time, Turns, ")
	b.WriteString("using the statistics given below. Do not invent names not present in the transcript.\n\n")

	b.WriteString("Speaker statistics:\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "- %s: %s talk time, %d turns\n", s.Name, s.TalkTime.Round(time.Second), s.TurnCount)
	}
	if len(unknownSpeakers) > 0 {
		fmt.Fprintf(&b, "\nSpeaker labels seen in the transcript but not matched to a known participant: %s\n",
			strings.Join(unknownSpeakers, ", "))
	}

	fmt.Fprintf(&b, "\nTranscript:\n%s\n", transcript)
	return b.String()
}
