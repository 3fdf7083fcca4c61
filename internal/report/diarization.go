// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_report

import (
	"regexp"
	"strings"
)

// speakerLinePattern matches transcript lines of the form "Name: text",
// the format the Transcription Endpoint writes when it prefixes a segment
// with its resolved diarization hint.
var speakerLinePattern = regexp.MustCompile(`(?m)^([^:\n]{1,80}):\s`)

// ExtractSpeakerNames returns the distinct candidate speaker names found at
// the start of transcript lines, in order of first appearance.
func ExtractSpeakerNames(transcript string) []string {
	matches := speakerLinePattern.FindAllStringSubmatch(transcript, -1)
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// CrossValidateSpeakers splits candidateNames into those present in
// participants (case-insensitively) and those that are not, the "unknowns"
// collected step 3.
func CrossValidateSpeakers(candidateNames, participants []string) (known, unknown []string) {
	participantSet := make(map[string]bool, len(participants))
	for _, p := range participants {
		participantSet[strings.ToLower(strings.TrimSpace(p))] = true
	}
	for _, name := range candidateNames {
		if participantSet[strings.ToLower(name)] {
			known = append(known, name)
		} else {
			unknown = append(unknown, name)
		}
	}
	return known, unknown
}
