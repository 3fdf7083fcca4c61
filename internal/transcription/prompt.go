// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_transcription

import (
	"fmt"
	"strings"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
)

// BuildPrompt assembles the transcription instruction. Meet
// declares the hint as a reference the model may override from the audio
// itself; Zoom and Teams declare it authoritative.
func BuildPrompt(hint string, platform internal_ipc.Platform) string {
	var b strings.Builder
	b.WriteString("Transcribe this audio segment with speaker diarization. ")
	b.WriteString("Prefer the participant names given below over generic labels; ")
	b.WriteString("never output \"Speaker 1\", \"Speaker 2\", etc. if any name is known. ")
	b.WriteString("Strip filler sounds (um, uh, background noise). ")
	b.WriteString("If the segment contains no intelligible speech, output exactly [NO SPEECH].\n\n")

	if hint != "" {
		if platform == internal_ipc.PlatformMeet {
			fmt.Fprintf(&b, "Reference speaker hint (may be wrong; prefer what you hear in the audio if it conflicts):\n%s\n", hint)
		} else {
			fmt.Fprintf(&b, "Authoritative speaker hint for this segment:\n%s\n", hint)
		}
	}
	return b.String()
}
