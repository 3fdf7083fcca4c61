// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCaptionSpeakerMatchesKnownParticipant(t *testing.T) {
	speaker, ok := ParseCaptionSpeaker("Ada Lovelace\nlet's begin the standup", []string{"Ada Lovelace", "Grace Hopper"})
	require.True(t, ok)
	require.Equal(t, "Ada Lovelace", speaker)
}

func TestParseCaptionSpeakerMatchesOnSubstringEitherDirection(t *testing.T) {
	speaker, ok := ParseCaptionSpeaker("Ada (guest)\nhello everyone", []string{"Ada Lovelace"})
	require.False(t, ok)

	speaker, ok = ParseCaptionSpeaker("Ada\nhello everyone", []string{"Ada Lovelace"})
	require.True(t, ok)
	require.Equal(t, "Ada Lovelace", speaker)
}

func TestParseCaptionSpeakerReturnsFalseForMalformedCaption(t *testing.T) {
	_, ok := ParseCaptionSpeaker("no newline in this caption", []string{"Ada Lovelace"})
	require.False(t, ok)
}

func TestParseCaptionSpeakerReturnsFalseWhenNoParticipantMatches(t *testing.T) {
	_, ok := ParseCaptionSpeaker("Unknown Person\nhello", []string{"Ada Lovelace"})
	require.False(t, ok)
}
