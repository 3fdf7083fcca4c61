// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShouldSkipAppendExactDuplicate(t *testing.T) {
	existing := "Alice: Good morning everyone, let's get started with the quarterly review."
	incoming := "Good morning everyone, let's get started with the quarterly review."
	require.True(t, ShouldSkipAppend(existing, incoming))
}

func TestShouldSkipAppendShortTextNeverSkippedBySubstringRule(t *testing.T) {
	existing := "Alice: hi"
	incoming := "hi"
	// len < 30, so the substring rule does not apply even though it matches.
	require.False(t, ShouldSkipAppend(existing, incoming))
}

func TestShouldSkipAppendFirstHalfDuplicate(t *testing.T) {
	first := "This is the first half of a fairly long sentence that goes on and on."
	second := "and this is a different ending that was not said before."
	existing := "Bob: " + first
	incoming := first + " " + second
	require.Greater(t, len(incoming), 100)
	require.True(t, ShouldSkipAppend(existing, incoming))
}

func TestShouldSkipAppendDistinctTextIsKept(t *testing.T) {
	existing := "Alice: let's talk about the roadmap."
	incoming := "Bob: I think we should prioritize the billing migration next quarter."
	require.False(t, ShouldSkipAppend(existing, incoming))
}

func TestAppendTranscriptSkipsDuplicateAndKeepsNovel(t *testing.T) {
	s := NewStore(t.TempDir())

	ok, err := s.AppendTranscript("Alice: let's begin the standup with the sprint review.")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.AppendTranscript("let's begin the standup with the sprint review.")
	require.NoError(t, err)
	require.False(t, ok, "near-duplicate of the last append must be skipped")

	ok, err = s.AppendTranscript("Bob: I finished the migration yesterday.")
	require.NoError(t, err)
	require.True(t, ok)

	text, _ := s.ReadTranscript()
	require.Equal(t, 2, strings.Count(text, "\n\n")+1)
}

func TestTailOnlyConsidersLastNChars(t *testing.T) {
	phrase := "a phrase repeated earlier in the transcript but now outside the dedup window here"
	existing := phrase + strings.Repeat("b", transcriptTailLength)
	// phrase is now entirely outside the last transcriptTailLength chars.
	require.False(t, ShouldSkipAppend(existing, phrase))
}
