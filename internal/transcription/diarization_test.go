// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_transcription

import (
	"testing"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	"github.com/stretchr/testify/require"
)

func TestResolveHintPrefersTimelineSliceWhenWindowGiven(t *testing.T) {
	store := internal_ipc.NewStore(t.TempDir())
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendTimelineEntry(0, []string{"Ada Lovelace"}))
	require.NoError(t, store.AppendTimelineEntry(120, []string{"Grace Hopper"}))
	require.NoError(t, store.AppendTimelineEntry(700, []string{"Outside Window"}))

	hint := ResolveHint(store, start, 300*time.Second, "")
	require.Contains(t, hint, "Ada Lovelace")
	require.Contains(t, hint, "Grace Hopper")
	require.NotContains(t, hint, "Outside Window")
}

func TestResolveHintFallsBackToSpeakerNameWithoutTimeline(t *testing.T) {
	store := internal_ipc.NewStore(t.TempDir())
	hint := ResolveHint(store, time.Time{}, 0, "Ada Lovelace")
	require.Equal(t, "Ada Lovelace", hint)
}

func TestResolveHintFallsBackToParticipantSnapshot(t *testing.T) {
	store := internal_ipc.NewStore(t.TempDir())
	require.NoError(t, store.SaveParticipantSnapshot(&internal_ipc.ParticipantSnapshot{
		Participants: []string{"Ada Lovelace", "Grace Hopper"},
	}))

	hint := ResolveHint(store, time.Time{}, 0, "")
	require.Equal(t, "Ada Lovelace, Grace Hopper", hint)
}

func TestResolveHintReturnsEmptyWithNothingAvailable(t *testing.T) {
	store := internal_ipc.NewStore(t.TempDir())
	require.Equal(t, "", ResolveHint(store, time.Time{}, 0, ""))
}
