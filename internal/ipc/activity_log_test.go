// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNearestSpeakerWithinWindow(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	entries := []ActivityEntry{
		{Timestamp: base, Speakers: []string{"Alice"}},
		{Timestamp: base.Add(20 * time.Second), Speakers: []string{"Bob", "Carol"}},
	}

	name, ok := NearestSpeaker(entries, base.Add(5*time.Second), 10*time.Second)
	require.True(t, ok)
	require.Equal(t, "Alice", name)

	_, ok = NearestSpeaker(entries, base.Add(60*time.Second), 10*time.Second)
	require.False(t, ok, "no entry within the window should report not-found")
}

func TestAppendActivityPersistsAcrossReload(t *testing.T) {
	s := NewStore(t.TempDir())
	now := time.Now()

	require.NoError(t, s.AppendActivity(ActivityEntry{Timestamp: now, Platform: PlatformZoom, Speakers: []string{"Dana"}}))
	require.NoError(t, s.AppendActivity(ActivityEntry{Timestamp: now.Add(time.Second), Platform: PlatformZoom, Speakers: []string{"Dana", "Eli"}}))

	entries, ok := s.ReadActivityLog()
	require.True(t, ok)
	require.Len(t, entries, 2)
}
