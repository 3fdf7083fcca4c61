// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_report

import (
	"testing"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	"github.com/stretchr/testify/require"
)

func TestComputeStatisticsCreditsClippedIntervals(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	entries := []internal_ipc.ActivityEntry{
		{Timestamp: base, Speakers: []string{"Ada"}},
		{Timestamp: base.Add(5 * time.Second), Speakers: []string{"Ada", "Grace"}},
		{Timestamp: base.Add(35 * time.Second), Speakers: []string{"Grace"}},
	}

	stats := ComputeStatistics(entries)
	byName := make(map[string]SpeakerStat, len(stats))
	for _, s := range stats {
		byName[s.Name] = s
	}

	// Ada: 5s from entry 0->1 (under clip), then 10s clipped from entry 1->2 = 15s.
	require.Equal(t, 15*time.Second, byName["Ada"].TalkTime)
	// Grace: 10s clipped from entry 1->2 (the 30s gap is clipped to 10s).
	require.Equal(t, 10*time.Second, byName["Grace"].TalkTime)

	require.Equal(t, 1, byName["Ada"].TurnCount)
	require.Equal(t, 1, byName["Grace"].TurnCount)
}

func TestComputeStatisticsSortsOutOfOrderEntries(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	entries := []internal_ipc.ActivityEntry{
		{Timestamp: base.Add(10 * time.Second), Speakers: []string{"Grace"}},
		{Timestamp: base, Speakers: []string{"Ada"}},
	}

	stats := ComputeStatistics(entries)
	require.Len(t, stats, 2)
	require.Equal(t, "Ada", stats[0].Name)
	require.Equal(t, "Grace", stats[1].Name)
}

func TestComputeStatisticsEmptyLogReturnsNoStats(t *testing.T) {
	require.Empty(t, ComputeStatistics(nil))
}
