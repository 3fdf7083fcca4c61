// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_report computes per-speaker statistics from the
// activity log, derives diarization hints from the transcript, calls the
// LLM for a structured HTML summary, and publishes the result.
package internal_report

import (
	"sort"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
)

const clipSeconds = 10 * time.Second

// SpeakerStat is one participant's computed floor-time and turn count.
type SpeakerStat struct {
	Name      string        `json:"name"`
	TalkTime  time.Duration `json:"talkTime"`
	TurnCount int           `json:"turnCount"`
}

// ComputeStatistics implements step 2: sorts entries by
// timestamp, credits clip(Δ, 0, 10s) between consecutive entries to every
// speaker active at the start of the interval, and counts a "turn" each
// time a speaker appears who was not active in the previous entry.
func ComputeStatistics(entries []internal_ipc.ActivityEntry) []SpeakerStat {
	sorted := make([]internal_ipc.ActivityEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	stats := make(map[string]*SpeakerStat)
	order := make([]string, 0)
	statFor := func(name string) *SpeakerStat {
		if s, ok := stats[name]; ok {
			return s
		}
		s := &SpeakerStat{Name: name}
		stats[name] = s
		order = append(order, name)
		return s
	}

	var prevSpeakers []string
	for i, entry := range sorted {
		prevSet := toSet(prevSpeakers)
		for _, speaker := range entry.Speakers {
			stat := statFor(speaker)
			if !prevSet[speaker] {
				stat.TurnCount++
			}
		}

		if i+1 < len(sorted) {
			delta := sorted[i+1].Timestamp.Sub(entry.Timestamp)
			if delta < 0 {
				delta = 0
			}
			if delta > clipSeconds {
				delta = clipSeconds
			}
			for _, speaker := range entry.Speakers {
				statFor(speaker).TalkTime += delta
			}
		}
		prevSpeakers = entry.Speakers
	}

	out := make([]SpeakerStat, 0, len(order))
	for _, name := range order {
		out = append(out, *stats[name])
	}
	return out
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
