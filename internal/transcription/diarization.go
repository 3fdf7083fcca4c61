// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_transcription implements the server side of the
// /transcribe-webm contract: diarization-hint resolution, prompt
// construction, the Gemini call with retry, ghost-output filtering, name
// canonicalization, and dedup-append into the transcript cache.
package internal_transcription

import (
	"fmt"
	"strings"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
)

// ResolveHint implements a three-way fallback: a timeline slice when
// start/duration are known, else the single speaker_name hint, else the
// cached participant snapshot.
func ResolveHint(store *internal_ipc.Store, startTime time.Time, duration time.Duration, speakerName string) string {
	if !startTime.IsZero() && duration > 0 {
		if slice := timelineSlice(store, startTime, duration); slice != "" {
			return slice
		}
	}
	if speakerName != "" {
		return speakerName
	}
	if snap, ok := store.LoadParticipantSnapshot(); ok && len(snap.Participants) > 0 {
		return strings.Join(snap.Participants, ", ")
	}
	return ""
}

// timelineSlice scans speaker_timeline for entries within
// [startTime, startTime+duration] whose speaker set differs from the
// previous entry, formatting each as "HH:MM:SS: name1, name2" relative to
// startTime.
func timelineSlice(store *internal_ipc.Store, startTime time.Time, duration time.Duration) string {
	entries, err := store.ReadTimeline()
	if err != nil || len(entries) == 0 {
		return ""
	}

	end := startTime.Add(duration)
	var lines []string
	var prevSpeakers []string
	for i, e := range entries {
		ts := startTime.Add(time.Duration(e.Ts * float64(time.Second)))
		if ts.Before(startTime) || ts.After(end) {
			prevSpeakers = e.Speakers
			continue
		}
		if i > 0 && sameOrderedSet(prevSpeakers, e.Speakers) {
			prevSpeakers = e.Speakers
			continue
		}
		offset := ts.Sub(startTime)
		lines = append(lines, fmt.Sprintf("%s: %s", formatOffset(offset), strings.Join(e.Speakers, ", ")))
		prevSpeakers = e.Speakers
	}
	return strings.Join(lines, "\n")
}

func sameOrderedSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatOffset(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
