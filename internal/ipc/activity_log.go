// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import "time"

// ActivityEntry is one record of speaker_activity_log.json, the format the
// Recorder consults for a per-segment speaker hint and the Report Builder
// consults for per-speaker statistics.
type ActivityEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Platform  Platform  `json:"platform"`
	Speakers  []string  `json:"speakers"`
}

// AppendActivity rewrites speaker_activity_log.json with entry appended.
// Unlike the timeline, this document is a whole-file JSON array,
// so the write is atomic-whole-file rather than a raw append.
func (s *Store) AppendActivity(entry ActivityEntry) error {
	entries, _ := s.ReadActivityLog()
	entries = append(entries, entry)
	return saveJSON(s.path(speakerActivityFile), entries)
}

// ReadActivityLog returns the full activity log, or nil if absent/corrupt.
func (s *Store) ReadActivityLog() ([]ActivityEntry, bool) {
	var entries []ActivityEntry
	if !loadJSON(s.path(speakerActivityFile), &entries) {
		return nil, false
	}
	return entries, true
}

// TruncateActivityLog clears the activity log at job start.
func (s *Store) TruncateActivityLog() error {
	return deleteFile(s.path(speakerActivityFile))
}

// NearestSpeaker finds the activity entry whose Timestamp is within
// ±window of at, returning its first speaker as the per-segment speaker
// hint. Entries exactly window seconds away are included (closed
// interval).
func NearestSpeaker(entries []ActivityEntry, at time.Time, window time.Duration) (string, bool) {
	var best ActivityEntry
	var bestDelta time.Duration
	found := false
	for _, e := range entries {
		delta := at.Sub(e.Timestamp)
		if delta < 0 {
			delta = -delta
		}
		if delta > window {
			continue
		}
		if !found || delta < bestDelta {
			best, bestDelta, found = e, delta, true
		}
	}
	if !found || len(best.Speakers) == 0 {
		return "", false
	}
	return best.Speakers[0], true
}
