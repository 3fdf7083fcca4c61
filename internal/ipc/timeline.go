// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SpeakerTimelineEntry is one append-only line of speaker_timeline.jsonl.
// A new entry is appended only when Speakers differs from the previous
// entry; consumers rely on strict ts monotonicity.
type SpeakerTimelineEntry struct {
	Ts       float64  `json:"ts"`
	Time     string   `json:"time"`
	Speakers []string `json:"speakers"`
}

// sameSpeakers reports whether a and b contain the same ordered set of
// names. Order matters: speakers form an ordered set, not a bag.
func sameSpeakers(a, b []string) bool {
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

// AppendTimelineEntry appends a new entry only if speakers differs from the
// previous entry, preserving the de-dup and monotonicity invariants. The
// timestamp is supplied by the caller (typically time since recording
// start) so tests can control it deterministically.
func (s *Store) AppendTimelineEntry(ts float64, speakers []string) error {
	last, ok := s.lastTimelineEntry()
	if ok && sameSpeakers(last.Speakers, speakers) {
		return nil
	}
	entry := SpeakerTimelineEntry{
		Ts:       ts,
		Time:     formatClockOffset(ts),
		Speakers: speakers,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return appendLine(s.path(speakerTimelineFile), data)
}

func formatClockOffset(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

func (s *Store) lastTimelineEntry() (SpeakerTimelineEntry, bool) {
	entries, err := s.ReadTimeline()
	if err != nil || len(entries) == 0 {
		return SpeakerTimelineEntry{}, false
	}
	return entries[len(entries)-1], true
}

// ReadTimeline returns every well-formed entry in speaker_timeline.jsonl.
// A malformed line is skipped, not fatal, per the IPC contract's tolerance
// for partial/corrupt documents.
func (s *Store) ReadTimeline() ([]SpeakerTimelineEntry, error) {
	f, err := os.Open(s.path(speakerTimelineFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []SpeakerTimelineEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var e SpeakerTimelineEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// TruncateTimeline clears speaker_timeline.jsonl, called at job start so a
// reused data directory never leaks a previous meeting's timeline.
func (s *Store) TruncateTimeline() error {
	return deleteFile(s.path(speakerTimelineFile))
}
