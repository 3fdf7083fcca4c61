// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import "time"

// ParticipantSnapshot is the last-writer-wins singleton describing who is
// currently in the meeting. Readers accept stale reads up to one refresh
// interval.
type ParticipantSnapshot struct {
	Platform       Platform  `json:"platform"`
	Participants   []string  `json:"participants"`
	ActiveSpeakers []string  `json:"active_speakers,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// SaveParticipantSnapshot overwrites the snapshot document.
func (s *Store) SaveParticipantSnapshot(snap *ParticipantSnapshot) error {
	return saveJSON(s.path(participantsFile), snap)
}

// LoadParticipantSnapshot returns the current snapshot and whether one
// exists.
func (s *Store) LoadParticipantSnapshot() (ParticipantSnapshot, bool) {
	var snap ParticipantSnapshot
	if !loadJSON(s.path(participantsFile), &snap) {
		return ParticipantSnapshot{}, false
	}
	return snap, true
}

// ClearParticipantSnapshot removes the snapshot (used on job init/reset).
func (s *Store) ClearParticipantSnapshot() error {
	return deleteFile(s.path(participantsFile))
}
