// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import "path/filepath"

// Store resolves the well-known document paths under a single data
// directory, so every component shares one root instead of hard-coding
// "data/...".
type Store struct {
	dataDir string
}

// NewStore creates a Store rooted at dataDir (created on first write).
func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

const (
	jobFile              = "bot_task.json"
	commandFile          = "bot_command.json"
	workerStatusFile     = "worker_status.json"
	speakerTimelineFile  = "speaker_timeline.jsonl"
	speakerActivityFile  = "speaker_activity_log.json"
	participantsFile     = "current_meeting_participants.json"
	transcriptFile       = "latest_transcript.txt"
	recorderStatusFile   = "recorder_status.json"
	stopRecordingSignal  = "stop_recording.signal"
	transcriptTailLength = 15000
)
