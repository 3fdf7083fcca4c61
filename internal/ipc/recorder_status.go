// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import "time"

// RecorderStatus is written once by the Recorder at shutdown to tell the
// Worker how many segments made it out.
type RecorderStatus struct {
	Success         bool      `json:"success"`
	SegmentsSent    int       `json:"segments_sent"`
	SegmentsSkipped int       `json:"segments_skipped"`
	Timestamp       time.Time `json:"timestamp"`
}

// SaveRecorderStatus writes the completion document.
func (s *Store) SaveRecorderStatus(rs *RecorderStatus) error {
	return saveJSON(s.path(recorderStatusFile), rs)
}

// LoadRecorderStatus returns the current RecorderStatus and whether one
// exists.
func (s *Store) LoadRecorderStatus() (RecorderStatus, bool) {
	var rs RecorderStatus
	if !loadJSON(s.path(recorderStatusFile), &rs) {
		return RecorderStatus{}, false
	}
	return rs, true
}

// ClearRecorderStatus removes the document, done on job init.
func (s *Store) ClearRecorderStatus() error {
	return deleteFile(s.path(recorderStatusFile))
}

// SignalStop touches stop_recording.signal, the Worker's cooperative
// shutdown marker for the Recorder subprocess.
func (s *Store) SignalStop() error {
	return appendLine(s.path(stopRecordingSignal), []byte{})
}

// StopSignaled reports whether stop_recording.signal exists.
func (s *Store) StopSignaled() bool {
	return exists(s.path(stopRecordingSignal))
}

// ClearStopSignal removes the marker, done at job init so a stale signal
// from a previous run never short-circuits a fresh recording.
func (s *Store) ClearStopSignal() error {
	return deleteFile(s.path(stopRecordingSignal))
}
