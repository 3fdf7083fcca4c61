// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import "time"

// WorkerStatus is the singleton heartbeat document the Worker writes and
// the HTTP API reads for /bot-status.
type WorkerStatus struct {
	Platform      Platform  `json:"platform"`
	Running       bool      `json:"running"`
	Recording     bool      `json:"recording"`
	Paused        bool      `json:"paused"`
	StatusMessage string    `json:"status_message"`
	Error         string    `json:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// SaveWorkerStatus writes the heartbeat document atomically.
func (s *Store) SaveWorkerStatus(ws *WorkerStatus) error {
	return saveJSON(s.path(workerStatusFile), ws)
}

// LoadWorkerStatus returns the current WorkerStatus and whether one exists.
func (s *Store) LoadWorkerStatus() (WorkerStatus, bool) {
	var ws WorkerStatus
	if !loadJSON(s.path(workerStatusFile), &ws) {
		return WorkerStatus{}, false
	}
	return ws, true
}

// ResetWorkerStatus clears the document, used by the Dispatcher on startup
// and by /force-reset.
func (s *Store) ResetWorkerStatus() error {
	return deleteFile(s.path(workerStatusFile))
}
