// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import "time"

// Platform identifies which meeting client a Job targets.
type Platform string

const (
	PlatformZoom  Platform = "zoom"
	PlatformTeams Platform = "teams"
	PlatformMeet  Platform = "meet"
)

// Job is the singleton mutable document describing the meeting to join.
// At most one Job may be active at a time.
type Job struct {
	Active         bool      `json:"active"`
	Platform       Platform  `json:"platform"`
	MeetingURL     string    `json:"meeting_url"`
	MeetingID      string    `json:"meeting_id"`
	Passcode       string    `json:"passcode,omitempty"`
	BotDisplayName string    `json:"bot_display_name"`
	Title          string    `json:"title"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// SaveJob writes the Job document atomically. The API is the only writer at
// submission time; the Worker is the only writer at deletion time.
func (s *Store) SaveJob(job *Job) error {
	return saveJSON(s.path(jobFile), job)
}

// LoadJob returns the current Job and whether one exists. A missing or
// corrupt file is reported as "no job", never an error.
func (s *Store) LoadJob() (Job, bool) {
	var job Job
	if !loadJSON(s.path(jobFile), &job) {
		return Job{}, false
	}
	return job, true
}

// DeleteJob removes the Job document, letting the Dispatcher resume
// polling for the next submission.
func (s *Store) DeleteJob() error {
	return deleteFile(s.path(jobFile))
}
