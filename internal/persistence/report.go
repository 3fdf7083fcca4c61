// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_persistence holds the one relational table the system
// writes to: the meetings row a finished Report Builder run inserts,
// referencing the blob-store URLs of the uploaded HTML report and
// transcript.
package internal_persistence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeetingReport is the row inserted once per completed meeting. There is no
// concurrent-claim lifecycle here: exactly one Report Builder run produces
// exactly one row.
type MeetingReport struct {
	ID              string    `json:"id" gorm:"column:id;type:varchar(36);primaryKey"`
	UserID          string    `json:"userId" gorm:"column:user_id;type:varchar(100);index"`
	Platform        string    `json:"platform" gorm:"column:platform;type:varchar(20);not null"`
	Title           string    `json:"title" gorm:"column:title;type:varchar(255);not null;default:''"`
	MeetingID       string    `json:"meetingId" gorm:"column:meeting_id;type:varchar(100);not null;default:''"`
	ReportURL       string    `json:"reportUrl" gorm:"column:report_url;type:text;not null"`
	TranscriptURL   string    `json:"transcriptUrl" gorm:"column:transcript_url;type:text;not null"`
	UnknownSpeakers string    `json:"unknownSpeakers" gorm:"column:unknown_speakers;type:text;not null;default:''"`
	CreatedAt       time.Time `json:"createdAt" gorm:"column:created_at;type:timestamp;not null;default:NOW();<-:create"`
}

func (MeetingReport) TableName() string {
	return "meeting_reports"
}

// BeforeCreate stamps a UUID primary key and creation timestamp before
// INSERT when the caller hasn't already set them.
func (r *MeetingReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}
