// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_httpapi

import internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"

// StartBotRequest is the body of POST /start-bot.
type StartBotRequest struct {
	Platform       internal_ipc.Platform `json:"platform" binding:"required"`
	MeetingURL     string                `json:"meeting_url" binding:"required"`
	Title          string                `json:"title"`
	UserID         string                `json:"user_id"`
	Password       string                `json:"password"`
	BotDisplayName string                `json:"bot_display_name"`
}

// BotCommandRequest is the body of POST /bot-command.
type BotCommandRequest struct {
	Command internal_ipc.CommandKind `json:"command" binding:"required"`
}

// ErrorResponse is the uniform JSON error shape returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BotStatusResponse is the body of GET /bot-status, merging the Job,
// WorkerStatus and transcript-presence documents.
type BotStatusResponse struct {
	Active        bool                       `json:"active"`
	Platform      internal_ipc.Platform      `json:"platform,omitempty"`
	MeetingURL    string                     `json:"meeting_url,omitempty"`
	Title         string                     `json:"title,omitempty"`
	Worker        *internal_ipc.WorkerStatus `json:"worker,omitempty"`
	HasTranscript bool                       `json:"has_transcript"`
}

// SummaryResponse is returned by POST /bot-command when command=summary, a
// lightweight snapshot rather than the full generated report (see
// DESIGN.md for the reasoning behind returning this instead of a queued
// command).
type SummaryResponse struct {
	TranscriptCharCount int      `json:"transcript_char_count"`
	RecentSpeakers      []string `json:"recent_speakers"`
}
