// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_httpapi

import (
	"io"
	"net/http"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	internal_transcription "github.com/rapidaai/meetingbot/internal/transcription"
	"github.com/rapidaai/meetingbot/pkg/commons"

	"github.com/gin-gonic/gin"
)

const defaultBotDisplayName = "Meeting Bot"

// Handler implements the five endpoints against the shared IPC
// store and the transcription Service.
type Handler struct {
	logger         commons.Logger
	store          *internal_ipc.Store
	transcriber    *internal_transcription.Service
	botDisplayName string
}

// NewHandler constructs a Handler bound to the shared IPC store and
// transcription Service. An empty botDisplayName falls back to a default.
func NewHandler(logger commons.Logger, store *internal_ipc.Store, transcriber *internal_transcription.Service, botDisplayName string) *Handler {
	if botDisplayName == "" {
		botDisplayName = defaultBotDisplayName
	}
	return &Handler{logger: logger, store: store, transcriber: transcriber, botDisplayName: botDisplayName}
}

// StartBot handles POST /start-bot: validates the meeting URL (parsing
// Zoom-specific meeting ID/passcode when the platform is zoom), rejects a
// submission while a Job is already active, and writes the new Job.
func (h *Handler) StartBot(c *gin.Context) {
	var req StartBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if existing, ok := h.store.LoadJob(); ok && existing.Active {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "a meeting is already active"})
		return
	}

	job := internal_ipc.Job{
		Active:         true,
		Platform:       req.Platform,
		MeetingURL:     req.MeetingURL,
		Title:          req.Title,
		UserID:         req.UserID,
		Passcode:       req.Password,
		BotDisplayName: req.BotDisplayName,
		CreatedAt:      time.Now(),
	}
	if job.BotDisplayName == "" {
		job.BotDisplayName = h.botDisplayName
	}

	if req.Platform == internal_ipc.PlatformZoom {
		meetingID, passcode, ok := ParseZoomMeeting(req.MeetingURL)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not extract a zoom meeting id from meeting_url"})
			return
		}
		job.MeetingID = meetingID
		if job.Passcode == "" {
			job.Passcode = passcode
		}
		job.MeetingURL = BuildZoomJoinURL(meetingID, job.Passcode)
	}

	if err := h.store.ResetForNewJob(); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.store.SaveJob(&job); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, job)
}

// BotCommand handles POST /bot-command: writes a control Command for the
// Worker's loop to observe, or for command=summary returns an immediate
// snapshot instead of writing anything (it has no effect to wait for).
func (h *Handler) BotCommand(c *gin.Context) {
	var req BotCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if req.Command == internal_ipc.CommandSummary {
		c.JSON(http.StatusOK, h.summarize())
		return
	}

	cmd := &internal_ipc.Command{Command: req.Command, IssuedAt: time.Now()}
	if err := h.store.SaveCommand(cmd, false); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, cmd)
}

func (h *Handler) summarize() SummaryResponse {
	resp := SummaryResponse{TranscriptCharCount: h.store.TranscriptCharCount()}
	entries, ok := h.store.ReadActivityLog()
	if !ok || len(entries) == 0 {
		return resp
	}
	seen := make(map[string]bool)
	for i := len(entries) - 1; i >= 0 && len(resp.RecentSpeakers) < 5; i-- {
		for _, speaker := range entries[i].Speakers {
			if !seen[speaker] {
				seen[speaker] = true
				resp.RecentSpeakers = append(resp.RecentSpeakers, speaker)
			}
		}
	}
	return resp
}

// BotStatus handles GET /bot-status: merges the Job, WorkerStatus and
// transcript-presence documents. "has_transcript" is true once more than
// 10 characters of transcript exist.
func (h *Handler) BotStatus(c *gin.Context) {
	job, _ := h.store.LoadJob()
	resp := BotStatusResponse{
		Active:        job.Active,
		Platform:      job.Platform,
		MeetingURL:    job.MeetingURL,
		Title:         job.Title,
		HasTranscript: h.store.TranscriptCharCount() > 10,
	}
	if ws, ok := h.store.LoadWorkerStatus(); ok {
		resp.Worker = &ws
	}
	c.JSON(http.StatusOK, resp)
}

// TranscribeWebm handles POST /transcribe-webm: the Recorder's per-segment
// upload. It parses a multipart form carrying the audio blob plus sidecar
// fields, then delegates to the transcription Service.
func (h *Handler) TranscribeWebm(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no audio file provided"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read uploaded audio"})
		return
	}

	startTime, err := time.Parse(time.RFC3339, c.PostForm("start_time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_time must be RFC3339"})
		return
	}
	durationSeconds, err := time.ParseDuration(c.DefaultPostForm("duration", "0s"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "duration must be a Go duration string"})
		return
	}

	mimeType := c.PostForm("mime_type")
	if mimeType == "" {
		mimeType = header.Header.Get("Content-Type")
	}

	req := internal_transcription.Request{
		Audio:       audio,
		MimeType:    mimeType,
		StartTime:   startTime,
		Duration:    durationSeconds,
		SpeakerName: c.PostForm("speaker_name"),
		Platform:    internal_ipc.Platform(c.PostForm("platform")),
	}

	appended, err := h.transcriber.Transcribe(c.Request.Context(), req)
	if err != nil {
		if err == internal_transcription.ErrQuotaExhausted {
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appended": appended})
}

// ForceReset handles POST /force-reset: signals any running Worker to stop
// (a forced stop Command, which the Worker's loop polls, plus the
// StopSignal the Recorder polls), waits up to 5 s for the Worker to report
// it is no longer running, and then clears every IPC document. It does not
// itself build a report — the Worker's own teardown path, triggered by the
// stop command, runs the Report Builder.
func (h *Handler) ForceReset(c *gin.Context) {
	if err := h.store.SignalStop(); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.store.SaveCommand(&internal_ipc.Command{Command: internal_ipc.CommandStop, IssuedAt: time.Now()}, true); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		status, ok := h.store.LoadWorkerStatus()
		if !ok || !status.Running {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err := h.store.ResetAll(); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}
