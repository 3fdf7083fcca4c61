// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	"github.com/rapidaai/meetingbot/pkg/commons"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func newTestLogger() commons.Logger { return testLogger{} }

func (testLogger) Debug(args ...interface{})                 {}
func (testLogger) Debugf(format string, args ...interface{}) {}
func (testLogger) Info(args ...interface{})                  {}
func (testLogger) Infof(format string, args ...interface{})  {}
func (testLogger) Warn(args ...interface{})                  {}
func (testLogger) Warnf(format string, args ...interface{})  {}
func (testLogger) Error(args ...interface{})                 {}
func (testLogger) Errorf(format string, args ...interface{}) {}
func (testLogger) Fatalf(format string, args ...interface{}) {}

func newTestEngine(t *testing.T) (*gin.Engine, *internal_ipc.Store) {
	gin.SetMode(gin.TestMode)
	store := internal_ipc.NewStore(t.TempDir())
	handler := NewHandler(newTestLogger(), store, nil, "")
	engine := gin.New()
	engine.Use(gin.Recovery())
	BotRoutes(engine, newTestLogger(), handler)
	return engine, store
}

func doJSON(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestStartBotParsesZoomURLAndSavesJob(t *testing.T) {
	engine, store := newTestEngine(t)
	rec := doJSON(engine, http.MethodPost, "/start-bot", StartBotRequest{
		Platform:   internal_ipc.PlatformZoom,
		MeetingURL: "https://zoom.us/j/1234567890?pwd=secret",
		Title:      "Weekly sync",
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	job, ok := store.LoadJob()
	require.True(t, ok)
	require.True(t, job.Active)
	require.Equal(t, "1234567890", job.MeetingID)
	require.Equal(t, "secret", job.Passcode)
}

func TestStartBotRejectsUnparseableZoomURL(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := doJSON(engine, http.MethodPost, "/start-bot", StartBotRequest{
		Platform:   internal_ipc.PlatformZoom,
		MeetingURL: "let's meet later",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartBotRejectsWhenAlreadyActive(t *testing.T) {
	engine, store := newTestEngine(t)
	require.NoError(t, store.SaveJob(&internal_ipc.Job{Active: true, Platform: internal_ipc.PlatformMeet}))

	rec := doJSON(engine, http.MethodPost, "/start-bot", StartBotRequest{
		Platform:   internal_ipc.PlatformMeet,
		MeetingURL: "https://meet.google.com/abc-defg-hij",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestBotCommandWritesCommandDocument(t *testing.T) {
	engine, store := newTestEngine(t)
	rec := doJSON(engine, http.MethodPost, "/bot-command", BotCommandRequest{Command: internal_ipc.CommandPause})
	require.Equal(t, http.StatusAccepted, rec.Code)

	cmd, ok := store.LoadCommand()
	require.True(t, ok)
	require.Equal(t, internal_ipc.CommandPause, cmd.Command)
	require.False(t, cmd.Processed)
}

func TestBotCommandSummaryReturnsSnapshotWithoutWritingCommand(t *testing.T) {
	engine, store := newTestEngine(t)
	_, err := store.AppendTranscript("Ada: hello there, this is a longer line of dialogue.")
	require.NoError(t, err)

	rec := doJSON(engine, http.MethodPost, "/bot-command", BotCommandRequest{Command: internal_ipc.CommandSummary})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Greater(t, resp.TranscriptCharCount, 10)

	_, ok := store.LoadCommand()
	require.False(t, ok)
}

func TestBotStatusMergesJobWorkerAndTranscriptFlag(t *testing.T) {
	engine, store := newTestEngine(t)
	require.NoError(t, store.SaveJob(&internal_ipc.Job{Active: true, Platform: internal_ipc.PlatformTeams, Title: "Standup"}))
	require.NoError(t, store.SaveWorkerStatus(&internal_ipc.WorkerStatus{Platform: internal_ipc.PlatformTeams, Running: true}))
	_, err := store.AppendTranscript("Ada: this line is definitely over ten characters long.")
	require.NoError(t, err)

	rec := doJSON(engine, http.MethodGet, "/bot-status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BotStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Active)
	require.Equal(t, "Standup", resp.Title)
	require.NotNil(t, resp.Worker)
	require.True(t, resp.Worker.Running)
	require.True(t, resp.HasTranscript)
}

func TestForceResetClearsDocumentsEvenWithNoWorkerRunning(t *testing.T) {
	engine, store := newTestEngine(t)
	require.NoError(t, store.SaveJob(&internal_ipc.Job{Active: true, Platform: internal_ipc.PlatformZoom}))

	rec := doJSON(engine, http.MethodPost, "/force-reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	_, ok := store.LoadJob()
	require.False(t, ok)
	require.False(t, store.StopSignaled())
}

func TestTranscribeWebmRejectsMissingAudioFile(t *testing.T) {
	engine, _ := newTestEngine(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("start_time", "2026-01-01T10:00:00Z"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe-webm", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestTranscribeWebmAcceptsRecorderWireFormat feeds the handler exactly the
// start_time/duration encoding the Recorder produces (RFC3339 timestamp,
// Go-duration-string with a unit suffix) rather than a hand-picked literal,
// so the two sides can't silently drift apart again. The test engine has no
// real transcriber wired up, so a successfully parsed request still ends in
// a 500 once it reaches Service.Transcribe; what this test guards is that it
// gets there at all instead of being rejected at the 400 validation stage.
func TestTranscribeWebmAcceptsRecorderWireFormat(t *testing.T) {
	engine, _ := newTestEngine(t)

	mtime := time.Date(2026, 1, 1, 10, 5, 0, 0, time.UTC)
	duration := 300.0
	startTime := mtime.Add(-time.Duration(duration * float64(time.Second)))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", "chunk_000001.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-audio-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("start_time", startTime.Format(time.RFC3339)))
	require.NoError(t, writer.WriteField("duration", fmt.Sprintf("%.3fs", duration)))
	require.NoError(t, writer.WriteField("platform", "zoom"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe-webm", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.NotEqual(t, http.StatusBadRequest, rec.Code, "Recorder's wire format must parse cleanly: %s", rec.Body.String())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTranscribeWebmRejectsInvalidStartTime(t *testing.T) {
	engine, _ := newTestEngine(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", "segment.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-audio-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("start_time", "not-a-time"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe-webm", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
