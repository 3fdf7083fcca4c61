// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_worker is the per-job coordinator: it joins the
// meeting, spawns the Recorder as a child process, runs the 500ms
// cooperative poll loop, and tears everything down.
package internal_worker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	internal_browser "github.com/rapidaai/meetingbot/internal/browser"
	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	internal_meeting "github.com/rapidaai/meetingbot/internal/meeting"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

const (
	loopInterval            = 500 * time.Millisecond
	participantRefreshEvery = 60 * time.Second
	recorderStopWait        = 60 * time.Second
)

// Config bundles the paths and ports a Worker needs to spawn its
// subprocesses and talk to its own IPC store.
type Config struct {
	DataDir     string
	SegmentDir  string
	ReportDir   string
	BinaryPath  string // chromium/chrome binary for the launcher
	DebugPort   int
	UploadURL   string // this process's own /transcribe-webm endpoint
	WelcomeText string
}

// Worker drives one job from join through teardown.
type Worker struct {
	logger commons.Logger
	store  *internal_ipc.Store
	cfg    Config
}

// New constructs a Worker bound to the shared IPC store.
func New(logger commons.Logger, store *internal_ipc.Store, cfg Config) *Worker {
	return &Worker{logger: logger, store: store, cfg: cfg}
}

// Run implements the pseudocode literally.
func (w *Worker) Run(ctx context.Context, job internal_ipc.Job) error {
	if err := w.init(); err != nil {
		return fmt.Errorf("worker: init failed: %w", err)
	}

	client, err := w.join(ctx, job)
	if err != nil {
		w.setError(job.Platform, fmt.Sprintf("join failed: %v", err))
		return err
	}

	recorderCmd, err := w.postJoin(ctx, client, job)
	if err != nil {
		w.setError(job.Platform, fmt.Sprintf("post-join setup failed: %v", err))
		_ = client.Close(ctx)
		return err
	}

	endReason, endDetail := w.loop(ctx, client, job.Platform)
	w.teardown(ctx, client, recorderCmd, job, endReason, endDetail)
	return nil
}

func (w *Worker) init() error {
	if err := w.store.ResetForNewJob(); err != nil {
		return err
	}
	return w.store.SaveWorkerStatus(&internal_ipc.WorkerStatus{
		Running:   true,
		Timestamp: time.Now(),
	})
}

func (w *Worker) join(ctx context.Context, job internal_ipc.Job) (internal_meeting.Client, error) {
	launcher := internal_browser.NewProcessLauncher(w.logger, w.cfg.BinaryPath, w.cfg.DebugPort)
	client, err := NewMeetingClient(job.Platform, w.logger, launcher)
	if err != nil {
		return nil, err
	}
	if err := client.Start(ctx); err != nil {
		return nil, err
	}
	admitted, err := client.Join(ctx, job.MeetingURL, job.BotDisplayName, job.Passcode)
	if err != nil {
		return nil, err
	}
	if !admitted {
		return nil, fmt.Errorf("worker: bot was never admitted to the meeting")
	}
	return client, nil
}

// postJoin implements "post-join" step: snapshot participants,
// spawn the Recorder subprocess, send the welcome chat message.
func (w *Worker) postJoin(ctx context.Context, client internal_meeting.Client, job internal_ipc.Job) (*exec.Cmd, error) {
	_ = client.OpenParticipantsPanel(ctx)
	participants, err := client.Participants(ctx)
	if err != nil {
		w.logger.Warnf("worker: initial participant scan failed: %v", err)
	}
	_ = w.store.SaveParticipantSnapshot(&internal_ipc.ParticipantSnapshot{
		Platform:     job.Platform,
		Participants: participants,
		Timestamp:    time.Now(),
	})

	recorderCmd, err := w.spawnRecorder(job.Platform)
	if err != nil {
		return nil, err
	}

	welcome := w.cfg.WelcomeText
	if welcome == "" {
		welcome = "Hello, I've joined to record the meeting."
	}
	if err := client.SendChat(ctx, welcome); err != nil {
		w.logger.Warnf("worker: welcome chat failed: %v", err)
	}
	return recorderCmd, nil
}

// spawnRecorder execs this same binary as "recorder --platform <p>",
// relying on the multicall binary answering to every subcommand regardless
// of which cmd/ directory produced it.
func (w *Worker) spawnRecorder(platform internal_ipc.Platform) (*exec.Cmd, error) {
	cmd := exec.Command(os.Args[0], "recorder", "--platform", string(platform),
		"--data-dir", w.cfg.DataDir, "--segment-dir", w.cfg.SegmentDir, "--upload-url", w.cfg.UploadURL)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("worker: failed to spawn recorder: %w", err)
	}
	w.logger.Infof("worker: recorder spawned (pid=%d)", cmd.Process.Pid)
	return cmd, nil
}

func (w *Worker) setError(platform internal_ipc.Platform, message string) {
	_ = w.store.SaveWorkerStatus(&internal_ipc.WorkerStatus{
		Platform:  platform,
		Running:   false,
		Error:     message,
		Timestamp: time.Now(),
	})
}
