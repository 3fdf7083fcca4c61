// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_recorder drives ffmpeg to produce fixed-duration Opus
// segments and uploads each finalized segment to the transcription
// endpoint, one in flight at a time.
package internal_recorder

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	internal_platform "github.com/rapidaai/meetingbot/internal/platform"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

const (
	scanInterval   = 5 * time.Second
	stopGraceful   = 60 * time.Second
	uploadTimeout  = 300 * time.Second
	segmentSeconds = 300
)

// Recorder owns one ffmpeg child process and the scan-and-upload loop for
// a single job's segment directory.
type Recorder struct {
	logger     commons.Logger
	adapter    internal_platform.Adapter
	store      *internal_ipc.Store
	segmentDir string
	platform   internal_ipc.Platform
	uploadURL  string

	uploadMu sync.Mutex
	uploaded map[string]bool
	sent     int
	skipped  int

	cmd *exec.Cmd
	in  io.WriteCloser
}

// New constructs a Recorder for one job.
func New(logger commons.Logger, adapter internal_platform.Adapter, store *internal_ipc.Store, segmentDir, uploadURL string, platform internal_ipc.Platform) *Recorder {
	return &Recorder{
		logger:     logger,
		adapter:    adapter,
		store:      store,
		segmentDir: segmentDir,
		uploadURL:  uploadURL,
		platform:   platform,
		uploaded:   map[string]bool{},
	}
}

// Run executes the full recorder lifecycle: cleanup stale artifacts, spawn
// ffmpeg, scan-and-upload until ctx is cancelled or the stop signal fires,
// then graceful shutdown.
func (r *Recorder) Run(ctx context.Context) error {
	if err := r.cleanupStale(); err != nil {
		r.logger.Warnf("recorder: stale cleanup failed, continuing: %v", err)
	}
	recordingStart := time.Now()

	if err := r.spawnFFmpeg(ctx); err != nil {
		return fmt.Errorf("recorder: failed to start ffmpeg: %w", err)
	}

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return r.shutdown(recordingStart)
		case <-ticker.C:
			if r.store.StopSignaled() {
				return r.shutdown(recordingStart)
			}
			r.scanAndUpload(ctx, recordingStart)
		}
	}
}

// cleanupStale kills stale ffmpeg processes targeting this segment
// directory and deletes leftover chunk files from a previous crashed run.
func (r *Recorder) cleanupStale() error {
	internal_platform.SweepZombies(r.logger, r.segmentDir, nil)

	matches, err := filepath.Glob(filepath.Join(r.segmentDir, "chunk_*.webm"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		_ = os.Remove(m)
	}
	return os.MkdirAll(r.segmentDir, 0o755)
}

// shutdown implements the stop protocol: graceful ffmpeg flush, bounded
// wait, force kill, then a final upload pass and status write.
func (r *Recorder) shutdown(recordingStart time.Time) error {
	r.stopFFmpegGracefully()
	r.scanAndUpload(context.Background(), recordingStart)

	status := &internal_ipc.RecorderStatus{
		Success:         true,
		SegmentsSent:    r.sent,
		SegmentsSkipped: r.skipped,
		Timestamp:       time.Now(),
	}
	return r.store.SaveRecorderStatus(status)
}

func (r *Recorder) stopFFmpegGracefully() {
	if r.cmd == nil || r.cmd.Process == nil {
		return
	}
	if r.in != nil {
		_, _ = r.in.Write([]byte("q"))
		_ = r.in.Close()
	}

	done := make(chan error, 1)
	go func() { done <- r.cmd.Wait() }()

	select {
	case <-done:
	case <-time.After(stopGraceful):
		r.logger.Warnf("recorder: ffmpeg did not exit within %s, killing", stopGraceful)
		_ = r.cmd.Process.Kill()
		<-done
	}
}
