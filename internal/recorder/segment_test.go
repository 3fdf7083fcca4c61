// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_recorder

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Debug(args ...interface{})                 {}
func (testLogger) Debugf(format string, args ...interface{}) {}
func (testLogger) Info(args ...interface{})                  {}
func (testLogger) Infof(format string, args ...interface{})  {}
func (testLogger) Warn(args ...interface{})                  {}
func (testLogger) Warnf(format string, args ...interface{})  {}
func (testLogger) Error(args ...interface{})                 {}
func (testLogger) Errorf(format string, args ...interface{}) {}
func (testLogger) Fatalf(format string, args ...interface{}) {}

func TestListFinalizedSegmentsExcludesNewestFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"chunk_00000.webm", "chunk_00001.webm", "chunk_00002.webm"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	finalized, err := listFinalizedSegments(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "chunk_00000.webm"),
		filepath.Join(dir, "chunk_00001.webm"),
	}, finalized)
}

func TestListFinalizedSegmentsEmptyWithAtMostOneFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chunk_00000.webm"), []byte("x"), 0o644))

	finalized, err := listFinalizedSegments(dir)
	require.NoError(t, err)
	require.Nil(t, finalized)
}

func TestValidateSegmentRejectsUndersizedFile(t *testing.T) {
	require.False(t, validateSegment(minSegmentBytes-1, 5.0, 10, true))
}

func TestValidateSegmentRejectsShortAndSmallSegment(t *testing.T) {
	require.False(t, validateSegment(50*1024, 0.1, 10, true))
}

func TestValidateSegmentAcceptsShortButLargeSegment(t *testing.T) {
	require.True(t, validateSegment(suspiciousBytes+1, 0.1, 10, true))
}

func TestValidateSegmentAcceptsWhenFFprobeFails(t *testing.T) {
	require.True(t, validateSegment(minSegmentBytes+1, 0, 0, false))
}

func TestValidateSegmentRejectsInsufficientClusterCount(t *testing.T) {
	require.False(t, validateSegment(minSegmentBytes+1, 5.0, 1, true))
}

func TestValidateSegmentAcceptsHealthySegment(t *testing.T) {
	require.True(t, validateSegment(500*1024, 300.0, 12, true))
}

// TestScanAndUploadSkipsSegmentsOlderThanRecordingStart covers the case a
// crash leaves a leftover chunk file from a previous run in segmentDir: it
// must be marked uploaded (so it is never retried) without ever reaching
// ffprobe or the upload step, since both would fail in this test's
// environment anyway.
func TestScanAndUploadSkipsSegmentsOlderThanRecordingStart(t *testing.T) {
	dir := t.TempDir()
	stalePath := filepath.Join(dir, "chunk_00000.webm")
	newestPath := filepath.Join(dir, "chunk_00001.webm")
	require.NoError(t, os.WriteFile(stalePath, []byte("stale-bytes"), 0o644))
	require.NoError(t, os.WriteFile(newestPath, []byte("newest-bytes"), 0o644))

	recordingStart := time.Now()
	staleTime := recordingStart.Add(-time.Hour)
	require.NoError(t, os.Chtimes(stalePath, staleTime, staleTime))

	r := &Recorder{
		logger:     testLogger{},
		store:      internal_ipc.NewStore(t.TempDir()),
		segmentDir: dir,
		uploaded:   map[string]bool{},
	}

	r.scanAndUpload(context.Background(), recordingStart)

	require.True(t, r.uploaded["chunk_00000.webm"], "stale segment should be marked uploaded without being sent")
	require.Equal(t, 0, r.sent)
	require.Equal(t, 0, r.skipped)
}

func TestFFmpegSegmentArgsIncludesNonNegotiableEncodingParams(t *testing.T) {
	args := ffmpegSegmentArgs([]string{"-f", "pulse", "-i", "meetingbot_sink.monitor"}, "/tmp/segs")
	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-c:a libopus", "-ar 16000", "-ac 1", "-b:a 16k",
		"-application voip", "-segment_time 300", "-reset_timestamps 1",
		"-break_non_keyframes 1", "-avoid_negative_ts make_zero",
	} {
		require.Contains(t, joined, want)
	}
}
