// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_recorder

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

// ffmpegSegmentArgs builds the non-negotiable encoding parameters:
// Opus, mono, 16 kHz, 16 kbit/s CBR, application voip, independently
// decodable 300 s WebM segments.
func ffmpegSegmentArgs(inputArgs []string, segmentDir string) []string {
	args := append([]string{"-y"}, inputArgs...)
	args = append(args,
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "libopus",
		"-b:a", "16k",
		"-vbr", "off",
		"-application", "voip",
		"-f", "segment",
		"-segment_time", fmt.Sprintf("%d", segmentSeconds),
		"-reset_timestamps", "1",
		"-break_non_keyframes", "1",
		"-avoid_negative_ts", "make_zero",
		filepath.Join(segmentDir, "chunk_%05d.webm"),
	)
	return args
}

func (r *Recorder) spawnFFmpeg(ctx context.Context) error {
	binary := r.adapter.FFmpegBinaryPath()
	args := ffmpegSegmentArgs(r.adapter.FFmpegInputArgs(), r.segmentDir)

	cmd := exec.CommandContext(ctx, binary, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("recorder: failed to open ffmpeg stdin: %w", err)
	}
	cmd.Cancel = nil // stop protocol is cooperative (stdin "q"), not context kill

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("recorder: failed to start ffmpeg (%s): %w", binary, err)
	}

	r.cmd = cmd
	r.in = stdin
	r.logger.Infof("recorder: ffmpeg started (pid=%d) writing segments to %s", cmd.Process.Pid, r.segmentDir)
	return nil
}
