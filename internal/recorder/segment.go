// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_recorder

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
)

const (
	minSegmentBytes     = 20 * 1024
	suspiciousBytes     = 100 * 1024
	minSegmentDuration  = 0.3
	minClusterCount     = 2
)

// ffprobeFormat is the subset of `ffprobe -show_format -show_streams -of
// json` output the validator needs.
type ffprobeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		NbReadPackets string `json:"nb_read_packets"`
	} `json:"streams"`
}

// listFinalizedSegments returns chunk_*.webm files in segmentDir sorted by
// their monotonic numeric suffix, excluding the newest one: ffmpeg's
// segment muxer only finalizes the previous file once a new one appears.
func listFinalizedSegments(segmentDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(segmentDir, "chunk_*.webm"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	if len(matches) <= 1 {
		return nil, nil
	}
	return matches[:len(matches)-1], nil
}

// probeSegment shells out to ffprobe and reports (durationSeconds,
// clusterCount, ok). ok is false only when ffprobe itself could not be
// run or its output could not be parsed.
func probeSegment(ctx context.Context, ffprobeBinary, path string) (float64, int, bool) {
	cmd := exec.CommandContext(ctx, ffprobeBinary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-show_entries", "stream=nb_read_packets",
		"-count_packets",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, 0, false
	}

	var parsed ffprobeFormat
	if err := json.Unmarshal(out, &parsed); err != nil {
		return 0, 0, false
	}

	duration, _ := strconv.ParseFloat(parsed.Format.Duration, 64)

	clusters := 0
	for _, s := range parsed.Streams {
		if n, err := strconv.Atoi(s.NbReadPackets); err == nil {
			clusters += n
		}
	}
	return duration, clusters, true
}

// validateSegment implements validation rules: minimum size, a
// duration+size combination that indicates a truncated/empty capture, and
// (when ffprobe succeeded) a minimum cluster count. ffprobe failure is
// never treated as a rejection ("no false negatives").
func validateSegment(sizeBytes int64, duration float64, clusters int, probedOK bool) bool {
	if sizeBytes < minSegmentBytes {
		return false
	}
	if !probedOK {
		return true
	}
	if duration < minSegmentDuration && sizeBytes < suspiciousBytes {
		return false
	}
	if clusters > 0 && clusters < minClusterCount {
		return false
	}
	return true
}

// scanAndUpload finds newly finalized segments, validates each, and
// uploads valid ones serially, tracking the
// uploaded-set so a segment is never sent twice.
func (r *Recorder) scanAndUpload(ctx context.Context, recordingStart time.Time) {
	segments, err := listFinalizedSegments(r.segmentDir)
	if err != nil {
		r.logger.Warnf("recorder: segment scan failed: %v", err)
		return
	}

	for _, path := range segments {
		base := filepath.Base(path)
		r.uploadMu.Lock()
		already := r.uploaded[base]
		r.uploadMu.Unlock()
		if already {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(recordingStart) {
			r.logger.Warnf("recorder: skipping stale segment %s from before this recording started", base)
			r.markUploaded(base)
			continue
		}
		duration, clusters, probedOK := probeSegment(ctx, "ffprobe", path)
		if !validateSegment(info.Size(), duration, clusters, probedOK) {
			r.logger.Warnf("recorder: rejecting invalid segment %s (size=%d duration=%.2f probedOK=%v)", base, info.Size(), duration, probedOK)
			r.skipped++
			r.markUploaded(base)
			continue
		}

		hint := r.speakerHint(info.ModTime())
		if err := r.uploadSegment(ctx, path, info.ModTime(), duration, hint); err != nil {
			r.logger.Warnf("recorder: upload failed for %s, will retry next scan: %v", base, err)
			continue
		}
		r.sent++
		r.markUploaded(base)
	}
}

func (r *Recorder) markUploaded(base string) {
	r.uploadMu.Lock()
	r.uploaded[base] = true
	r.uploadMu.Unlock()
}

// speakerHint consults speaker_activity_log for an entry within ±10s of
// mtime.
func (r *Recorder) speakerHint(mtime time.Time) string {
	entries, ok := r.store.ReadActivityLog()
	if !ok {
		return ""
	}
	name, found := internal_ipc.NearestSpeaker(entries, mtime, 10*time.Second)
	if !found {
		return ""
	}
	return name
}
