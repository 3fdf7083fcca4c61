// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_worker

import (
	"context"
	"os"
	"os/exec"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	internal_meeting "github.com/rapidaai/meetingbot/internal/meeting"
)

// loop runs the Worker's 500ms poll body: command/end/speaker-poll/
// heartbeat. Returns the reason the meeting ended (or "" if stopped by
// command) plus a human-readable detail message, populated for
// EndReasonInvalidLink.
func (w *Worker) loop(ctx context.Context, client internal_meeting.Client, platform internal_ipc.Platform) (internal_meeting.EndReason, string) {
	ticker := time.NewTicker(loopInterval)
	defer ticker.Stop()

	var lastSpeakers []string
	var lastRefresh time.Time
	recordingStartedAt := time.Now()

	for {
		select {
		case <-ctx.Done():
			return "", ""
		case <-ticker.C:
		}

		if w.shouldStop() {
			return "", ""
		}

		ended, reason, detail, err := client.CheckMeetingEnded(ctx)
		if err != nil {
			w.logger.Warnf("worker: check_ended probe failed: %v", err)
		} else if ended {
			return reason, detail
		}

		speakers, err := client.ActiveSpeakers(ctx)
		if err != nil {
			w.logger.Warnf("worker: active_speakers probe failed: %v", err)
		} else if len(speakers) > 0 && !sameOrderedSpeakers(speakers, lastSpeakers) {
			elapsed := time.Since(recordingStartedAt).Seconds()
			if err := w.store.AppendTimelineEntry(elapsed, speakers); err != nil {
				w.logger.Warnf("worker: failed to append timeline entry: %v", err)
			}
			if err := w.store.AppendActivity(internal_ipc.ActivityEntry{
				Timestamp: time.Now(),
				Platform:  platform,
				Speakers:  speakers,
			}); err != nil {
				w.logger.Warnf("worker: failed to append activity log: %v", err)
			}
			_ = w.store.SaveParticipantSnapshot(&internal_ipc.ParticipantSnapshot{
				Platform:       platform,
				Participants:   w.cachedOrFetchedParticipants(ctx, client),
				ActiveSpeakers: speakers,
				Timestamp:      time.Now(),
			})
			lastSpeakers = speakers
		}

		if shouldRefreshSnapshot(lastRefresh, time.Now(), participantRefreshEvery) {
			if participants, err := client.Participants(ctx); err == nil {
				_ = w.store.SaveParticipantSnapshot(&internal_ipc.ParticipantSnapshot{
					Platform:       platform,
					Participants:   participants,
					ActiveSpeakers: lastSpeakers,
					Timestamp:      time.Now(),
				})
			}
			lastRefresh = time.Now()
		}

		_ = w.store.SaveWorkerStatus(&internal_ipc.WorkerStatus{
			Platform:      platform,
			Running:       true,
			Recording:     true,
			StatusMessage: "in meeting",
			Timestamp:     time.Now(),
		})
	}
}

// shouldStop consumes a pending stop Command, marking it processed.
func (w *Worker) shouldStop() bool {
	cmd, ok := w.store.LoadCommand()
	if !ok || cmd.Processed || cmd.Command != internal_ipc.CommandStop {
		return false
	}
	_ = w.store.MarkCommandProcessed(internal_ipc.CommandStop)
	return true
}

// cachedOrFetchedParticipants re-reads the participant list from client,
// falling back to nil on failure. A platform client's Participants returns
// its last non-empty list when a fresh scan finds no names.
func (w *Worker) cachedOrFetchedParticipants(ctx context.Context, client internal_meeting.Client) []string {
	participants, err := client.Participants(ctx)
	if err != nil {
		return nil
	}
	return participants
}

func sameOrderedSpeakers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// shouldRefreshSnapshot reports whether at least interval has elapsed
// since lastRefresh.
func shouldRefreshSnapshot(lastRefresh, now time.Time, interval time.Duration) bool {
	return lastRefresh.IsZero() || now.Sub(lastRefresh) >= interval
}

// teardown runs the Worker's shutdown sequence. When the meeting ended for
// any reason other than a normal hangup, that reason (and its detail, if
// any) is recorded as the WorkerStatus error so callers can distinguish an
// intentional stop from an invalid link or a lost-controls failure.
func (w *Worker) teardown(ctx context.Context, client internal_meeting.Client, recorderCmd *exec.Cmd, job internal_ipc.Job, endReason internal_meeting.EndReason, endDetail string) {
	_ = client.Close(ctx)

	_ = w.store.SignalStop()
	w.waitForRecorder(recorderCmd)

	if err := w.runReportBuilder(job); err != nil {
		w.logger.Warnf("worker: report builder failed: %v", err)
	}

	status := &internal_ipc.WorkerStatus{
		Platform:      job.Platform,
		Running:       false,
		StatusMessage: "ended: " + string(endReason),
		Timestamp:     time.Now(),
	}
	if endReason != "" && endReason != internal_meeting.EndReasonNormal {
		if endDetail != "" {
			status.Error = endDetail
		} else {
			status.Error = string(endReason)
		}
	}

	_ = w.store.ResetForNewJob()
	_ = w.store.SaveWorkerStatus(status)
	_ = w.store.DeleteJob()
}

func (w *Worker) waitForRecorder(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-done:
	case <-time.After(recorderStopWait):
		w.logger.Warnf("worker: recorder did not exit within %s, killing", recorderStopWait)
		_ = cmd.Process.Kill()
		<-done
	}
}

func (w *Worker) runReportBuilder(job internal_ipc.Job) error {
	cmd := exec.Command(os.Args[0], "report", "--platform", string(job.Platform), "--data-dir", w.cfg.DataDir, "--report-dir", w.cfg.ReportDir)
	return cmd.Run()
}
