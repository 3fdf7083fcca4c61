// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_dispatcher is the long-lived process that owns "at most
// one active meeting at a time": it polls for a submitted Job and runs it
// to completion before looking for the next one.
package internal_dispatcher

import (
	"context"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	internal_platform "github.com/rapidaai/meetingbot/internal/platform"
	"github.com/rapidaai/meetingbot/pkg/commons"
	"golang.org/x/sync/errgroup"
)

const (
	pollInterval    = 2 * time.Second
	resweepInterval = 5 * time.Minute
)

// WorkerRunner is the single method the Dispatcher needs from a Worker,
// narrowed so Run can be tested against a fake instead of a real browser.
type WorkerRunner interface {
	Run(ctx context.Context, job internal_ipc.Job) error
}

// Dispatcher polls the shared IPC store for a Job and runs it on a Worker,
// one Job at a time, never overlapping two Worker.Run calls.
type Dispatcher struct {
	logger      commons.Logger
	store       *internal_ipc.Store
	worker      WorkerRunner
	segmentDir  string
	workerMarks []string
}

// New constructs a Dispatcher. segmentDir and workerMarks are forwarded to
// the startup zombie sweep so it can recognize this installation's own
// stale ffmpeg/recorder processes without touching unrelated ones.
func New(logger commons.Logger, store *internal_ipc.Store, worker WorkerRunner, segmentDir string, workerMarks []string) *Dispatcher {
	return &Dispatcher{logger: logger, store: store, worker: worker, segmentDir: segmentDir, workerMarks: workerMarks}
}

// Run blocks until ctx is cancelled, polling every 2s for a Job. At most one
// Worker.Run is in flight at a time; the poll loop only resumes once it
// returns, so a second submission while a meeting is active simply waits
// (the HTTP API is expected to reject concurrent /start-bot calls, but the
// Dispatcher enforces the invariant unconditionally as a backstop).
//
// A second goroutine, supervised alongside the poll loop with
// errgroup.WithContext, periodically re-sweeps for zombie ffmpeg/browser
// processes; if either goroutine returns an error the other is cancelled
// via the shared context, so the whole process exits together.
func (d *Dispatcher) Run(ctx context.Context) error {
	internal_platform.SweepZombies(d.logger, d.segmentDir, d.workerMarks)
	if err := d.store.ResetWorkerStatus(); err != nil {
		d.logger.Warnf("dispatcher: failed to clear stale worker status: %v", err)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error { return d.pollLoop(ctx) })
	group.Go(func() error { return d.resweepLoop(ctx) })
	return group.Wait()
}

func (d *Dispatcher) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		job, ok := d.store.LoadJob()
		if !ok || !job.Active {
			continue
		}

		if !isKnownPlatform(job.Platform) {
			d.logger.Warnf("dispatcher: dropping job for unrecognized platform %q", job.Platform)
			if err := d.store.DeleteJob(); err != nil {
				d.logger.Warnf("dispatcher: failed to delete unrecognized job: %v", err)
			}
			continue
		}

		d.logger.Infof("dispatcher: picked up job for %s meeting %q", job.Platform, job.MeetingID)
		if err := d.worker.Run(ctx, job); err != nil {
			d.logger.Errorf("dispatcher: worker run failed: %v", err)
		}
	}
}

// resweepLoop guards against a Worker that crashed hard enough to skip its
// own teardown, leaving ffmpeg or a browser process running with nothing
// left to stop it.
func (d *Dispatcher) resweepLoop(ctx context.Context) error {
	ticker := time.NewTicker(resweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, ok := d.store.LoadJob(); !ok {
				internal_platform.SweepZombies(d.logger, d.segmentDir, d.workerMarks)
			}
		}
	}
}

func isKnownPlatform(p internal_ipc.Platform) bool {
	switch p {
	case internal_ipc.PlatformZoom, internal_ipc.PlatformTeams, internal_ipc.PlatformMeet:
		return true
	default:
		return false
	}
}
