// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_dispatcher

import (
	"context"
	"sync"
	"testing"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	"github.com/rapidaai/meetingbot/pkg/commons"
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

// fakeWorker records every Job it was asked to run and signals done on the
// first call, so the test can cancel before a second poll tick re-runs it.
type fakeWorker struct {
	mu   sync.Mutex
	runs []internal_ipc.Job
	err  error
	done chan struct{}
}

func (f *fakeWorker) Run(ctx context.Context, job internal_ipc.Job) error {
	f.mu.Lock()
	f.runs = append(f.runs, job)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return f.err
}

func (f *fakeWorker) runCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.runs)
}

func TestDispatcherPicksUpActiveJobAndRunsWorker(t *testing.T) {
	store := internal_ipc.NewStore(t.TempDir())
	require.NoError(t, store.SaveJob(&internal_ipc.Job{
		Active:     true,
		Platform:   internal_ipc.PlatformZoom,
		MeetingURL: "https://zoom.us/j/123",
	}))

	worker := &fakeWorker{done: make(chan struct{})}
	d := New(newTestLogger(), store, worker, t.TempDir(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx) }()

	select {
	case <-worker.done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher never ran the worker on the active job")
	}
	cancel()
	<-errCh

	require.Equal(t, 1, worker.runCount())
}

func TestDispatcherDeletesJobForUnknownPlatform(t *testing.T) {
	store := internal_ipc.NewStore(t.TempDir())
	require.NoError(t, store.SaveJob(&internal_ipc.Job{
		Active:   true,
		Platform: internal_ipc.Platform("webex"),
	}))

	worker := &fakeWorker{}
	d := New(newTestLogger(), store, worker, t.TempDir(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	_ = d.Run(ctx)

	_, ok := store.LoadJob()
	require.False(t, ok)
	require.Equal(t, 0, worker.runCount())
}

func TestIsKnownPlatform(t *testing.T) {
	require.True(t, isKnownPlatform(internal_ipc.PlatformZoom))
	require.True(t, isKnownPlatform(internal_ipc.PlatformTeams))
	require.True(t, isKnownPlatform(internal_ipc.PlatformMeet))
	require.False(t, isKnownPlatform(internal_ipc.Platform("webex")))
}
