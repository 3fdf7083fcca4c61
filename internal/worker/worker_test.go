// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_worker

import (
	"context"
	"testing"

	internal_browser "github.com/rapidaai/meetingbot/internal/browser"
	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	"github.com/rapidaai/meetingbot/pkg/commons"
	"github.com/stretchr/testify/require"
)

// testLogger discards everything; tests assert on return values and state.
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

type noopLauncher struct{}

func (noopLauncher) Launch(ctx context.Context, args []string) (internal_browser.Page, error) {
	return nil, nil
}

func TestNewMeetingClientDispatchesKnownPlatforms(t *testing.T) {
	for _, p := range []internal_ipc.Platform{internal_ipc.PlatformZoom, internal_ipc.PlatformTeams, internal_ipc.PlatformMeet} {
		client, err := NewMeetingClient(p, newTestLogger(), noopLauncher{})
		require.NoError(t, err)
		require.NotNil(t, client)
	}
}

func TestNewMeetingClientRejectsUnknownPlatform(t *testing.T) {
	_, err := NewMeetingClient(internal_ipc.Platform("webex"), newTestLogger(), noopLauncher{})
	require.Error(t, err)
}

func TestWorkerInitResetsArtifactsAndMarksRunning(t *testing.T) {
	store := internal_ipc.NewStore(t.TempDir())
	_, err := store.AppendTranscript("stale leftover text from a previous job")
	require.NoError(t, err)

	w := New(newTestLogger(), store, Config{})
	require.NoError(t, w.init())

	_, hasTranscript := store.ReadTranscript()
	require.False(t, hasTranscript)

	status, ok := store.LoadWorkerStatus()
	require.True(t, ok)
	require.True(t, status.Running)
}

func TestWorkerSetErrorMarksNotRunning(t *testing.T) {
	store := internal_ipc.NewStore(t.TempDir())
	w := New(newTestLogger(), store, Config{})

	w.setError(internal_ipc.PlatformZoom, "boom")

	status, ok := store.LoadWorkerStatus()
	require.True(t, ok)
	require.False(t, status.Running)
	require.Equal(t, "boom", status.Error)
}
