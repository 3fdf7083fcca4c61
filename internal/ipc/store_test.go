// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	_, ok := s.LoadJob()
	require.False(t, ok, "missing job file should report no value")

	job := &Job{Active: true, Platform: PlatformMeet, MeetingURL: "https://meet.google.com/abc-defg-hij"}
	require.NoError(t, s.SaveJob(job))

	loaded, ok := s.LoadJob()
	require.True(t, ok)
	require.Equal(t, *job, loaded)

	require.NoError(t, s.DeleteJob())
	_, ok = s.LoadJob()
	require.False(t, ok)
}

func TestLoadJobToleratesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, s.SaveJob(&Job{Active: true}))

	// Corrupt it directly, bypassing the atomic writer.
	corruptFile(t, s.path(jobFile))

	_, ok := s.LoadJob()
	require.False(t, ok, "corrupt file must be treated as absent, not panic or error")
}

func TestCommandRefusesOverwriteUnlessForced(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.SaveCommand(&Command{Command: CommandPause}, false))
	err := s.SaveCommand(&Command{Command: CommandStop}, false)
	require.Error(t, err, "unprocessed command must not be overwritten")

	require.NoError(t, s.SaveCommand(&Command{Command: CommandStop}, true))
	cmd, ok := s.LoadCommand()
	require.True(t, ok)
	require.Equal(t, CommandStop, cmd.Command)
}

func TestMarkCommandProcessedIsNoopOnMismatch(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.SaveCommand(&Command{Command: CommandPause}, false))

	require.NoError(t, s.MarkCommandProcessed(CommandStop))
	cmd, _ := s.LoadCommand()
	require.False(t, cmd.Processed, "processing a different command must not mark this one processed")

	require.NoError(t, s.MarkCommandProcessed(CommandPause))
	cmd, _ = s.LoadCommand()
	require.True(t, cmd.Processed)
}

func TestTimelineMonotonicityAndDedup(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.AppendTimelineEntry(1.0, []string{"Alice"}))
	require.NoError(t, s.AppendTimelineEntry(2.0, []string{"Alice"})) // same set, skipped
	require.NoError(t, s.AppendTimelineEntry(3.0, []string{"Alice", "Bob"}))
	require.NoError(t, s.AppendTimelineEntry(4.0, []string{"Bob"}))

	entries, err := s.ReadTimeline()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i := 1; i < len(entries); i++ {
		require.GreaterOrEqual(t, entries[i].Ts, entries[i-1].Ts)
		require.False(t, sameSpeakers(entries[i].Speakers, entries[i-1].Speakers))
	}
}

func TestReadTimelineSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, s.AppendTimelineEntry(1.0, []string{"Alice"}))
	require.NoError(t, appendLine(s.path(speakerTimelineFile), []byte("{not json")))
	require.NoError(t, s.AppendTimelineEntry(2.0, []string{"Bob"}))

	entries, err := s.ReadTimeline()
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func corruptFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0o644))
}
