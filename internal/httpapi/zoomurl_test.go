// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_httpapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseZoomMeetingFromJoinPathURL(t *testing.T) {
	id, pass, ok := ParseZoomMeeting("https://zoom.us/j/1234567890?pwd=abcXYZ")
	require.True(t, ok)
	require.Equal(t, "1234567890", id)
	require.Equal(t, "abcXYZ", pass)
}

func TestParseZoomMeetingFromConfNoURL(t *testing.T) {
	id, pass, ok := ParseZoomMeeting("https://zoom.us/w/confno=9876543210")
	require.True(t, ok)
	require.Equal(t, "9876543210", id)
	require.Empty(t, pass)
}

func TestParseZoomMeetingFromFreeText(t *testing.T) {
	id, pass, ok := ParseZoomMeeting("Join us. Meeting ID: 123 456 7890  Parola: swordfish")
	require.True(t, ok)
	require.Equal(t, "1234567890", id)
	require.Equal(t, "swordfish", pass)
}

func TestParseZoomMeetingRejectsUnparseableInput(t *testing.T) {
	_, _, ok := ParseZoomMeeting("let's meet sometime next week")
	require.False(t, ok)
}

func TestBuildZoomJoinURL(t *testing.T) {
	require.Equal(t, "https://zoom.us/j/111?pwd=abc", BuildZoomJoinURL("111", "abc"))
	require.Equal(t, "https://zoom.us/j/111", BuildZoomJoinURL("111", ""))
}
