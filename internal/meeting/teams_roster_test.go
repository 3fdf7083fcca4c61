// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeRoster(t *testing.T, update rosterUpdate) string {
	t.Helper()
	raw, err := json.Marshal(update)
	require.NoError(t, err)

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err = gw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeTeamsRosterMessageRoundTripsGzipped(t *testing.T) {
	update := rosterUpdate{Participants: []rosterParticipant{
		{DisplayName: "Ada Lovelace", Endpoints: []rosterEndpoint{
			{Call: &rosterCallState{MediaStreams: []rosterMediaStream{{Type: "audio", IsActiveSpeaker: true}}}},
		}},
	}}
	body := encodeRoster(t, update)

	decoded, err := DecodeTeamsRosterMessage(body)
	require.NoError(t, err)
	require.Len(t, decoded.Participants, 1)
	require.Equal(t, "Ada Lovelace", decoded.Participants[0].DisplayName)
}

func TestDecodeTeamsRosterMessageAcceptsUncompressedFallback(t *testing.T) {
	raw, err := json.Marshal(rosterUpdate{Participants: []rosterParticipant{{DisplayName: "Grace Hopper"}}})
	require.NoError(t, err)
	body := base64.StdEncoding.EncodeToString(raw)

	decoded, err := DecodeTeamsRosterMessage(body)
	require.NoError(t, err)
	require.Equal(t, "Grace Hopper", decoded.Participants[0].DisplayName)
}

func TestDecodeTeamsRosterMessageRejectsNonBase64(t *testing.T) {
	_, err := DecodeTeamsRosterMessage("not base64 at all!!")
	require.Error(t, err)
}

func TestActiveSpeakersFromRosterChecksCallAndLobbyEndpoints(t *testing.T) {
	update := &rosterUpdate{Participants: []rosterParticipant{
		{DisplayName: "Speaking Via Call", Endpoints: []rosterEndpoint{
			{Call: &rosterCallState{MediaStreams: []rosterMediaStream{{Type: "audio", IsSpeaking: true}}}},
		}},
		{DisplayName: "Speaking Via Lobby", Endpoints: []rosterEndpoint{
			{Lobby: &rosterCallState{MediaStreams: []rosterMediaStream{{Type: "audio", Speaking: true}}}},
		}},
		{DisplayName: "Silent", Endpoints: []rosterEndpoint{
			{Call: &rosterCallState{MediaStreams: []rosterMediaStream{{Type: "audio"}}}},
		}},
		{DisplayName: "VideoOnlyActive", Endpoints: []rosterEndpoint{
			{Call: &rosterCallState{MediaStreams: []rosterMediaStream{{Type: "video", IsActiveSpeaker: true}}}},
		}},
	}}

	speakers := ActiveSpeakersFromRoster(update)
	require.Equal(t, []string{"Speaking Via Call", "Speaking Via Lobby"}, speakers)
}
