// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// rosterUpdate mirrors the subset of Teams' internal WebSocket
// rosterUpdate payload the bot cares about: each
// participant's endpoints report per-media-stream speaking state.
type rosterUpdate struct {
	Participants []rosterParticipant `json:"participants"`
}

type rosterParticipant struct {
	DisplayName string           `json:"displayName"`
	Endpoints   []rosterEndpoint `json:"endpoints"`
}

type rosterEndpoint struct {
	Call  *rosterCallState `json:"call,omitempty"`
	Lobby *rosterCallState `json:"lobby,omitempty"`
}

type rosterCallState struct {
	MediaStreams []rosterMediaStream `json:"mediaStreams"`
}

type rosterMediaStream struct {
	Type            string `json:"type"`
	IsActiveSpeaker bool   `json:"isActiveSpeaker"`
	IsSpeaking      bool   `json:"isSpeaking"`
	Speaking        bool   `json:"speaking"`
}

// DecodeTeamsRosterMessage decodes one buffered Teams WebSocket message:
// base64-decode, gunzip, then parse the rosterUpdate JSON body. Teams
// delivers these compressed; an uncompressed (plain JSON) body is accepted
// as a fallback so the bootstrap bridge doesn't need to know in advance
// whether a given message was compressed.
func DecodeTeamsRosterMessage(body string) (*rosterUpdate, error) {
	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("meeting: teams roster message is not base64: %w", err)
	}

	jsonBytes := raw
	if gr, err := gzip.NewReader(bytes.NewReader(raw)); err == nil {
		decompressed, err := io.ReadAll(gr)
		_ = gr.Close()
		if err == nil {
			jsonBytes = decompressed
		}
	}

	var update rosterUpdate
	if err := json.Unmarshal(jsonBytes, &update); err != nil {
		return nil, fmt.Errorf("meeting: teams roster message is not valid JSON: %w", err)
	}
	return &update, nil
}

// ActiveSpeakersFromRoster extracts the ordered set of display names whose
// audio media stream reports isActiveSpeaker/isSpeaking/speaking across
// either the call or lobby endpoint.
func ActiveSpeakersFromRoster(update *rosterUpdate) []string {
	var speakers []string
	for _, p := range update.Participants {
		if p.DisplayName == "" {
			continue
		}
		for _, ep := range p.Endpoints {
			if endpointIsSpeaking(ep.Call) || endpointIsSpeaking(ep.Lobby) {
				speakers = append(speakers, p.DisplayName)
				break
			}
		}
	}
	return speakers
}

func endpointIsSpeaking(state *rosterCallState) bool {
	if state == nil {
		return false
	}
	for _, ms := range state.MediaStreams {
		if ms.Type != "audio" {
			continue
		}
		if ms.IsActiveSpeaker || ms.IsSpeaking || ms.Speaking {
			return true
		}
	}
	return false
}
