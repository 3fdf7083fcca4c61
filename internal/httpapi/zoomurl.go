// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_httpapi is the bot-control surface: a thin
// gin layer over internal/ipc and internal/transcription.
package internal_httpapi

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	zoomJoinPathPattern     = regexp.MustCompile(`/j/(\d+)`)
	zoomConfNoPattern       = regexp.MustCompile(`confno=(\d+)`)
	zoomFreeTextIDPattern   = regexp.MustCompile(`(?i)meeting\s*id\s*[:.]?\s*([\d\s]{9,})`)
	zoomFreeTextPassPattern = regexp.MustCompile(`(?i)(?:parola|passcode|password)\s*[:.]?\s*(\S+)`)
)

// ParseZoomMeeting extracts the numeric meeting ID and passcode from a Zoom
// join URL (the `/j/<id>?pwd=...` shape, or `confno=<id>` in its query or
// path) or from free
// text such as "Meeting ID: 123 456 7890 Parola: abcd". Returns
// ok=false when neither shape yields a usable ID.
func ParseZoomMeeting(input string) (meetingID, passcode string, ok bool) {
	input = strings.TrimSpace(input)

	if parsed, err := url.Parse(input); err == nil && parsed.Scheme != "" {
		if m := zoomJoinPathPattern.FindStringSubmatch(parsed.Path); m != nil {
			meetingID = m[1]
		} else if id := parsed.Query().Get("confno"); id != "" {
			meetingID = id
		} else if m := zoomConfNoPattern.FindStringSubmatch(input); m != nil {
			meetingID = m[1]
		}
		if meetingID != "" {
			return meetingID, parsed.Query().Get("pwd"), true
		}
	}

	if m := zoomFreeTextIDPattern.FindStringSubmatch(input); m != nil {
		meetingID = strings.ReplaceAll(strings.TrimSpace(m[1]), " ", "")
		if pm := zoomFreeTextPassPattern.FindStringSubmatch(input); pm != nil {
			passcode = pm[1]
		}
		return meetingID, passcode, true
	}

	return "", "", false
}

// BuildZoomJoinURL reconstructs a canonical join URL from an extracted
// meeting ID and passcode, the form the meeting Client's Join expects.
func BuildZoomJoinURL(meetingID, passcode string) string {
	if passcode == "" {
		return fmt.Sprintf("https://zoom.us/j/%s", meetingID)
	}
	return fmt.Sprintf("https://zoom.us/j/%s?pwd=%s", meetingID, passcode)
}
