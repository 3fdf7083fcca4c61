// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

import (
	"os"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeTranscript lowercases and collapses whitespace runs, the form
// used for dedup comparison.
func normalizeTranscript(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(strings.ToLower(s), " "))
}

// tail returns the last n runes of s (runes, not bytes, so we never split a
// multi-byte UTF-8 sequence).
func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// ShouldSkipAppend implements the transcript anti-duplication rule: given
// the existing transcript and a candidate append, decide whether the
// append is a near-duplicate of the trailing transcriptTailLength
// characters.
func ShouldSkipAppend(existing, incoming string) bool {
	normTail := normalizeTranscript(tail(existing, transcriptTailLength))
	normIncoming := normalizeTranscript(incoming)

	if normIncoming == "" {
		return true
	}
	if len(normIncoming) > 30 && strings.Contains(normTail, normIncoming) {
		return true
	}
	if len(normIncoming) > 100 {
		firstHalf := normIncoming[:len(normIncoming)/2]
		if strings.Contains(normTail, firstHalf) {
			return true
		}
	}
	return false
}

// AppendTranscript appends text to latest_transcript.txt with a blank-line
// separator, after applying the dedup check. Returns true if the text was
// appended, false if it was skipped as a duplicate.
func (s *Store) AppendTranscript(text string) (bool, error) {
	existing, _ := s.ReadTranscript()
	if ShouldSkipAppend(existing, text) {
		return false, nil
	}
	separator := ""
	if strings.TrimSpace(existing) != "" {
		separator = "\n\n"
	}
	f, err := os.OpenFile(s.path(transcriptFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	if _, err := f.WriteString(separator + text); err != nil {
		return false, err
	}
	return true, nil
}

// ReadTranscript returns the full transcript, or "" if absent.
func (s *Store) ReadTranscript() (string, bool) {
	data, err := os.ReadFile(s.path(transcriptFile))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// TruncateTranscript clears the transcript at job start.
func (s *Store) TruncateTranscript() error {
	return deleteFile(s.path(transcriptFile))
}

// TranscriptCharCount reports len(transcript), used by /bot-status to
// decide whether a transcript worth showing exists yet.
func (s *Store) TranscriptCharCount() int {
	text, _ := s.ReadTranscript()
	return len(text)
}
