// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_storage

import "fmt"

// ReportKey builds the blob key for a meeting's HTML report.
func ReportKey(meetingID string) string {
	return fmt.Sprintf("%s.html", meetingID)
}

// TranscriptKey builds the blob key for a meeting's plain-text transcript.
func TranscriptKey(meetingID string) string {
	return fmt.Sprintf("%s.txt", meetingID)
}
