// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReportAndTranscriptKeysAreDerivedFromMeetingID(t *testing.T) {
	require.Equal(t, "abc123.html", ReportKey("abc123"))
	require.Equal(t, "abc123.txt", TranscriptKey("abc123"))
}
