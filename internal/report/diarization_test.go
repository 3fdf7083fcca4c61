// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractSpeakerNamesFindsDistinctOrderedNames(t *testing.T) {
	transcript := "Ada: let's start.\n\nGrace: sounds good.\n\nAda: one more thing.\n"
	names := ExtractSpeakerNames(transcript)
	require.Equal(t, []string{"Ada", "Grace"}, names)
}

func TestExtractSpeakerNamesIgnoresLinesWithoutColon(t *testing.T) {
	require.Empty(t, ExtractSpeakerNames("just a paragraph with no speaker prefix"))
}

func TestCrossValidateSpeakersSplitsKnownAndUnknown(t *testing.T) {
	known, unknown := CrossValidateSpeakers(
		[]string{"Ada", "Grace", "Unnamed Speaker"},
		[]string{"ada", "Grace Hopper"},
	)
	require.Equal(t, []string{"Ada"}, known)
	require.Equal(t, []string{"Grace", "Unnamed Speaker"}, unknown)
}
