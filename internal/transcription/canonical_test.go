// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_transcription

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizeNamesFixesCasing(t *testing.T) {
	out := CanonicalizeNames("ada LOVELACE: let's begin", []string{"Ada Lovelace"})
	require.Equal(t, "Ada Lovelace: let's begin", out)
}

func TestCanonicalizeNamesOnlyMatchesWholeWords(t *testing.T) {
	out := CanonicalizeNames("Adapter pattern is great, asks ada", []string{"Ada"})
	require.Equal(t, "Adapter pattern is great, asks Ada", out)
}

func TestCanonicalizeNamesIsNoOpWithoutParticipants(t *testing.T) {
	out := CanonicalizeNames("hello world", nil)
	require.Equal(t, "hello world", out)
}
