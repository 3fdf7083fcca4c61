// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_transcription

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDoublingBackoffStartsAtInitialAndDoubles(t *testing.T) {
	b := &doublingBackoff{initial: 30 * time.Second}
	require.Equal(t, 30*time.Second, b.NextBackOff())
	require.Equal(t, 60*time.Second, b.NextBackOff())
	require.Equal(t, 120*time.Second, b.NextBackOff())
}

func TestDoublingBackoffResetReturnsToInitial(t *testing.T) {
	b := &doublingBackoff{initial: 30 * time.Second}
	b.NextBackOff()
	b.NextBackOff()
	b.Reset()
	require.Equal(t, 30*time.Second, b.NextBackOff())
}

func TestIsRateLimitedDetects429(t *testing.T) {
	require.True(t, isRateLimited(errors.New("googleapi: Error 429: rate limit exceeded")))
	require.False(t, isRateLimited(errors.New("connection reset")))
}

func TestIsQuotaErrorIsCaseInsensitive(t *testing.T) {
	require.True(t, isQuotaError(errors.New("Daily QUOTA exceeded for this project")))
	require.False(t, isQuotaError(errors.New("connection reset")))
}
