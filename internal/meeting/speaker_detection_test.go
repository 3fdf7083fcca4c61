// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_meeting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedEvaluator is a minimal pageEvaluator whose Eval returns whatever
// was queued for the call index it's currently on, so tests can assert on
// the exact JS each tier issues without a real browser.
type scriptedEvaluator struct {
	calls   []string
	results [][]string
}

func (s *scriptedEvaluator) Eval(ctx context.Context, js string, out interface{}) error {
	idx := len(s.calls)
	s.calls = append(s.calls, js)
	if ptr, ok := out.(*[]string); ok && idx < len(s.results) {
		*ptr = s.results[idx]
	}
	return nil
}

func TestTierBActiveSpeakersReturnsScanResult(t *testing.T) {
	ev := &scriptedEvaluator{results: [][]string{{"Ada Lovelace"}}}
	names, err := tierBActiveSpeakers(context.Background(), ev, `.tile`, "")
	require.NoError(t, err)
	require.Equal(t, []string{"Ada Lovelace"}, names)
	require.Contains(t, ev.calls[0], "false")
}

func TestTierBActiveSpeakersEmbedsExtraCondition(t *testing.T) {
	ev := &scriptedEvaluator{results: [][]string{{}}}
	_, err := tierBActiveSpeakers(context.Background(), ev, `.tile`, `el.classList.contains("speaking")`)
	require.NoError(t, err)
	require.Contains(t, ev.calls[0], `el.classList.contains("speaking")`)
}

func TestUnmutedFallbackSpeakersReturnsScanResult(t *testing.T) {
	ev := &scriptedEvaluator{results: [][]string{{"Grace Hopper"}}}
	names, err := unmutedFallbackSpeakers(context.Background(), ev, `.tile`)
	require.NoError(t, err)
	require.Equal(t, []string{"Grace Hopper"}, names)
}
