// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStripHTMLFencesRemovesFence(t *testing.T) {
	fenced := "```html\n<h2>Summary</h2>\n```"
	require.Equal(t, "<h2>Summary</h2>", StripHTMLFences(fenced))
}

func TestStripHTMLFencesLeavesUnfencedBodyUnchanged(t *testing.T) {
	require.Equal(t, "<h2>Summary</h2>", StripHTMLFences("<h2>Summary</h2>"))
}

func TestWrapHTMLShellEscapesTitleAndIncludesBody(t *testing.T) {
	out := WrapHTMLShell("Q&A <session>", "<h2>Summary</h2>", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Contains(t, out, "Q&amp;A &lt;session&gt;")
	require.Contains(t, out, "<h2>Summary</h2>")
	require.Contains(t, out, "<!DOCTYPE html>")
}
