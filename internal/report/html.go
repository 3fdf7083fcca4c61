// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_report

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
)

var htmlFencePattern = regexp.MustCompile("(?s)```html\\s*(.*?)\\s*```")

// StripHTMLFences removes a surrounding ```html ... ``` code fence if the
// model wrapped its output in one; returns body with only surrounding
// whitespace trimmed if no fence is present.
func StripHTMLFences(body string) string {
	if m := htmlFencePattern.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(body)
}

const htmlShellTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, Helvetica, Arial, sans-serif; max-width: 860px; margin: 2rem auto; color: #1a1a1a; }
h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
h2 { margin-top: 2rem; color: #333; }
table { border-collapse: collapse; width: 100%%; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.5rem 0.75rem; text-align: left; }
th { background: #f2f2f2; }
footer { margin-top: 3rem; font-size: 0.8rem; color: #777; border-top: 1px solid #ddd; padding-top: 1rem; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>%s</h1>
%s
<footer>Generated %s</footer>
</body>
</html>
`

// WrapHTMLShell wraps a (fence-stripped) HTML fragment in the fixed,
// printable shell step 5: header, footer, CSS.
func WrapHTMLShell(title, body string, generatedAt time.Time) string {
	escapedTitle := html.EscapeString(title)
	return fmt.Sprintf(htmlShellTemplate, escapedTitle, escapedTitle, body, generatedAt.Format("2006-01-02 15:04:05 MST"))
}
