// Package markdown converts markdown source into the HTML document handed to
// the rendering engine.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips potentially dangerous elements (scripts, event
// handlers) from the converted markdown while keeping the tags the theme
// stylesheets target.
var htmlSanitizer = bluemonday.UGCPolicy()

// Convert renders markdown source to sanitized HTML.
func Convert(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}

// Document wraps converted content and a theme stylesheet into the full HTML
// document the renderer screenshots. The stylesheet is expected to have had
// its asset references rewritten already.
func Document(contentHTML, css string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
%s
</style>
</head>
<body>
<div class="container">
%s
</div>
</body>
</html>
`, css, contentHTML)
}
