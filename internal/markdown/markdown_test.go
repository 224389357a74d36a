package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_BasicMarkdown(t *testing.T) {
	html, err := Convert([]byte("# Morning\n\nCoffee is **ready**.\n\n- one\n- two\n"))
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Morning</h1>")
	assert.Contains(t, html, "<strong>ready</strong>")
	assert.Contains(t, html, "<li>one</li>")
}

func TestConvert_SanitizesRawHTML(t *testing.T) {
	html, err := Convert([]byte("hello <script>alert(1)</script> world"))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "hello")
	assert.Contains(t, html, "world")
}

func TestConvert_Empty(t *testing.T) {
	html, err := Convert(nil)
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestDocument(t *testing.T) {
	doc := Document("<h1>Hi</h1>", "body { background: #1a1a1a; }")

	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "<style>\nbody { background: #1a1a1a; }\n</style>")
	assert.Contains(t, doc, `<div class="container">`)
	assert.Contains(t, doc, "<h1>Hi</h1>")
}
