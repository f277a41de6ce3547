package markdown

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeadingsGetIDs(t *testing.T) {
	got, err := Render("# Getting Started\n\n## State and Hooks")
	require.NoError(t, err)
	assert.Contains(t, got, `<h1 id="getting-started">Getting Started</h1>`)
	assert.Contains(t, got, `<h2 id="state-and-hooks">State and Hooks</h2>`)
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got, err := Render("```bash\nnpm start\n```")
	require.NoError(t, err)
	assert.Contains(t, got, `<pre><code class="language-bash">npm start`)
}

func TestRenderHardWraps(t *testing.T) {
	got, err := Render("one\ntwo")
	require.NoError(t, err)
	assert.Contains(t, got, "one<br>")
}

func TestRenderExternalLinkNewTab(t *testing.T) {
	got, err := Render("[site](https://example.com) and [home](/about/)")
	require.NoError(t, err)
	assert.Contains(t, got, `<a href="https://example.com" target="_blank" rel="noopener noreferrer">site</a>`)
	assert.Contains(t, got, `<a href="/about/">home</a>`)
}

func TestRenderDropsRawHTML(t *testing.T) {
	got, err := Render("<script>alert(1)</script>\n\ntext")
	require.NoError(t, err)
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "<p>text</p>")
}

func TestRenderTable(t *testing.T) {
	got, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<td>1</td>")
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown("**bold**").Render(context.Background(), &buf))
	assert.Equal(t, "<p><strong>bold</strong></p>\n", buf.String())
}
