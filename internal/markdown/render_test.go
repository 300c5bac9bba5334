package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	doc, err := r.Render([]byte("# Hello World\n\nThis is a *test*.\n\n## Usage\n"))
	require.NoError(t, err)

	assert.Contains(t, doc.HTML, "Hello World</h1>")
	assert.Contains(t, doc.HTML, "<em>test</em>")
	assert.Equal(t, "Hello World", doc.Title)
	assert.Equal(t, []Heading{
		{Level: 1, Title: "Hello World", Anchor: "hello-world"},
		{Level: 2, Title: "Usage", Anchor: "usage"},
	}, doc.Headings)
}

func TestRender_NoHeadings(t *testing.T) {
	doc, err := NewRenderer().Render([]byte("just text"))
	require.NoError(t, err)

	assert.Empty(t, doc.Title)
	assert.NotNil(t, doc.Headings)
	assert.Empty(t, doc.Headings)
}

func TestRender_EscapesRawHTML(t *testing.T) {
	doc, err := NewRenderer().Render([]byte("<script>alert(1)</script>\n"))
	require.NoError(t, err)
	assert.NotContains(t, doc.HTML, "<script>")
}

func TestRender_HighlightsCode(t *testing.T) {
	doc, err := NewRenderer().Render([]byte("```go\nfunc main() {}\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, `class="chroma"`)
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		input  string
		output string
	}{
		{"Hello World", "hello-world"},
		{"Test! @# Content", "test-content"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"-Start-and-End-", "start-and-end"},
		{"中文标题", "中文标题"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.output, anchor(tt.input), "anchor(%q)", tt.input)
	}
}
