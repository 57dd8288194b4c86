package render

import (
	"strings"
	"testing"

	"github.com/JonMunkholm/PromptCompare/internal/core"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis",
			input:    "Write a **poem** about *rain*",
			contains: []string{"<strong>poem</strong>", "<em>rain</em>"},
		},
		{
			name:     "heading and list",
			input:    "# Task\n- one\n- two",
			contains: []string{"<h1", "Task</h1>", "<li>one</li>", "<li>two</li>"},
		},
		{
			name:     "fenced code",
			input:    "```\nfmt.Println(1)\n```",
			contains: []string{"<pre><code>", "fmt.Println(1)"},
		},
		{
			name:     "links open in new tab",
			input:    "[docs](https://example.com)",
			contains: []string{`href="https://example.com"`, `target="_blank"`},
		},
		{
			name:     "unsafe link protocol not linked",
			input:    "[click](javascript:alert(1))",
			excludes: []string{`href="javascript:`},
		},
		{
			name:     "raw html dropped",
			input:    "before <script>alert(1)</script> after",
			excludes: []string{"<script>"},
		},
		{
			name:     "crlf input",
			input:    "line one\r\n\r\nline two",
			contains: []string{"<p>line one</p>", "<p>line two</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Markdown(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, got, bad)
			}
		})
	}
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Empty(t, Markdown(""))
	assert.Empty(t, Markdown("  \n\t"))
}

func TestRaw(t *testing.T) {
	got := Raw("**bold** <b>tag</b>\nnext")

	assert.Equal(t, `<pre class="raw">**bold** &lt;b&gt;tag&lt;/b&gt;`+"\nnext</pre>", got)
}

func TestRaw_EscapesLikeComponents(t *testing.T) {
	text := `say "hi" & 'bye'`

	assert.Equal(t, `<pre class="raw">`+templ.EscapeString(text)+`</pre>`, Raw(text))
	assert.Equal(t, `<pre class="raw">say &#34;hi&#34; &amp; &#39;bye&#39;</pre>`, Raw(text))
}

func TestText(t *testing.T) {
	assert.Contains(t, Text(core.ViewRendered, "**x**"), "<strong>x</strong>")
	assert.Contains(t, Text(core.ViewRaw, "**x**"), "**x**")
	assert.Contains(t, Text("", "**x**"), `<pre class="raw">`)
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short text still gets ellipsis", input: "hello", want: "hello..."},
		{name: "empty", input: "", want: "..."},
		{name: "exactly fifty", input: strings.Repeat("a", 50), want: strings.Repeat("a", 50) + "..."},
		{name: "truncated", input: strings.Repeat("b", 80), want: strings.Repeat("b", 50) + "..."},
		{name: "multibyte kept whole", input: strings.Repeat("é", 60), want: strings.Repeat("é", 50) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.input))
		})
	}
}
