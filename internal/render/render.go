// Package render turns record text into display HTML.
//
// The rendered view mode treats text as Markdown; the raw view shows it
// verbatim in a preformatted block. Raw HTML embedded in the text is never
// passed through in either mode.
package render

import (
	"strings"
	"unicode/utf8"

	"github.com/JonMunkholm/PromptCompare/internal/core"
	"github.com/a-h/templ"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// PreviewLength is the number of characters shown in list previews.
const PreviewLength = 50

const markdownExtensions = parser.CommonExtensions |
	parser.AutoHeadingIDs |
	parser.NoEmptyLineBeforeBlock

// Markdown renders text as HTML. Embedded HTML is dropped, only safe link
// protocols are kept and links open in a new tab.
func Markdown(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// Parsers and renderers carry state; build fresh ones per document.
	p := parser.NewWithExtensions(markdownExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank | mdhtml.SkipHTML | mdhtml.Safelink,
	})

	return string(markdown.ToHTML([]byte(normalizeNewlines(text)), p, r))
}

// Raw renders text verbatim inside a <pre> block, escaped the same way the
// page components escape text.
func Raw(text string) string {
	return `<pre class="raw">` + templ.EscapeString(text) + `</pre>`
}

// Text renders text in the given view mode. Unknown modes render raw.
func Text(mode core.ViewMode, text string) string {
	if mode == core.ViewRendered {
		return Markdown(text)
	}
	return Raw(text)
}

// Preview returns the first PreviewLength characters of text followed by
// "...". The ellipsis is always appended.
func Preview(text string) string {
	return truncate(text, PreviewLength) + "..."
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
