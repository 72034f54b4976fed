package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/vidyasagar/tango/internal/search"
)

// Cached glamour renderer to avoid recreation on every render call.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	rendererMu          sync.Mutex
)

const maxSnippetRunes = 200

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
	"~", `\~`,
)

// escapeMarkdown makes s render as literal text.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// truncateRunes shortens s to at most n runes, ending in "..." when cut.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// ResultsMarkdown formats search results as markdown.
func ResultsMarkdown(results []search.Result, query string) string {
	var md strings.Builder

	md.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(query)))
	md.WriteString(fmt.Sprintf("*%s*\n\n", search.DetectTermType(query)))

	if len(results) == 0 {
		md.WriteString("No results found.\n")
		return md.String()
	}

	for i, r := range results {
		title := escapeMarkdown(r.Title)
		if r.URL != "" {
			md.WriteString(fmt.Sprintf("%d. **%s** <%s>\n", i+1, title, r.URL))
		} else {
			md.WriteString(fmt.Sprintf("%d. **%s**\n", i+1, title))
		}
		if r.Snippet != "" {
			md.WriteString(fmt.Sprintf("   %s\n", escapeMarkdown(truncateRunes(r.Snippet, maxSnippetRunes))))
		}
	}

	md.WriteString(fmt.Sprintf("\n%d results\n", len(results)))
	return md.String()
}

// Results renders search results for the terminal. If glamour fails the
// raw markdown is returned.
func Results(results []search.Result, query string, width int) string {
	if width <= 0 {
		width = 80
	}
	md := ResultsMarkdown(results, query)

	out, err := renderWithGlamour(md, width)
	if err != nil {
		return md
	}
	return out
}

func renderWithGlamour(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cachedRenderer == nil || cachedRendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
	}

	return cachedRenderer.Render(markdown)
}
