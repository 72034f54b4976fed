// Package render turns recent terms and search results into screen or
// page output. Every recent term becomes a link to the search page for it.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/vidyasagar/tango/internal/browser"
)

// Linker builds the search page address for a term.
type Linker interface {
	URL(term string) string
}

// Recent formats recent terms for the viewport.
func Recent(terms []string, linker Linker) (string, []browser.Link) {
	var sb strings.Builder
	var links []browser.Link

	sb.WriteString("  🕘 Recent searches\n")
	sb.WriteString("  ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	if len(terms) == 0 {
		sb.WriteString("  No recent searches.\n")
		return sb.String(), links
	}

	for i, term := range terms {
		idx := i + 1
		u := linker.URL(term)
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", idx, term))
		sb.WriteString(fmt.Sprintf("       %s\n", u))

		links = append(links, browser.Link{
			Index: idx,
			Text:  term,
			URL:   u,
		})
	}

	return sb.String(), links
}

var recentHTML = template.Must(template.New("recent").Parse(
	`<ul id="recent-words">{{range .}}<li><a href="{{.URL}}">{{.Text}}</a></li>{{end}}</ul>`,
))

// RecentHTML renders recent terms as an HTML list of search links. Terms
// are escaped, so markup typed into the search box shows up as text.
func RecentHTML(terms []string, linker Linker) (string, error) {
	links := make([]browser.Link, 0, len(terms))
	for i, term := range terms {
		links = append(links, browser.Link{Index: i + 1, Text: term, URL: linker.URL(term)})
	}

	var sb strings.Builder
	if err := recentHTML.Execute(&sb, links); err != nil {
		return "", fmt.Errorf("rendering recent list: %w", err)
	}
	return sb.String(), nil
}
