// Package format renders matched answer content into sanitized HTML fragments.
package format

import (
	"fmt"
	"html"
	"strings"

	"github.com/ppiankov/faqharvest/internal/sanitize"
	"github.com/ppiankov/faqharvest/internal/selector"
	xhtml "golang.org/x/net/html"
)

// Style selects how an adapter's raw answer content is rendered. It is fixed
// per adapter at registration time. The declaration order is the precedence
// order the formatter has always used and must not be rearranged.
type Style int

const (
	// StyleRaw passes Content.HTML through untouched.
	StyleRaw Style = iota
	// StyleTree renders the children of each node as flat markup.
	StyleTree
	// StyleLinkOnly emits a canned paragraph pointing at Content.Link.
	StyleLinkOnly
	// StyleConcat joins the inner markup of each node with <br>.
	StyleConcat
	// StyleRebasedAnchor emits one anchor whose host-relative href is prefixed with Content.Base.
	StyleRebasedAnchor
	// StyleDefault joins the outer markup of each node with <br>; between two
	// paragraphs the sanitizer collapses that to a newline.
	StyleDefault
)

var styleNames = [...]string{"raw", "tree", "link-only", "concat", "rebased-anchor", "default"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("style(%d)", int(s))
	}
	return styleNames[s]
}

// LinkOnlyText is the lead-in of the canned link-only paragraph.
const LinkOnlyText = "The answer is available on the source page"

// Content is the raw answer material an adapter extracted for one entity.
// Which fields are read depends on the Style.
type Content struct {
	Nodes []*xhtml.Node
	HTML  string
	Link  string
	Label string
	Base  string
}

// Render formats content according to style and runs the sanitizer pipeline.
func Render(style Style, sourceURL string, c Content) string {
	var out string

	switch style {
	case StyleRaw:
		out = c.HTML
	case StyleTree:
		parts := make([]string, 0, len(c.Nodes))
		for _, n := range c.Nodes {
			parts = append(parts, strings.TrimSpace(selector.InnerHTML(n)))
		}
		out = strings.Join(parts, "\n")
	case StyleLinkOnly:
		out = linkOnly(c.Link, c.Label)
	case StyleConcat:
		parts := make([]string, 0, len(c.Nodes))
		for _, n := range c.Nodes {
			if inner := strings.TrimSpace(selector.InnerHTML(n)); inner != "" {
				parts = append(parts, inner)
			}
		}
		out = strings.Join(parts, "<br>")
	case StyleRebasedAnchor:
		out = rebasedAnchor(c.Base, c.Link, c.Label)
	default:
		parts := make([]string, 0, len(c.Nodes))
		for _, n := range c.Nodes {
			parts = append(parts, selector.OuterHTML(n))
		}
		out = strings.Join(parts, "<br>")
	}

	return sanitize.Pipeline(sourceURL, out)
}

func linkOnly(link, label string) string {
	if label == "" {
		label = link
	}
	return fmt.Sprintf(`<p>%s: <a href="%s">%s</a></p>`,
		LinkOnlyText, html.EscapeString(link), html.EscapeString(label))
}

func rebasedAnchor(base, link, label string) string {
	href := link
	if strings.HasPrefix(link, "/") {
		href = strings.TrimSuffix(base, "/") + link
	}
	if label == "" {
		label = href
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), html.EscapeString(label))
}
