package selector

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// AttrOf returns the attribute value or "".
func AttrOf(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// TextOf returns the concatenated text content of n.
func TextOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	return goquery.NewDocumentFromNode(n).Text()
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	s, err := goquery.NewDocumentFromNode(n).Html()
	if err != nil {
		return ""
	}
	return s
}

// OuterHTML renders n including its own tags.
func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

// Parse parses an HTML document into a node tree.
func Parse(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}
