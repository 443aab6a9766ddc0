// Package selector implements a small combinator language for picking nodes
// out of a parsed HTML document.
//
// A Predicate satisfies goquery's Matcher interface, so it can be handed to
// Selection.FindMatcher and friends as well as composed with And/Or/Not.
package selector

import (
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Predicate is a pure test over an element node
type Predicate func(n *html.Node) bool

var _ goquery.Matcher = Predicate(nil)

// Match reports whether n is an element satisfying p.
func (p Predicate) Match(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && p(n)
}

// MatchAll returns n and its descendants that satisfy p, in document order.
func (p Predicate) MatchAll(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if p.Match(node) {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Filter keeps the nodes satisfying p.
func (p Predicate) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if p.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// Query returns every node under root (root excluded) matching p, in document order.
func Query(root *html.Node, p Predicate) []*html.Node {
	if root == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(root).FindMatcher(p).Nodes
}

// Any matches every element.
func Any() Predicate {
	return func(*html.Node) bool { return true }
}

// Tag matches elements by tag name; several names act as a disjunction.
func Tag(names ...string) Predicate {
	return func(n *html.Node) bool {
		return slices.Contains(names, n.Data)
	}
}

// Class matches elements carrying the CSS class.
func Class(name string) Predicate {
	return func(n *html.Node) bool {
		return slices.Contains(strings.Fields(AttrOf(n, "class")), name)
	}
}

// ID matches the element with the given id attribute.
func ID(id string) Predicate {
	return func(n *html.Node) bool {
		return AttrOf(n, "id") == id
	}
}

// Attr matches elements whose attribute value matches re.
func Attr(key string, re *regexp.Regexp) Predicate {
	return func(n *html.Node) bool {
		for _, a := range n.Attr {
			if a.Key == key {
				return re.MatchString(a.Val)
			}
		}
		return false
	}
}

// Text matches elements whose rendered text matches re.
func Text(re *regexp.Regexp) Predicate {
	return func(n *html.Node) bool {
		return re.MatchString(TextOf(n))
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(n *html.Node) bool { return !p(n) }
}

// And matches when every predicate matches.
func And(ps ...Predicate) Predicate {
	return func(n *html.Node) bool {
		for _, p := range ps {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(ps ...Predicate) Predicate {
	return func(n *html.Node) bool {
		for _, p := range ps {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// DescendantOf matches elements with some ancestor element satisfying p.
func DescendantOf(p Predicate) Predicate {
	return func(n *html.Node) bool {
		for a := n.Parent; a != nil; a = a.Parent {
			if p.Match(a) {
				return true
			}
		}
		return false
	}
}

// ChildOf matches elements whose parent satisfies p.
func ChildOf(p Predicate) Predicate {
	return func(n *html.Node) bool {
		return p.Match(n.Parent)
	}
}

// HasChild matches elements with at least one direct element child satisfying p.
func HasChild(p Predicate) Predicate {
	return func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if p.Match(c) {
				return true
			}
		}
		return false
	}
}
