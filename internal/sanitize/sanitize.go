// Package sanitize post-processes rendered answer fragments.
package sanitize

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	hrefRe       = regexp.MustCompile(`href="([^"]*)"`)
	headingOpen  = regexp.MustCompile(`(?i)<h[1-6](\s[^>]*)?>`)
	headingClose = regexp.MustCompile(`(?i)</h[1-6]\s*>`)
	emptyPara    = regexp.MustCompile(`(?i)<p(\s[^>]*)?>(\s|&nbsp;|\x{00a0}|<br\s*/?>)*</p>`)
	paraBoundary = regexp.MustCompile(`(?i)</p>(\s|<br\s*/?>)*<p(\s[^>]*)?>`)
	boundaryTags = regexp.MustCompile(`^\s*(?:<[^>]*>\s*)*([^<>]*?)\s*(?:<[^>]*>\s*)*$`)
)

// Pipeline applies FixHref, FixHeaders and FixEmptyParagraphs in that order.
func Pipeline(baseURL, fragment string) string {
	return FixEmptyParagraphs(FixHeaders(FixHref(baseURL, fragment)))
}

// FixHref resolves every href="..." value against baseURL.
// Absolute and unparsable hrefs are left as they are.
func FixHref(baseURL, fragment string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return fragment
	}

	return hrefRe.ReplaceAllStringFunc(fragment, func(m string) string {
		raw := hrefRe.FindStringSubmatch(m)[1]
		ref, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || ref.IsAbs() {
			return m
		}
		return `href="` + base.ResolveReference(ref).String() + `"`
	})
}

// FixHeaders turns every heading into a <strong> wrapper followed by a line break.
func FixHeaders(fragment string) string {
	fragment = headingOpen.ReplaceAllString(fragment, "<strong>")
	return headingClose.ReplaceAllString(fragment, "</strong><br>")
}

// FixEmptyParagraphs removes paragraphs holding only whitespace or line
// breaks and collapses adjacent paragraph boundaries into a single newline.
// It is applied until nothing changes, so applying it twice equals applying it once.
func FixEmptyParagraphs(fragment string) string {
	for {
		next := emptyPara.ReplaceAllString(fragment, "")
		next = paraBoundary.ReplaceAllStringFunc(next, func(m string) string {
			open := m[strings.LastIndex(strings.ToLower(m), "<p"):]
			return "</p>\n" + open
		})
		if next == fragment {
			return next
		}
		fragment = next
	}
}

// CleanupBoundaryTags unwraps a string that is only inner text surrounded by
// tags, e.g. "<p><strong>Text?</strong></p>" becomes "Text?". Anything with
// markup between text is returned unchanged.
func CleanupBoundaryTags(fragment string) string {
	m := boundaryTags.FindStringSubmatch(fragment)
	if m == nil {
		return fragment
	}
	return m[1]
}
