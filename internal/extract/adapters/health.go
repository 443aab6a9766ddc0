package adapters

import (
	"strings"

	"github.com/ppiankov/faqharvest/internal/extract"
	"github.com/ppiankov/faqharvest/internal/format"
	"github.com/ppiankov/faqharvest/internal/sanitize"
	"github.com/ppiankov/faqharvest/internal/selector"
	"golang.org/x/net/html"
)

// Ministry of Health: <div class="faq"> with h3 questions followed by
// paragraphs and lists.
func newMZCR() *Descriptor {
	return &Descriptor{
		ID:       "mzcr",
		Name:     "Ministry of Health",
		URLs:     []string{"https://www.mzcr.cz/otazky-a-odpovedi/"},
		Select:   selector.And(selector.Tag("h3", "p", "ul", "ol"), selector.ChildOf(selector.Class("faq"))),
		IsMarker: selector.Tag("h3"),
		Style:    format.StyleDefault,
	}
}

// National Institute of Public Health: a flat article of paragraphs where a
// question is a paragraph (usually bold) ending in "?".
func newSZU() *Descriptor {
	isQuestion := selector.Text(extract.QuestionPattern)

	return &Descriptor{
		ID:       "szu",
		Name:     "National Institute of Public Health",
		URLs:     []string{"https://szu.cz/temata-zdravi-a-bezpecnosti/faq/"},
		Select:   selector.And(selector.Tag("p"), selector.DescendantOf(selector.Class("entry-content"))),
		IsMarker: isQuestion,
		Start:    isQuestion,
		Question: boundaryQuestion,
		Style:    format.StyleConcat,
	}
}

// Vaccination portal. The live page renders client-side, so a saved copy is
// harvested instead; relative links still resolve against the live URL.
func newOckovani() *Descriptor {
	return &Descriptor{
		ID:         "ockovani",
		Name:       "Vaccination Portal",
		URLs:       []string{"https://ockovani.mzcr.cz/casto-kladene-dotazy"},
		PinnedFile: "ockovani-faq.html",
		Select:     selector.And(selector.Tag("h2", "p", "ul"), selector.ChildOf(selector.Tag("main"))),
		IsMarker:   selector.Tag("h2"),
		Style:      format.StyleDefault,
	}
}

// boundaryQuestion joins the inner markup of the marker run and unwraps tags
// that only surround the text.
func boundaryQuestion(marker []*html.Node) string {
	parts := make([]string, 0, len(marker))
	for _, n := range marker {
		inner := sanitize.CleanupBoundaryTags(extract.NormalizeMarkupSpace(selector.InnerHTML(n)))
		if inner != "" {
			parts = append(parts, inner)
		}
	}
	return strings.Join(parts, " ")
}
