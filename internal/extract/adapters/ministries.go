package adapters

import (
	"strings"

	"github.com/ppiankov/faqharvest/internal/extract"
	"github.com/ppiankov/faqharvest/internal/format"
	"github.com/ppiankov/faqharvest/internal/selector"
	"golang.org/x/net/html"
)

// Government Office: paragraphs in .content; a question is a paragraph
// wrapping a <strong>.
func newVlada() *Descriptor {
	return &Descriptor{
		ID:       "vlada",
		Name:     "Government of the Czech Republic",
		URLs:     []string{"https://www.vlada.cz/cz/media-centrum/aktualne/otazky-a-odpovedi/"},
		Select:   selector.And(selector.Tag("p"), selector.ChildOf(selector.Class("content"))),
		IsMarker: selector.And(selector.HasChild(selector.Tag("strong")), selector.Text(extract.QuestionPattern)),
		Question: boundaryQuestion,
		Style:    format.StyleConcat,
	}
}

// Ministry of the Interior: paired div.faq-question / div.faq-answer blocks.
func newMVCR() *Descriptor {
	return &Descriptor{
		ID:   "mvcr",
		Name: "Ministry of the Interior",
		URLs: []string{"https://www.mvcr.cz/clanek/casto-kladene-dotazy.aspx"},
		Select: selector.And(selector.Tag("div"),
			selector.Or(selector.Class("faq-question"), selector.Class("faq-answer"))),
		IsMarker: selector.Class("faq-question"),
		Style:    format.StyleTree,
	}
}

// Ministry of Education: a definition list.
func newMSMT() *Descriptor {
	return &Descriptor{
		ID:       "msmt",
		Name:     "Ministry of Education, Youth and Sports",
		URLs:     []string{"https://www.msmt.cz/faq"},
		Select:   selector.And(selector.Tag("dt", "dd"), selector.ChildOf(selector.And(selector.Tag("dl"), selector.Class("faq")))),
		IsMarker: selector.Tag("dt"),
		Style:    format.StyleTree,
	}
}

// Ministry of Labour: accordion widget; panels are taken as raw markup.
func newMPSV() *Descriptor {
	return &Descriptor{
		ID:   "mpsv",
		Name: "Ministry of Labour and Social Affairs",
		URLs: []string{"https://www.mpsv.cz/web/cz/casto-kladene-dotazy"},
		Select: selector.Or(
			selector.And(selector.Tag("button"), selector.Class("accordion__title")),
			selector.And(selector.Tag("div"), selector.Class("accordion__panel")),
		),
		IsMarker: selector.Tag("button"),
		Answer: func(content []*html.Node) format.Content {
			parts := make([]string, 0, len(content))
			for _, n := range content {
				parts = append(parts, strings.TrimSpace(selector.InnerHTML(n)))
			}
			return format.Content{HTML: strings.Join(parts, "\n")}
		},
		Style: format.StyleRaw,
	}
}

// Ministry of Industry and Trade: numbered h2 questions ("4. Who ...?").
func newMPO() *Descriptor {
	return &Descriptor{
		ID:       "mpo",
		Name:     "Ministry of Industry and Trade",
		URLs:     []string{"https://www.mpo.cz/cz/podnikani/casto-kladene-dotazy/"},
		Select:   selector.And(selector.Tag("h2", "p", "ul", "table"), selector.ChildOf(selector.ID("article-content"))),
		IsMarker: selector.Tag("h2"),
		Question: func(marker []*html.Node) string {
			return extract.StripNumbering(extract.JoinText(marker))
		},
		Style: format.StyleDefault,
	}
}

// Ministry of Foreign Affairs: each li.faq-item holds a span.q question and a
// host-relative link to the page with the answer.
func newMZV() *Descriptor {
	const base = "https://www.mzv.cz"

	return &Descriptor{
		ID:   "mzv",
		Name: "Ministry of Foreign Affairs",
		URLs: []string{"https://www.mzv.cz/jnp/cz/cestujeme/faq.html"},
		Select: selector.And(
			selector.Or(selector.And(selector.Tag("span"), selector.Class("q")), selector.Tag("a")),
			selector.DescendantOf(selector.And(selector.Tag("li"), selector.Class("faq-item"))),
		),
		IsMarker: selector.Class("q"),
		Answer: func(content []*html.Node) format.Content {
			first := content[0]
			return format.Content{
				Base:  base,
				Link:  strings.TrimSpace(selector.AttrOf(first, "href")),
				Label: extract.NormalizeSpace(selector.TextOf(first)),
			}
		},
		Style: format.StyleRebasedAnchor,
	}
}

// Ministry of Transport: a list of questions, each only linking to a detail page.
func newMD() *Descriptor {
	return &Descriptor{
		ID:   "md",
		Name: "Ministry of Transport",
		URLs: []string{"https://md.gov.cz/Caste-dotazy"},
		Select: selector.Or(
			selector.And(selector.Tag("span"), selector.Class("faq-title")),
			selector.And(selector.Tag("a"), selector.Class("faq-link")),
		),
		IsMarker: selector.Class("faq-title"),
		Answer: func(content []*html.Node) format.Content {
			first := content[0]
			return format.Content{
				Link:  strings.TrimSpace(selector.AttrOf(first, "href")),
				Label: extract.NormalizeSpace(selector.TextOf(first)),
			}
		},
		Style: format.StyleLinkOnly,
	}
}
