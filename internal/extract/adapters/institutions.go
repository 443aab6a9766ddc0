package adapters

import (
	"github.com/ppiankov/faqharvest/internal/format"
	"github.com/ppiankov/faqharvest/internal/selector"
)

// Czech Social Security Administration: two topic pages with the same layout.
// The pages open with plain-text intro paragraphs; harvesting starts at the
// first node carrying any markup.
func newCSSZ() *Descriptor {
	return &Descriptor{
		ID:   "cssz",
		Name: "Czech Social Security Administration",
		URLs: []string{
			"https://www.cssz.cz/web/cz/nejcastejsi-dotazy-duchodove-pojisteni",
			"https://www.cssz.cz/web/cz/nejcastejsi-dotazy-nemocenske-pojisteni",
		},
		Select:   selector.And(selector.Tag("h4", "p"), selector.DescendantOf(selector.ID("faq"))),
		IsMarker: selector.Tag("h4"),
		Start:    selector.HasChild(selector.Any()),
		Style:    format.StyleDefault,
	}
}

// Czech National Bank: h3.question / div.answer.
func newCNB() *Descriptor {
	return &Descriptor{
		ID:   "cnb",
		Name: "Czech National Bank",
		URLs: []string{"https://www.cnb.cz/cs/casto-kladene-dotazy/"},
		Select: selector.Or(
			selector.And(selector.Tag("h3"), selector.Class("question")),
			selector.And(selector.Tag("div"), selector.Class("answer")),
		),
		IsMarker: selector.Tag("h3"),
		Style:    format.StyleTree,
	}
}
