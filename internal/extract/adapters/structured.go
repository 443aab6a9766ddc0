package adapters

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/faqharvest/internal/extract"
	"github.com/ppiankov/faqharvest/internal/format"
	"github.com/ppiankov/faqharvest/internal/model"
	"github.com/ppiankov/faqharvest/internal/selector"
	"golang.org/x/net/html"
)

// COVID portal: the page embeds its FAQ as JSON in <script id="faq-data">,
// so the partitioner is bypassed.
func newCovidPortal() *Descriptor {
	d := &Descriptor{
		ID:              "covid-portal",
		Name:            "COVID Portal",
		URLs:            []string{"https://covid.gov.cz/situace/faq"},
		Style:           format.StyleLinkOnly,
		QuestionPattern: extract.NonEmptyPattern,
	}
	d.Extract = func(doc *html.Node, pageURL string, run model.Run) ([]model.Entity, error) {
		return extractPayload(d, doc, pageURL, run)
	}
	return d
}

func extractPayload(d *Descriptor, doc *html.Node, pageURL string, run model.Run) ([]model.Entity, error) {
	scripts := selector.Query(doc, selector.And(selector.Tag("script"), selector.ID("faq-data")))
	if len(scripts) == 0 {
		return nil, fmt.Errorf("%w: no faq-data script", extract.ErrMalformedPayload)
	}

	records, err := extract.DecodePayload([]byte(selector.TextOf(scripts[0])))
	if err != nil {
		return nil, err
	}

	entities := make([]model.Entity, 0, len(records))
	for _, r := range records {
		question := extract.NormalizeSpace(r.Title)
		if !d.pattern().MatchString(question) {
			continue
		}
		answer := format.Render(d.Style, pageURL, format.Content{
			Link:  detailURL(pageURL, r.ID.String()),
			Label: question,
		})
		entities = append(entities, model.NewEntity(question, answer, d.Name, pageURL, run))
	}
	return entities, nil
}

// detailURL is the page that renders a single record: <page>/<id>.
func detailURL(pageURL, id string) string {
	return strings.TrimSuffix(pageURL, "/") + "/" + url.PathEscape(id)
}
