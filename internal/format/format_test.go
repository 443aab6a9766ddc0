package format

import (
	"testing"

	"github.com/ppiankov/faqharvest/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"
)

const src = "https://www.example.gov/faq/"

func nodes(t *testing.T, doc string, pred selector.Predicate) []*xhtml.Node {
	t.Helper()
	root, err := selector.Parse(doc)
	require.NoError(t, err)
	return selector.Query(root, pred)
}

func TestRender_Raw(t *testing.T) {
	got := Render(StyleRaw, src, Content{HTML: `<p>See <a href="form.pdf">form</a></p><p></p>`})
	assert.Equal(t, `<p>See <a href="https://www.example.gov/faq/form.pdf">form</a></p>`, got)
}

func TestRender_Tree(t *testing.T) {
	ns := nodes(t, `<div class="a"> <p>One</p><h4>Two</h4> </div>`, selector.Class("a"))
	got := Render(StyleTree, src, Content{Nodes: ns})
	assert.Equal(t, `<p>One</p><strong>Two</strong><br>`, got)
}

func TestRender_LinkOnly(t *testing.T) {
	got := Render(StyleLinkOnly, src, Content{Link: "detail?id=4&x=1", Label: "Detail"})
	assert.Equal(t,
		`<p>The answer is available on the source page: <a href="https://www.example.gov/faq/detail?id=4&amp;x=1">Detail</a></p>`,
		got)
}

func TestRender_Concat(t *testing.T) {
	ns := nodes(t, `<p>First</p><p> </p><p><em>Second</em></p>`, selector.Tag("p"))
	got := Render(StyleConcat, src, Content{Nodes: ns})
	assert.Equal(t, `First<br><em>Second</em>`, got)
}

func TestRender_RebasedAnchor(t *testing.T) {
	got := Render(StyleRebasedAnchor, "https://www.mzv.cz/jnp/cz/faq.html",
		Content{Base: "https://www.mzv.cz/", Link: "/jnp/cz/cestujeme/visa.html", Label: "Visas"})
	assert.Equal(t, `<a href="https://www.mzv.cz/jnp/cz/cestujeme/visa.html">Visas</a>`, got)
}

func TestRender_Default(t *testing.T) {
	ns := nodes(t, `<p>First</p><ul><li><a href="/x">X</a></li></ul>`, selector.Or(selector.Tag("p"), selector.Tag("ul")))
	got := Render(StyleDefault, src, Content{Nodes: ns})
	assert.Equal(t, "<p>First</p><br><ul><li><a href=\"https://www.example.gov/x\">X</a></li></ul>", got)
}

func TestRender_DefaultParagraphsShareOneSeparator(t *testing.T) {
	ns := nodes(t, `<p>One</p><p>Two</p><div>Three</div>`, selector.Tag("p", "div"))
	got := Render(StyleDefault, src, Content{Nodes: ns})
	assert.Equal(t, "<p>One</p>\n<p>Two</p><br><div>Three</div>", got)
}

func TestStyle_String(t *testing.T) {
	assert.Equal(t, "raw", StyleRaw.String())
	assert.Equal(t, "default", StyleDefault.String())
	assert.Equal(t, "style(42)", Style(42).String())
}

func TestStyle_PrecedenceOrder(t *testing.T) {
	order := []Style{StyleRaw, StyleTree, StyleLinkOnly, StyleConcat, StyleRebasedAnchor, StyleDefault}
	for i, s := range order {
		assert.Equal(t, Style(i), s)
	}
}
