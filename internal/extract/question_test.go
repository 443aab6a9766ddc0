package extract

import (
	"testing"

	"github.com/ppiankov/faqharvest/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionPattern(t *testing.T) {
	valid := []string{
		"Can I travel?",
		"Can I travel?  ",
		"<strong>Can I travel?</strong>",
		"Can I travel? </span>\n</p>",
		"Kdy platí zákaz?\u00a0",
		"Kdy platí zákaz? \u00a0 ",
		"<strong>Kdy platí zákaz?</strong>&nbsp;",
		"Kdy platí zákaz?&#160;</p>",
	}
	for _, s := range valid {
		assert.True(t, QuestionPattern.MatchString(s), s)
	}

	invalid := []string{
		"Travel rules",
		"Is it? Yes.",
		"",
		"<b>?</b> not at end",
		"Is it?&nbsp;Yes.",
	}
	for _, s := range invalid {
		assert.False(t, QuestionPattern.MatchString(s), s)
	}
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeSpace("  a\n\t b  c "))
	assert.Equal(t, "", NormalizeSpace(" \n "))
}

func TestNormalizeMarkupSpace(t *testing.T) {
	assert.Equal(t, "<strong>Kdo?</strong>", NormalizeMarkupSpace("<strong>Kdo?</strong>&nbsp;"))
	assert.Equal(t, "a b", NormalizeMarkupSpace("a&nbsp;\u00a0 b"))
}

func TestStripNumbering(t *testing.T) {
	assert.Equal(t, "Who pays?", StripNumbering("12. Who pays?"))
	assert.Equal(t, "Who pays?", StripNumbering(" 3) Who pays?"))
	assert.Equal(t, "2024 rules?", StripNumbering("2024 rules?"))
}

func TestJoinText(t *testing.T) {
	doc, err := selector.Parse(`<h3> First\n part </h3><h3></h3><h3><em>second</em>?</h3>`)
	require.NoError(t, err)
	ns := selector.Query(doc, selector.Tag("h3"))
	require.Len(t, ns, 3)

	assert.Equal(t, `First\n part second?`, JoinText(ns))
}
