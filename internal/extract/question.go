// Package extract holds the text helpers shared by source adapters: question
// validation, whitespace normalization, numbering removal and payload decoding.
package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/faqharvest/internal/selector"
	"golang.org/x/net/html"
)

// trailingSpace is whitespace after a question mark as it appears in text or
// rendered markup: ASCII space, U+00A0, or a no-break space entity.
const trailingSpace = `(?:[\s\x{00a0}]|&nbsp;|&#0*160;|&#[xX]0*[aA]0;)*`

// QuestionPattern accepts text ending in "?", tolerating trailing whitespace
// (no-break spaces included) and closing tags.
var QuestionPattern = regexp.MustCompile(`\?` + trailingSpace + `(?:<[^>]*>` + trailingSpace + `)*$`)

// NonEmptyPattern accepts any text with a visible character.
var NonEmptyPattern = regexp.MustCompile(`\S`)

var (
	spaceRe     = regexp.MustCompile(`[\s\x{00a0}]+`)
	numberingRe = regexp.MustCompile(`^\s*\d+\s*[.)]\s*`)
)

// NormalizeSpace collapses runs of whitespace (including no-break spaces) and trims.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// NormalizeMarkupSpace is NormalizeSpace for rendered markup, where a
// no-break space appears as the &nbsp; entity.
func NormalizeMarkupSpace(s string) string {
	return NormalizeSpace(strings.ReplaceAll(s, "&nbsp;", " "))
}

// StripNumbering removes a leading "12." or "3)" list number.
func StripNumbering(s string) string {
	return numberingRe.ReplaceAllString(s, "")
}

// JoinText returns the normalized text of all nodes separated by a space.
func JoinText(nodes []*html.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if t := NormalizeSpace(selector.TextOf(n)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
