package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText turns an HTML fragment (feed descriptions, API snippets) into a
// single line of plain text. Plain input only has its whitespace collapsed.
func CleanText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapse(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	writeText(doc.Selection, &b)
	return collapse(b.String())
}

// blockTags separate words even when the markup has no whitespace between them.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true, "figure": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

func writeText(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch {
		case name == "#text":
			b.WriteString(node.Text())
			return
		case strings.HasPrefix(name, "#"):
			return
		}

		block := blockTags[name]
		if block {
			b.WriteByte(' ')
		}
		writeText(node, b)
		if block {
			b.WriteByte(' ')
		}
	})
}

// FirstImage returns the src of the first <img> in fragment, if any.
func FirstImage(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
