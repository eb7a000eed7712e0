package collector

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var strippedElements = "script, style, nav, header, footer, aside, form, iframe"

var blockElements = "p, li, h1, h2, h3, h4, h5, blockquote, pre, td, figcaption"

// CleanHTML strips markup from an HTML fragment and returns readable text,
// one line per block-level element. Boilerplate containers are removed
// before extraction.
func CleanHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find(strippedElements).Remove()

	var lines []string
	doc.Find(blockElements).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	if len(lines) == 0 {
		// No block structure, e.g. a bare text summary wrapped in a div.
		for _, line := range strings.Split(doc.Text(), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
	}

	return strings.Join(lines, "\n")
}
